// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	influx "github.com/influxdata/influxdb/client/v2"

	"github.com/wneessen/meteobuf/envelope"
)

// DefaultMeasurement is the InfluxDB measurement name if none is configured.
const DefaultMeasurement = "weather"

// Influx writes one InfluxDB point per location, block and timestamp in line protocol. The
// series become fields, missing samples are left out.
type Influx struct {
	Kinds       []envelope.Kind
	Measurement string
}

func (e *Influx) Export(w io.Writer, locations []envelope.Location) error {
	points, err := e.Points(locations)
	if err != nil {
		return err
	}
	for _, p := range points {
		if _, err = fmt.Fprintln(w, p.PrecisionString("s")); err != nil {
			return fmt.Errorf("failed to write point: %w", err)
		}
	}
	return nil
}

// Points converts locations into InfluxDB points.
func (e *Influx) Points(locations []envelope.Location) ([]*influx.Point, error) {
	measurement := e.Measurement
	if measurement == "" {
		measurement = DefaultMeasurement
	}

	var points []*influx.Point
	for _, loc := range locations {
		for _, block := range blocks(loc, e.Kinds) {
			tags := map[string]string{
				"location":  strconv.Itoa(loc.Index()),
				"latitude":  strconv.FormatFloat(loc.Latitude(), 'f', -1, 32),
				"longitude": strconv.FormatFloat(loc.Longitude(), 'f', -1, 32),
				"kind":      block.Kind().String(),
			}
			if model := loc.Model(); model != 0 {
				tags["model"] = model.String()
			}
			series := block.Variables()
			for i, stamp := range block.Timestamps() {
				fields := make(map[string]interface{}, len(series))
				for _, s := range series {
					if ints := s.ValuesInt64(); i < len(ints) {
						fields[ColumnName(s)] = ints[i]
						continue
					}
					if values := s.Values(); i < len(values) && !envelope.IsMissing(values[i]) {
						fields[ColumnName(s)] = float64(values[i])
					}
				}
				if len(fields) == 0 {
					continue
				}
				p, err := influx.NewPoint(measurement, tags, fields, time.Unix(stamp, 0))
				if err != nil {
					return nil, fmt.Errorf("failed to create point for location %d: %w", loc.Index(), err)
				}
				points = append(points, p)
			}
		}
	}
	return points, nil
}

// InfluxConfig holds the connection settings of an InfluxDB server.
type InfluxConfig struct {
	Addr     string
	Username string
	Password string
	Database string
	Timeout  time.Duration
}

// WriteInflux uploads the points of locations to the server in conf as one batch.
func (e *Influx) WriteInflux(conf InfluxConfig, locations []envelope.Location) error {
	points, err := e.Points(locations)
	if err != nil {
		return err
	}
	bp, err := influx.NewBatchPoints(influx.BatchPointsConfig{
		Database:  conf.Database,
		Precision: "s",
	})
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	bp.AddPoints(points)

	c, err := influx.NewHTTPClient(influx.HTTPConfig{
		Addr:     conf.Addr,
		Username: conf.Username,
		Password: conf.Password,
		Timeout:  conf.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create InfluxDB client: %w", err)
	}
	defer func() {
		_ = c.Close()
	}()
	if err = c.Write(bp); err != nil {
		return fmt.Errorf("failed to write %d points to InfluxDB: %w", len(points), err)
	}
	return nil
}
