// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/wneessen/meteobuf/envelope"
)

// JSON writes the rows as one JSON array.
type JSON struct {
	Kinds  []envelope.Kind
	Indent bool
}

func (e *JSON) Export(w io.Writer, locations []envelope.Location) error {
	enc := json.NewEncoder(w)
	if e.Indent {
		enc.SetIndent("", "  ")
	}
	rows := Rows(locations, e.Kinds)
	if rows == nil {
		rows = []Row{}
	}
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// CSV writes the rows with a header line. Missing values are empty cells.
type CSV struct {
	Kinds []envelope.Kind
}

var csvHeader = []string{
	"location", "latitude", "longitude", "kind", "time", "variable", "unit", "member", "previous_day",
	"value", "integer_value",
}

func (e *CSV) Export(w io.Writer, locations []envelope.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range Rows(locations, e.Kinds) {
		record := []string{
			strconv.Itoa(row.Location),
			strconv.FormatFloat(row.Latitude, 'f', -1, 64),
			strconv.FormatFloat(row.Longitude, 'f', -1, 64),
			row.Kind,
			strconv.FormatInt(row.Time, 10),
			row.Variable,
			row.Unit,
			optional(row.Member, strconv.Itoa),
			optional(row.PreviousDay, strconv.Itoa),
			optional(row.Value, func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 32) }),
			optional(row.IntegerValue, func(v int64) string { return strconv.FormatInt(v, 10) }),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func optional[T any](v *T, format func(T) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}

// Msgpack writes the rows as one MessagePack array.
type Msgpack struct {
	Kinds []envelope.Kind
}

func (e *Msgpack) Export(w io.Writer, locations []envelope.Location) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	if err := enc.Encode(Rows(locations, e.Kinds)); err != nil {
		return fmt.Errorf("msgpack encode: %w", err)
	}
	return nil
}

// Parquet writes the rows as a Parquet file.
type Parquet struct {
	Kinds []envelope.Kind
}

func (e *Parquet) Export(w io.Writer, locations []envelope.Location) error {
	pw := parquet.NewGenericWriter[Row](w)
	if _, err := pw.Write(Rows(locations, e.Kinds)); err != nil {
		_ = pw.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
