// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package export

import (
	"github.com/wneessen/meteobuf/envelope"
	"github.com/wneessen/meteobuf/internal/vartype"
)

// Row is one sample of one series in long format. Optional fields are nil when the series
// does not carry them; Value is nil for missing samples and for int64 series.
type Row struct {
	Location     int      `json:"location" msgpack:"location" parquet:"location"`
	Latitude     float64  `json:"latitude" msgpack:"latitude" parquet:"latitude"`
	Longitude    float64  `json:"longitude" msgpack:"longitude" parquet:"longitude"`
	Kind         string   `json:"kind" msgpack:"kind" parquet:"kind,dict"`
	Time         int64    `json:"time" msgpack:"time" parquet:"time"`
	Variable     string   `json:"variable" msgpack:"variable" parquet:"variable,dict"`
	Unit         string   `json:"unit" msgpack:"unit" parquet:"unit,dict"`
	Member       *int     `json:"member,omitempty" msgpack:"member,omitempty" parquet:"member,optional"`
	PreviousDay  *int     `json:"previous_day,omitempty" msgpack:"previous_day,omitempty" parquet:"previous_day,optional"`
	Value        *float64 `json:"value" msgpack:"value" parquet:"value,optional"`
	IntegerValue *int64   `json:"integer_value,omitempty" msgpack:"integer_value,omitempty" parquet:"integer_value,optional"`
}

// Rows flattens the blocks of locations into rows, ordered by location, block, series and
// time.
func Rows(locations []envelope.Location, kinds []envelope.Kind) []Row {
	var rows []Row
	for _, loc := range locations {
		for _, block := range blocks(loc, kinds) {
			stamps := block.Timestamps()
			for _, series := range block.Variables() {
				rows = appendSeries(rows, loc, block, series, stamps)
			}
		}
	}
	return rows
}

func appendSeries(rows []Row, loc envelope.Location, block envelope.Block, series envelope.Series, stamps []int64) []Row {
	base := Row{
		Location:    loc.Index(),
		Latitude:    loc.Latitude(),
		Longitude:   loc.Longitude(),
		Kind:        block.Kind().String(),
		Variable:    series.Name(),
		Unit:        series.Unit().String(),
		Member:      vartype.FromOK(series.EnsembleMember()).Ptr(),
		PreviousDay: vartype.FromOK(series.PreviousDay()).Ptr(),
	}
	values, ints := series.Values(), series.ValuesInt64()
	for i, stamp := range stamps {
		row := base
		row.Time = stamp
		row.Value = sample(values, i).Ptr()
		if i < len(ints) {
			row.IntegerValue = vartype.NewVariable(ints[i]).Ptr()
		}
		rows = append(rows, row)
	}
	return rows
}

// sample returns values[i] unless it is missing or out of range.
func sample(values []float32, i int) vartype.VarFloat64 {
	if i >= len(values) || envelope.IsMissing(values[i]) {
		return vartype.VarFloat64{}
	}
	return vartype.NewVariable(float64(values[i]))
}
