// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package arrowview hands decoded series to Apache Arrow without copying the samples.
//
// The Arrow buffers reference the envelope's memory. Release the returned arrays as usual;
// the envelope buffer itself stays owned by the garbage collector.
package arrowview

import (
	"strconv"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/bitutil"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/wneessen/meteobuf/envelope"
	"github.com/wneessen/meteobuf/variable"
)

// TimeColumn is the name of the timestamp column of a block record.
const TimeColumn = "time"

// Metadata keys attached to every series field.
const (
	MetaVariable    = "meteobuf.variable"
	MetaUnit        = "meteobuf.unit"
	MetaAggregation = "meteobuf.aggregation"
	MetaIndex       = "meteobuf.index"
)

// Float32 returns the float samples of series as an Arrow array backed by the envelope
// buffer. Missing samples stay NaN and are not marked as null.
func Float32(series envelope.Series) *array.Float32 {
	values := series.Values()
	data := array.NewData(arrow.PrimitiveTypes.Float32, len(values),
		[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.Float32Traits.CastToBytes(values))}, nil, 0, 0)
	defer data.Release()
	return array.NewFloat32Data(data)
}

// Float32WithNulls is like Float32 but marks missing samples as null. Only the validity
// bitmap is allocated, the samples are still shared with the envelope.
func Float32WithNulls(series envelope.Series) *array.Float32 {
	values := series.Values()
	bitmap := make([]byte, bitutil.BytesForBits(int64(len(values))))
	nulls := 0
	for i, v := range values {
		if envelope.IsMissing(v) {
			nulls++
			continue
		}
		bitutil.SetBit(bitmap, i)
	}
	var validity *memory.Buffer
	if nulls > 0 {
		validity = memory.NewBufferBytes(bitmap)
	}
	data := array.NewData(arrow.PrimitiveTypes.Float32, len(values),
		[]*memory.Buffer{validity, memory.NewBufferBytes(arrow.Float32Traits.CastToBytes(values))}, nil, nulls, 0)
	defer data.Release()
	return array.NewFloat32Data(data)
}

// Int64 returns the int64 samples of series, e.g. sunrise times, as an Arrow array
// backed by the envelope buffer.
func Int64(series envelope.Series) *array.Int64 {
	values := series.ValuesInt64()
	data := array.NewData(arrow.PrimitiveTypes.Int64, len(values),
		[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.Int64Traits.CastToBytes(values))}, nil, 0, 0)
	defer data.Release()
	return array.NewInt64Data(data)
}

// Timestamps returns the time axis of block as a second precision UTC timestamp array.
func Timestamps(block envelope.Block) *array.Timestamp {
	stamps := block.Timestamps()
	data := array.NewData(timestampType, len(stamps),
		[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.Int64Traits.CastToBytes(stamps))}, nil, 0, 0)
	defer data.Release()
	return array.NewTimestampData(data)
}

var timestampType = &arrow.TimestampType{Unit: arrow.Second, TimeZone: "UTC"}

// Schema returns the schema of the record Record builds for block.
func Schema(block envelope.Block) *arrow.Schema {
	fields := make([]arrow.Field, 0, block.VariablesLen()+1)
	fields = append(fields, arrow.Field{Name: TimeColumn, Type: timestampType})
	for _, series := range block.Variables() {
		fields = append(fields, field(series))
	}
	md := arrow.NewMetadata([]string{"meteobuf.kind"}, []string{block.Kind().String()})
	return arrow.NewSchema(fields, &md)
}

// Record returns a record with the time axis of block followed by one column per series in
// request order. Series carrying int64 samples become int64 columns, or timestamp columns if
// their unit is unix time.
func Record(block envelope.Block) arrow.Record {
	schema := Schema(block)
	cols := make([]arrow.Array, 0, schema.NumFields())
	cols = append(cols, Timestamps(block))
	for _, series := range block.Variables() {
		cols = append(cols, column(series))
	}
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()
	return array.NewRecord(schema, cols, int64(block.Len()))
}

func field(series envelope.Series) arrow.Field {
	md := arrow.NewMetadata(
		[]string{MetaVariable, MetaUnit, MetaAggregation, MetaIndex},
		[]string{series.Variable().String(), series.Unit().String(), series.Aggregation().String(),
			strconv.Itoa(series.Index())},
	)
	return arrow.Field{Name: series.Name(), Type: columnType(series), Metadata: md}
}

func columnType(series envelope.Series) arrow.DataType {
	switch {
	case len(series.ValuesInt64()) == 0:
		return arrow.PrimitiveTypes.Float32
	case series.Unit() == variable.UnitUnixTime:
		return timestampType
	default:
		return arrow.PrimitiveTypes.Int64
	}
}

func column(series envelope.Series) arrow.Array {
	switch columnType(series) {
	case arrow.PrimitiveTypes.Float32:
		return Float32(series)
	case timestampType:
		values := series.ValuesInt64()
		data := array.NewData(timestampType, len(values),
			[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.Int64Traits.CastToBytes(values))}, nil, 0, 0)
		defer data.Release()
		return array.NewTimestampData(data)
	default:
		return Int64(series)
	}
}
