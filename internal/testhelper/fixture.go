// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package testhelper

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// EnvelopeMagic mirrors the envelope header marker.
var EnvelopeMagic = []byte("OMFB")

// Location describes one WeatherApiResponse message.
type Location struct {
	Latitude             float32
	Longitude            float32
	Elevation            float32
	GenerationTimeMs     float32
	LocationID           int64
	Model                uint8
	UTCOffsetSeconds     int32
	Timezone             string
	TimezoneAbbreviation string

	Current    *Block
	Daily      *Block
	Hourly     *Block
	Minutely15 *Block
	SixHourly  *Block
}

// Block describes a VariablesWithTime table.
type Block struct {
	Time      int64
	TimeEnd   int64
	Interval  int32
	Variables []Series
}

// Series describes a VariableWithValues table. Nil slices are left out of the message.
type Series struct {
	Variable       uint8
	Unit           uint8
	Value          float32
	Values         []float32
	ValuesInt64    []int64
	Altitude       int16
	Aggregation    uint8
	PressureLevel  int16
	Depth          int16
	DepthTo        int16
	EnsembleMember int16
	PreviousDay    int16
}

// Envelope returns the header for version followed by one message per location.
func Envelope(version byte, locations ...Location) []byte {
	buf := append([]byte{}, EnvelopeMagic...)
	buf = append(buf, version, 0, 0, 0)
	return append(buf, Stream(locations...)...)
}

// Stream returns the size-prefixed messages for locations without a header.
func Stream(locations ...Location) []byte {
	var buf []byte
	for _, loc := range locations {
		buf = append(buf, Message(loc)...)
	}
	return buf
}

// Message builds one size-prefixed WeatherApiResponse message.
func Message(loc Location) []byte {
	b := flatbuffers.NewBuilder(1024)

	var timezone, abbreviation flatbuffers.UOffsetT
	if loc.Timezone != "" {
		timezone = b.CreateString(loc.Timezone)
	}
	if loc.TimezoneAbbreviation != "" {
		abbreviation = b.CreateString(loc.TimezoneAbbreviation)
	}
	blocks := make([]flatbuffers.UOffsetT, 5)
	for i, block := range []*Block{loc.Current, loc.Daily, loc.Hourly, loc.Minutely15, loc.SixHourly} {
		if block != nil {
			blocks[i] = buildBlock(b, block)
		}
	}

	b.StartObject(14)
	b.PrependFloat32Slot(0, loc.Latitude, 0)
	b.PrependFloat32Slot(1, loc.Longitude, 0)
	b.PrependFloat32Slot(2, loc.Elevation, 0)
	b.PrependFloat32Slot(3, loc.GenerationTimeMs, 0)
	b.PrependInt64Slot(4, loc.LocationID, 0)
	b.PrependByteSlot(5, loc.Model, 0)
	b.PrependInt32Slot(6, loc.UTCOffsetSeconds, 0)
	b.PrependUOffsetTSlot(7, timezone, 0)
	b.PrependUOffsetTSlot(8, abbreviation, 0)
	for i, block := range blocks {
		b.PrependUOffsetTSlot(9+i, block, 0)
	}
	b.FinishSizePrefixed(b.EndObject())
	return b.FinishedBytes()
}

func buildBlock(b *flatbuffers.Builder, block *Block) flatbuffers.UOffsetT {
	series := make([]flatbuffers.UOffsetT, len(block.Variables))
	for i := range block.Variables {
		series[i] = buildSeries(b, &block.Variables[i])
	}
	b.StartVector(flatbuffers.SizeUOffsetT, len(series), flatbuffers.SizeUOffsetT)
	for i := len(series) - 1; i >= 0; i-- {
		b.PrependUOffsetT(series[i])
	}
	variables := b.EndVector(len(series))

	b.StartObject(4)
	b.PrependInt64Slot(0, block.Time, 0)
	b.PrependInt64Slot(1, block.TimeEnd, 0)
	b.PrependInt32Slot(2, block.Interval, 0)
	b.PrependUOffsetTSlot(3, variables, 0)
	return b.EndObject()
}

func buildSeries(b *flatbuffers.Builder, s *Series) flatbuffers.UOffsetT {
	var values, valuesInt64 flatbuffers.UOffsetT
	if s.Values != nil {
		b.StartVector(flatbuffers.SizeFloat32, len(s.Values), flatbuffers.SizeFloat32)
		for i := len(s.Values) - 1; i >= 0; i-- {
			b.PrependFloat32(s.Values[i])
		}
		values = b.EndVector(len(s.Values))
	}
	if s.ValuesInt64 != nil {
		b.StartVector(flatbuffers.SizeInt64, len(s.ValuesInt64), flatbuffers.SizeInt64)
		for i := len(s.ValuesInt64) - 1; i >= 0; i-- {
			b.PrependInt64(s.ValuesInt64[i])
		}
		valuesInt64 = b.EndVector(len(s.ValuesInt64))
	}

	b.StartObject(12)
	b.PrependByteSlot(0, s.Variable, 0)
	b.PrependByteSlot(1, s.Unit, 0)
	b.PrependFloat32Slot(2, s.Value, 0)
	b.PrependUOffsetTSlot(3, values, 0)
	b.PrependUOffsetTSlot(4, valuesInt64, 0)
	b.PrependInt16Slot(5, s.Altitude, 0)
	b.PrependByteSlot(6, s.Aggregation, 0)
	b.PrependInt16Slot(7, s.PressureLevel, 0)
	b.PrependInt16Slot(8, s.Depth, 0)
	b.PrependInt16Slot(9, s.DepthTo, 0)
	b.PrependInt16Slot(10, s.EnsembleMember, 0)
	b.PrependInt16Slot(11, s.PreviousDay, 0)
	return b.EndObject()
}

// HourlySeries returns n samples counting up from first.
func HourlySeries(first float32, n int) []float32 {
	values := make([]float32, n)
	for i := range values {
		values[i] = first + float32(i)
	}
	return values
}
