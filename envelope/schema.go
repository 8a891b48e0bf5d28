// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Field slots of the WeatherApiResponse table.
const (
	slotLatitude = iota
	slotLongitude
	slotElevation
	slotGenerationTime
	slotLocationID
	slotModel
	slotUTCOffsetSeconds
	slotTimezone
	slotTimezoneAbbreviation
	slotCurrent
	slotDaily
	slotHourly
	slotMinutely15
	slotSixHourly
)

// Field slots of the VariablesWithTime table.
const (
	slotTime = iota
	slotTimeEnd
	slotInterval
	slotVariables
)

// Field slots of the VariableWithValues table.
const (
	slotVariable = iota
	slotUnit
	slotValue
	slotValues
	slotValuesInt64
	slotAltitude
	slotAggregation
	slotPressureLevel
	slotDepth
	slotDepthTo
	slotEnsembleMember
	slotPreviousDay
)

// table is a FlatBuffers table inside a verified message. Every accessor relies on the
// verifier having bounds-checked the field it reads.
type table struct {
	flatbuffers.Table
}

func newTable(buf []byte, pos flatbuffers.UOffsetT) table {
	return table{flatbuffers.Table{Bytes: buf, Pos: pos}}
}

// field returns the offset of slot relative to the table start, or 0 if the field is absent.
func (t table) field(slot int) flatbuffers.UOffsetT {
	return flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT(vtableSlot(slot))))
}

func (t table) has(slot int) bool {
	return t.field(slot) != 0
}

func (t table) f32(slot int) float32 {
	if o := t.field(slot); o != 0 {
		return t.GetFloat32(t.Pos + o)
	}
	return 0
}

func (t table) i64(slot int) int64 {
	if o := t.field(slot); o != 0 {
		return t.GetInt64(t.Pos + o)
	}
	return 0
}

func (t table) i32(slot int) int32 {
	if o := t.field(slot); o != 0 {
		return t.GetInt32(t.Pos + o)
	}
	return 0
}

func (t table) i16(slot int) (int16, bool) {
	if o := t.field(slot); o != 0 {
		return t.GetInt16(t.Pos + o), true
	}
	return 0, false
}

func (t table) u8(slot int) uint8 {
	if o := t.field(slot); o != 0 {
		return t.GetUint8(t.Pos + o)
	}
	return 0
}

func (t table) str(slot int) string {
	if o := t.field(slot); o != 0 {
		return t.String(t.Pos + o)
	}
	return ""
}

// child returns the sub-table referenced by slot.
func (t table) child(slot int) (table, bool) {
	o := t.field(slot)
	if o == 0 {
		return table{}, false
	}
	return newTable(t.Bytes, t.Indirect(t.Pos+o)), true
}

// vector returns the raw element bytes of the vector in slot and its element count.
func (t table) vector(slot, elemSize int) ([]byte, int) {
	o := t.field(slot)
	if o == 0 {
		return nil, 0
	}
	n := t.VectorLen(o)
	start := t.Vector(o)
	return t.Bytes[start : start+flatbuffers.UOffsetT(n*elemSize)], n
}

// element returns the sub-table at index i of the table vector in slot.
func (t table) element(slot, i int) table {
	start := t.Vector(t.field(slot))
	pos := start + flatbuffers.UOffsetT(i*flatbuffers.SizeUOffsetT)
	return newTable(t.Bytes, t.Indirect(pos))
}

func vtableSlot(slot int) int {
	return 2*flatbuffers.SizeVOffsetT + slot*flatbuffers.SizeVOffsetT
}
