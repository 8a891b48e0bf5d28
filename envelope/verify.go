// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	"encoding/binary"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// verifier bounds-checks every table, vtable, vector and string of one FlatBuffers
// message before any view is created on top of it. It never panics on untrusted input.
type verifier struct {
	buf []byte
}

// scalarField is a fixed size field of a table.
type scalarField struct {
	slot int
	size uint64
}

var (
	locationScalars = []scalarField{
		{slotLatitude, 4}, {slotLongitude, 4}, {slotElevation, 4}, {slotGenerationTime, 4},
		{slotLocationID, 8}, {slotModel, 1}, {slotUTCOffsetSeconds, 4},
	}
	blockScalars  = []scalarField{{slotTime, 8}, {slotTimeEnd, 8}, {slotInterval, 4}}
	seriesScalars = []scalarField{
		{slotVariable, 1}, {slotUnit, 1}, {slotValue, 4}, {slotAltitude, 2}, {slotAggregation, 1},
		{slotPressureLevel, 2}, {slotDepth, 2}, {slotDepthTo, 2}, {slotEnsembleMember, 2},
		{slotPreviousDay, 2},
	}
)

type tableInfo struct {
	pos   uint64
	vt    uint64
	vtLen uint64
	tLen  uint64
}

func verifyMessage(msg []byte) error {
	v := &verifier{buf: msg}
	if !v.within(0, flatbuffers.SizeUOffsetT) {
		return v.fail("message of %d bytes has no root offset", len(msg))
	}
	ti, err := v.table(uint64(v.u32(0)))
	if err != nil {
		return err
	}

	if err = v.scalars(ti, locationScalars); err != nil {
		return err
	}
	for _, slot := range []int{slotTimezone, slotTimezoneAbbreviation} {
		if err = v.string(ti, slot); err != nil {
			return err
		}
	}
	for _, kind := range Kinds {
		pos, err := v.indirect(ti, kind.slot())
		if err != nil {
			return err
		}
		if pos == 0 {
			continue
		}
		if err = v.block(kind, pos); err != nil {
			return fmt.Errorf("%s block: %w", kind, err)
		}
	}
	return nil
}

func (v *verifier) block(kind Kind, pos uint64) error {
	ti, err := v.table(pos)
	if err != nil {
		return err
	}
	if err = v.scalars(ti, blockScalars); err != nil {
		return err
	}

	samples := uint64(1)
	if kind != Current {
		start, end := v.i64(ti, slotTime), v.i64(ti, slotTimeEnd)
		interval := int64(int32(v.u32At(ti, slotInterval)))
		if interval <= 0 {
			return v.fail("interval must be positive, got %d", interval)
		}
		if end < start {
			return v.fail("time end %d before time start %d", end, start)
		}
		samples = (uint64(end) - uint64(start)) / uint64(interval)
		if samples > uint64(len(v.buf)) {
			return v.fail("time range holds %d samples, more than the message can carry", samples)
		}
	}

	vec, n, ok, err := v.vector(ti, slotVariables, flatbuffers.SizeUOffsetT)
	if err != nil || !ok {
		return err
	}
	for i := uint64(0); i < uint64(n); i++ {
		at := vec + i*flatbuffers.SizeUOffsetT
		off := uint64(v.u32(at))
		if off == 0 {
			return v.fail("variable %d has a zero offset", i)
		}
		if err = v.series(kind, at+off, samples); err != nil {
			return fmt.Errorf("variable %d: %w", i, err)
		}
	}
	return nil
}

func (v *verifier) series(kind Kind, pos, samples uint64) error {
	ti, err := v.table(pos)
	if err != nil {
		return err
	}
	if err = v.scalars(ti, seriesScalars); err != nil {
		return err
	}

	_, floats, hasFloats, err := v.vector(ti, slotValues, 4)
	if err != nil {
		return err
	}
	_, ints, hasInts, err := v.vector(ti, slotValuesInt64, 8)
	if err != nil {
		return err
	}
	if kind == Current {
		if (hasFloats && floats != 1) || (hasInts && ints != 1) {
			return v.fail("current variable holds %d values", max(floats, ints))
		}
		return nil
	}
	switch {
	case hasFloats && uint64(floats) != samples:
		return v.fail("variable holds %d values, time range has %d samples", floats, samples)
	case hasInts && uint64(ints) != samples:
		return v.fail("variable holds %d int64 values, time range has %d samples", ints, samples)
	case !hasFloats && !hasInts && samples != 0:
		return v.fail("variable holds no values, time range has %d samples", samples)
	}
	return nil
}

// table checks the table header and its vtable at pos.
func (v *verifier) table(pos uint64) (tableInfo, error) {
	if !v.within(pos, flatbuffers.SizeSOffsetT) {
		return tableInfo{}, v.fail("table at %d out of bounds", pos)
	}
	vt := int64(pos) - int64(int32(v.u32(pos)))
	if vt < 0 || !v.within(uint64(vt), 2*flatbuffers.SizeVOffsetT) {
		return tableInfo{}, v.fail("vtable of table at %d out of bounds", pos)
	}
	ti := tableInfo{pos: pos, vt: uint64(vt)}
	ti.vtLen = uint64(v.u16(ti.vt))
	ti.tLen = uint64(v.u16(ti.vt + flatbuffers.SizeVOffsetT))
	if ti.vtLen < 2*flatbuffers.SizeVOffsetT || ti.vtLen%2 != 0 || !v.within(ti.vt, ti.vtLen) {
		return tableInfo{}, v.fail("invalid vtable size %d at %d", ti.vtLen, ti.vt)
	}
	if ti.tLen < flatbuffers.SizeSOffsetT || !v.within(pos, ti.tLen) {
		return tableInfo{}, v.fail("invalid table size %d at %d", ti.tLen, pos)
	}
	return ti, nil
}

// fieldOffset returns the table relative offset of slot, 0 if the field is absent.
func (v *verifier) fieldOffset(ti tableInfo, slot int) uint64 {
	vo := uint64(vtableSlot(slot))
	if vo+flatbuffers.SizeVOffsetT > ti.vtLen {
		return 0
	}
	return uint64(v.u16(ti.vt + vo))
}

func (v *verifier) scalar(ti tableInfo, slot int, size uint64) error {
	fo := v.fieldOffset(ti, slot)
	if fo == 0 {
		return nil
	}
	if fo < flatbuffers.SizeSOffsetT || fo+size > ti.tLen {
		return v.fail("field %d at %d exceeds table of %d bytes", slot, fo, ti.tLen)
	}
	return nil
}

func (v *verifier) scalars(ti tableInfo, fields []scalarField) error {
	for _, f := range fields {
		if err := v.scalar(ti, f.slot, f.size); err != nil {
			return err
		}
	}
	return nil
}

// indirect validates the offset field in slot and returns its absolute target, or 0 if
// the field is absent.
func (v *verifier) indirect(ti tableInfo, slot int) (uint64, error) {
	if err := v.scalar(ti, slot, flatbuffers.SizeUOffsetT); err != nil {
		return 0, err
	}
	fo := v.fieldOffset(ti, slot)
	if fo == 0 {
		return 0, nil
	}
	at := ti.pos + fo
	off := uint64(v.u32(at))
	if off == 0 || !v.within(at+off, 1) {
		return 0, v.fail("offset field %d points outside the message", slot)
	}
	return at + off, nil
}

// vector validates the vector in slot and returns the position of its first element and
// its length.
func (v *verifier) vector(ti tableInfo, slot int, elemSize uint64) (uint64, int, bool, error) {
	pos, err := v.indirect(ti, slot)
	if err != nil || pos == 0 {
		return 0, 0, false, err
	}
	if !v.within(pos, flatbuffers.SizeUOffsetT) {
		return 0, 0, false, v.fail("vector length at %d out of bounds", pos)
	}
	n := uint64(v.u32(pos))
	start := pos + flatbuffers.SizeUOffsetT
	if !v.within(start, n*elemSize) {
		return 0, 0, false, v.fail("vector of %d elements at %d exceeds message", n, pos)
	}
	return start, int(n), true, nil
}

func (v *verifier) string(ti tableInfo, slot int) error {
	start, n, ok, err := v.vector(ti, slot, 1)
	if err != nil || !ok {
		return err
	}
	end := start + uint64(n)
	if !v.within(end, 1) || v.buf[end] != 0 {
		return v.fail("string in field %d is not terminated", slot)
	}
	return nil
}

func (v *verifier) i64(ti tableInfo, slot int) int64 {
	if fo := v.fieldOffset(ti, slot); fo != 0 {
		return int64(binary.LittleEndian.Uint64(v.buf[ti.pos+fo:]))
	}
	return 0
}

func (v *verifier) u32At(ti tableInfo, slot int) uint32 {
	if fo := v.fieldOffset(ti, slot); fo != 0 {
		return v.u32(ti.pos + fo)
	}
	return 0
}

func (v *verifier) within(off, size uint64) bool {
	return off <= uint64(len(v.buf)) && size <= uint64(len(v.buf))-off
}

func (v *verifier) u16(off uint64) uint16 {
	return binary.LittleEndian.Uint16(v.buf[off:])
}

func (v *verifier) u32(off uint64) uint32 {
	return binary.LittleEndian.Uint32(v.buf[off:])
}

func (v *verifier) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedEnvelope, fmt.Sprintf(format, args...))
}
