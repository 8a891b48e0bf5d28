// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	"math"

	"github.com/wneessen/meteobuf/variable"
)

// Series is one decoded (variable, aggregation, level) series of a block.
type Series struct {
	kind  Kind
	index int
	tab   table
}

// IsMissing reports whether v is the missing sample marker.
func IsMissing(v float32) bool {
	return math.IsNaN(float64(v))
}

// Index returns the position of the series inside its block.
func (s Series) Index() int {
	return s.index
}

// Kind returns the kind of the block the series belongs to.
func (s Series) Kind() Kind {
	return s.kind
}

func (s Series) Variable() variable.Variable {
	return variable.Variable(s.tab.u8(slotVariable))
}

func (s Series) Unit() variable.Unit {
	return variable.Unit(s.tab.u8(slotUnit))
}

func (s Series) Aggregation() variable.Aggregation {
	return variable.Aggregation(s.tab.u8(slotAggregation))
}

// Altitude returns the height above ground in metres, e.g. 2 for temperature_2m.
func (s Series) Altitude() (float64, bool) {
	return s.level(slotAltitude)
}

// PressureLevel returns the isobaric level in hPa.
func (s Series) PressureLevel() (float64, bool) {
	return s.level(slotPressureLevel)
}

// Depth returns the soil depth in centimetres.
func (s Series) Depth() (float64, bool) {
	return s.level(slotDepth)
}

// DepthTo returns the lower bound of a soil layer in centimetres.
func (s Series) DepthTo() (float64, bool) {
	return s.level(slotDepthTo)
}

// EnsembleMember returns the member number for ensemble API responses.
func (s Series) EnsembleMember() (int, bool) {
	v, ok := s.tab.i16(slotEnsembleMember)
	return int(v), ok
}

// PreviousDay returns the model run offset in days for previous runs API responses.
func (s Series) PreviousDay() (int, bool) {
	v, ok := s.tab.i16(slotPreviousDay)
	return int(v), ok
}

func (s Series) level(slot int) (float64, bool) {
	v, ok := s.tab.i16(slot)
	return float64(v), ok
}

// Key returns the identity of the series. Keys are not unique within a block, use the
// position to correlate a series with the requested variable.
func (s Series) Key() variable.Key {
	key := variable.Key{Variable: s.Variable(), Aggregation: s.Aggregation()}
	key.Altitude, _ = s.tab.i16(slotAltitude)
	key.PressureLevel, _ = s.tab.i16(slotPressureLevel)
	key.Depth, _ = s.tab.i16(slotDepth)
	key.DepthTo, _ = s.tab.i16(slotDepthTo)
	return key
}

// Name returns the API name of the series, e.g. "temperature_2m".
func (s Series) Name() string {
	return s.Key().Name()
}

// Len returns the number of samples in the series.
func (s Series) Len() int {
	if s.kind == Current {
		return 1
	}
	if _, n := s.tab.vector(slotValues, 4); n > 0 {
		return n
	}
	_, n := s.tab.vector(slotValuesInt64, 8)
	return n
}

// Value returns the lone sample of a current series, or the first sample otherwise. It
// returns NaN for a series without float samples.
func (s Series) Value() float32 {
	if values := s.Values(); len(values) > 0 {
		return values[0]
	}
	return float32(math.NaN())
}

// Values returns the samples of the series. The slice aliases the envelope buffer and must
// not be modified. A current series yields exactly one sample.
func (s Series) Values() []float32 {
	if b, n := s.tab.vector(slotValues, 4); n > 0 || s.kind != Current {
		return float32s(b)
	}
	if o := s.tab.field(slotValue); o != 0 {
		pos := s.tab.Pos + o
		return float32s(s.tab.Bytes[pos : pos+4])
	}
	return []float32{0}
}

// ValuesInt64 returns the int64 samples of the series, used for unix timestamps such as
// sunrise and sunset. The slice aliases the envelope buffer and must not be modified.
func (s Series) ValuesInt64() []int64 {
	b, _ := s.tab.vector(slotValuesInt64, 8)
	return int64s(b)
}

// CopyValues appends the samples to dst and returns the extended slice. The result does not
// alias the envelope.
func (s Series) CopyValues(dst []float32) []float32 {
	return append(dst, s.Values()...)
}
