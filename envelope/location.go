// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	"time"

	"github.com/wneessen/meteobuf/variable"
)

// Location is the response for one requested coordinate.
type Location struct {
	env   *Envelope
	index int
	tab   table
}

// Envelope returns the envelope the location was read from.
func (l Location) Envelope() *Envelope {
	return l.env
}

// Index returns the position of the location in the envelope.
func (l Location) Index() int {
	return l.index
}

// Latitude returns the latitude of the grid cell the service used.
func (l Location) Latitude() float64 {
	return float64(l.tab.f32(slotLatitude))
}

// Longitude returns the longitude of the grid cell the service used.
func (l Location) Longitude() float64 {
	return float64(l.tab.f32(slotLongitude))
}

// Elevation returns the elevation in metres.
func (l Location) Elevation() float32 {
	return l.tab.f32(slotElevation)
}

// GenerationTime returns how long the service took to compute the response.
func (l Location) GenerationTime() time.Duration {
	return time.Duration(float64(l.tab.f32(slotGenerationTime)) * float64(time.Millisecond))
}

// LocationID returns the id the service echoed for the location, 0-based in request order.
func (l Location) LocationID() int64 {
	return l.tab.i64(slotLocationID)
}

// Model returns the weather model of the response.
func (l Location) Model() variable.Model {
	return variable.Model(l.tab.u8(slotModel))
}

// UTCOffsetSeconds returns the offset of the requested timezone.
func (l Location) UTCOffsetSeconds() int32 {
	return l.tab.i32(slotUTCOffsetSeconds)
}

// Timezone returns the timezone name, e.g. "Europe/Berlin" or "GMT".
func (l Location) Timezone() string {
	return l.tab.str(slotTimezone)
}

// TimezoneAbbreviation returns the timezone abbreviation, e.g. "CEST".
func (l Location) TimezoneAbbreviation() string {
	return l.tab.str(slotTimezoneAbbreviation)
}

// TimeLocation returns a fixed zone for the offset and abbreviation of the response.
func (l Location) TimeLocation() *time.Location {
	name := l.TimezoneAbbreviation()
	if name == "" {
		name = l.Timezone()
	}
	return time.FixedZone(name, int(l.UTCOffsetSeconds()))
}

// Block returns the block of the given kind. ok is false if the kind was not requested.
func (l Location) Block(kind Kind) (Block, bool) {
	slot := kind.slot()
	if slot < 0 {
		return Block{}, false
	}
	tab, ok := l.tab.child(slot)
	if !ok {
		return Block{}, false
	}
	return Block{kind: kind, tab: tab}, true
}

// Blocks returns every present block in ascending interval order.
func (l Location) Blocks() []Block {
	var blocks []Block
	for _, kind := range Kinds {
		if b, ok := l.Block(kind); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (l Location) Current() (Block, bool)    { return l.Block(Current) }
func (l Location) Minutely15() (Block, bool) { return l.Block(Minutely15) }
func (l Location) Hourly() (Block, bool)     { return l.Block(Hourly) }
func (l Location) SixHourly() (Block, bool)  { return l.Block(SixHourly) }
func (l Location) Daily() (Block, bool)      { return l.Block(Daily) }
