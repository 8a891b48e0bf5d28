// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import "strconv"

// Kind is the aggregation granularity of a block.
type Kind uint8

const (
	Current Kind = iota
	Minutely15
	Hourly
	SixHourly
	Daily
)

// Kinds lists every block kind in ascending interval order.
var Kinds = []Kind{Current, Minutely15, Hourly, SixHourly, Daily}

// String returns the query parameter name of the kind.
func (k Kind) String() string {
	switch k {
	case Current:
		return "current"
	case Minutely15:
		return "minutely_15"
	case Hourly:
		return "hourly"
	case SixHourly:
		return "six_hourly"
	case Daily:
		return "daily"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind returns the Kind for a query parameter name such as "hourly".
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) slot() int {
	switch k {
	case Current:
		return slotCurrent
	case Minutely15:
		return slotMinutely15
	case Hourly:
		return slotHourly
	case SixHourly:
		return slotSixHourly
	case Daily:
		return slotDaily
	}
	return -1
}
