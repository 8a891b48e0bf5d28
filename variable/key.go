// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package variable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownName is returned by Parse for names that do not map onto the registry.
var ErrUnknownName = errors.New("unknown variable name")

// Key is the identity of a series inside a block. A zero qualifier means the qualifier
// is absent.
//
// Two requested names can map to keys that only differ in Aggregation, and the service
// may return several series with equal keys (e.g. ensemble members). Positional
// correlation with the request is the only reliable way to pair names with series.
type Key struct {
	Variable      Variable
	Aggregation   Aggregation
	Altitude      int16
	PressureLevel int16
	Depth         int16
	DepthTo       int16
}

// Name renders the key the way the Open-Meteo API names variables, e.g.
// "temperature_2m_max", "temperature_850hPa" or "soil_moisture_0_to_1cm".
func (k Key) Name() string {
	var sb strings.Builder
	sb.WriteString(k.Variable.String())
	switch {
	case k.PressureLevel != 0:
		sb.WriteString("_" + strconv.Itoa(int(k.PressureLevel)) + "hPa")
	case k.DepthTo != 0:
		sb.WriteString("_" + strconv.Itoa(int(k.Depth)) + "_to_" + strconv.Itoa(int(k.DepthTo)) + "cm")
	case k.Depth != 0:
		sb.WriteString("_" + strconv.Itoa(int(k.Depth)) + "cm")
	case k.Altitude != 0:
		sb.WriteString("_" + strconv.Itoa(int(k.Altitude)) + "m")
	}
	sb.WriteString(k.Aggregation.Suffix())
	return sb.String()
}

func (k Key) String() string {
	return k.Name()
}

// Parse maps an API variable name such as "wind_speed_10m" or "temperature_2m_max" onto
// its Key.
func Parse(name string) (Key, error) {
	if key, ok := parseQualified(name); ok {
		return key, nil
	}
	for agg := AggregationMinimum; agg < numAggregations; agg++ {
		base, found := strings.CutSuffix(name, agg.Suffix())
		if !found {
			continue
		}
		if key, ok := parseQualified(base); ok {
			key.Aggregation = agg
			return key, nil
		}
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// MustParse is like Parse but panics on unknown names. It is meant for static tables.
func MustParse(name string) Key {
	key, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return key
}

// parseQualified resolves the longest registered base name that prefixes name and parses
// the remainder as a level qualifier.
func parseQualified(name string) (Key, bool) {
	var base Variable
	baseLen := 0
	for i, candidate := range variableNames {
		if i == 0 || len(candidate) <= baseLen {
			continue
		}
		if name == candidate || strings.HasPrefix(name, candidate+"_") {
			base, baseLen = Variable(i), len(candidate)
		}
	}
	if base == Undefined {
		return Key{}, false
	}

	key := Key{Variable: base}
	rest := strings.TrimPrefix(name[baseLen:], "_")
	if rest == "" {
		return key, true
	}

	switch {
	case strings.HasSuffix(rest, "hPa"):
		level, ok := parseLevel(strings.TrimSuffix(rest, "hPa"))
		key.PressureLevel = level
		return key, ok
	case strings.HasSuffix(rest, "cm"):
		from, to, found := strings.Cut(strings.TrimSuffix(rest, "cm"), "_to_")
		depth, ok := parseLevel(from)
		if !ok {
			return Key{}, false
		}
		key.Depth = depth
		if found {
			if key.DepthTo, ok = parseLevel(to); !ok {
				return Key{}, false
			}
		}
		return key, true
	case strings.HasSuffix(rest, "m"):
		altitude, ok := parseLevel(strings.TrimSuffix(rest, "m"))
		key.Altitude = altitude
		return key, ok
	}
	return Key{}, false
}

func parseLevel(s string) (int16, bool) {
	n, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, false
	}
	return int16(n), true
}
