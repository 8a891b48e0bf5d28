// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package client

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Params holds the query parameters of one API call. Values are scalars (string, bool,
// integers, floats, time.Time, fmt.Stringer) or slices of them; slices are sent
// comma-separated.
//
//	client.Params{
//		"latitude":  []float64{52.52, 48.85},
//		"longitude": []float64{13.41, 2.35},
//		"hourly":    []string{"temperature_2m", "precipitation"},
//	}
type Params map[string]any

// Coordinate parameters whose list lengths define the number of locations.
const (
	ParamLatitude  = "latitude"
	ParamLongitude = "longitude"
	ParamElevation = "elevation"
	ParamFormat    = "format"
)

// FormatFlatBuffers is the only response format the client can decode.
const FormatFlatBuffers = "flatbuffers"

// Normalize checks the coordinate shapes and returns the encoded query. A scalar latitude or
// longitude is repeated to match the other coordinate's list; list-valued latitude,
// longitude and elevation must agree in length. The format is always set to flatbuffers.
// The receiver is not modified.
func (p Params) Normalize() (url.Values, error) {
	lists := make(map[string][]string, len(p))
	for key, value := range p {
		if value == nil {
			continue
		}
		values, err := encodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key, err)
		}
		lists[key] = values
	}

	locations, err := coordinateCount(p, lists)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{ParamLatitude, ParamLongitude, ParamElevation} {
		if values, ok := lists[key]; ok && !isList(p[key]) && locations > 1 {
			lists[key] = broadcast(values[0], locations)
		}
	}

	query := make(url.Values, len(lists)+1)
	for key, values := range lists {
		// Empty coordinate lists were rejected above.
		if len(values) == 0 {
			continue
		}
		query.Set(key, strings.Join(values, ","))
	}
	query.Set(ParamFormat, FormatFlatBuffers)
	return query, nil
}

// Locations returns the number of locations the parameters request, 0 if no coordinates
// are set.
func (p Params) Locations() (int, error) {
	query, err := p.Normalize()
	if err != nil {
		return 0, err
	}
	lat := query.Get(ParamLatitude)
	if lat == "" {
		return 0, nil
	}
	return strings.Count(lat, ",") + 1, nil
}

// coordinateCount returns the common length of the list-valued coordinates, or 1 if none is
// a list.
func coordinateCount(p Params, lists map[string][]string) (int, error) {
	count, from := 1, ""
	for _, key := range []string{ParamLatitude, ParamLongitude, ParamElevation} {
		values, ok := lists[key]
		if !ok || !isList(p[key]) {
			continue
		}
		if len(values) == 0 {
			return 0, fmt.Errorf("%w: %s is an empty list", ErrParameterShapeMismatch, key)
		}
		if from == "" {
			count, from = len(values), key
			continue
		}
		if len(values) != count {
			return 0, fmt.Errorf("%w: %s has %d values, %s has %d", ErrParameterShapeMismatch,
				key, len(values), from, count)
		}
	}
	return count, nil
}

func broadcast(value string, n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = value
	}
	return values
}

func isList(value any) bool {
	if _, ok := value.([]byte); ok {
		return false
	}
	kind := reflect.ValueOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func encodeValue(value any) ([]string, error) {
	if !isList(value) {
		s, err := encodeScalar(value)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	rv := reflect.ValueOf(value)
	values := make([]string, rv.Len())
	for i := range values {
		s, err := encodeScalar(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values[i] = s
	}
	return values, nil
}

func encodeScalar(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), nil
	case time.Time:
		return v.Format(time.DateOnly), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", fmt.Errorf("unsupported value type %T", value)
}
