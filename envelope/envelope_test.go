// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wneessen/meteobuf/internal/testhelper"
	"github.com/wneessen/meteobuf/variable"
)

const (
	testStart    = int64(1690848000) // 2023-08-01T00:00:00Z
	testInterval = int32(3600)
	testSamples  = 48
)

func testHourly(variables ...testhelper.Series) *testhelper.Block {
	return &testhelper.Block{
		Time:      testStart,
		TimeEnd:   testStart + testSamples*int64(testInterval),
		Interval:  testInterval,
		Variables: variables,
	}
}

func testBerlin() testhelper.Location {
	return testhelper.Location{
		Latitude:             52.52,
		Longitude:            13.41,
		Elevation:            38,
		GenerationTimeMs:     0.5,
		Model:                uint8(variable.ModelBestMatch),
		UTCOffsetSeconds:     7200,
		Timezone:             "Europe/Berlin",
		TimezoneAbbreviation: "CEST",
		Hourly: testHourly(
			testhelper.Series{
				Variable: uint8(variable.Temperature), Unit: uint8(variable.UnitCelsius), Altitude: 2,
				Values: testhelper.HourlySeries(10, testSamples),
			},
			testhelper.Series{
				Variable: uint8(variable.Precipitation), Unit: uint8(variable.UnitMillimetre),
				Values: testhelper.HourlySeries(0, testSamples),
			},
			testhelper.Series{
				Variable: uint8(variable.WindSpeed), Unit: uint8(variable.UnitKilometresPerHour), Altitude: 10,
				Values: testhelper.HourlySeries(5, testSamples),
			},
		),
	}
}

func testFrankfurt() testhelper.Location {
	return testhelper.Location{
		Latitude:   50.1155,
		Longitude:  8.6842,
		LocationID: 1,
		Timezone:   "GMT",
		Current: &testhelper.Block{
			Time:     testStart,
			Interval: 900,
			Variables: []testhelper.Series{
				{Variable: uint8(variable.Temperature), Altitude: 2, Value: 21.5},
				{Variable: uint8(variable.Precipitation)},
			},
		},
	}
}

func mustParse(t *testing.T, buf []byte) *Envelope {
	t.Helper()
	env, err := Parse(buf)
	if err != nil {
		t.Fatalf("failed to parse envelope: %s", err)
	}
	return env
}

func TestDecodeHeader(t *testing.T) {
	t.Run("a valid header decodes", func(t *testing.T) {
		h, err := DecodeHeader(Header{Version: Version}.Bytes())
		if err != nil {
			t.Fatalf("failed to decode header: %s", err)
		}
		if h.Version != Version {
			t.Errorf("expected version %d, got %d", Version, h.Version)
		}
	})
	t.Run("a short header is malformed", func(t *testing.T) {
		_, err := DecodeHeader([]byte("OMF"))
		if !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
	t.Run("a wrong magic is malformed", func(t *testing.T) {
		_, err := DecodeHeader([]byte("JSON\x01\x00\x00\x00"))
		if !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
	t.Run("an unknown version is unsupported, not malformed", func(t *testing.T) {
		_, err := DecodeHeader(Header{Version: 2}.Bytes())
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("expected %s, got %v", ErrUnsupportedVersion, err)
		}
		if errors.Is(err, ErrMalformedEnvelope) {
			t.Error("did not expect unsupported version to be reported as malformed")
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("a header without body is an empty envelope", func(t *testing.T) {
		env := mustParse(t, testhelper.Envelope(Version))
		if env.Len() != 0 {
			t.Errorf("expected no locations, got %d", env.Len())
		}
		if env.Version() != Version {
			t.Errorf("expected version %d, got %d", Version, env.Version())
		}
	})
	t.Run("unsupported versions are rejected before the body is read", func(t *testing.T) {
		env, err := Parse(testhelper.Envelope(9, testBerlin()))
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("expected %s, got %v", ErrUnsupportedVersion, err)
		}
		if env != nil {
			t.Error("expected no envelope on failure")
		}
	})
	t.Run("a truncated body is malformed and yields no envelope", func(t *testing.T) {
		buf := testhelper.Envelope(Version, testBerlin())
		for _, cut := range []int{1, 3, 4, 16, len(buf) / 2, len(buf) - HeaderSize - 1} {
			env, err := Parse(buf[:len(buf)-cut])
			if !errors.Is(err, ErrMalformedEnvelope) {
				t.Errorf("cut of %d bytes: expected %s, got %v", cut, ErrMalformedEnvelope, err)
			}
			if env != nil {
				t.Errorf("cut of %d bytes: expected no envelope", cut)
			}
		}
	})
	t.Run("a corrupt root offset is malformed", func(t *testing.T) {
		buf := testhelper.Envelope(Version, testBerlin())
		buf[HeaderSize+4] = 0xff
		buf[HeaderSize+5] = 0xff
		buf[HeaderSize+6] = 0xff
		if _, err := Parse(buf); !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
	t.Run("every single byte flip either parses or fails as malformed", func(t *testing.T) {
		orig := testhelper.Envelope(Version, testBerlin(), testFrankfurt())
		for i := HeaderSize; i < len(orig); i++ {
			buf := append([]byte{}, orig...)
			buf[i] ^= 0xa5
			env, err := Parse(buf)
			if err != nil {
				if !errors.Is(err, ErrMalformedEnvelope) {
					t.Fatalf("flip at %d: expected %s, got %v", i, ErrMalformedEnvelope, err)
				}
				continue
			}
			for _, loc := range env.Locations() {
				for _, block := range loc.Blocks() {
					for _, series := range block.Variables() {
						_ = series.Values()
						_ = series.ValuesInt64()
					}
				}
				_ = loc.Timezone()
			}
		}
	})
	t.Run("series lengths must match the time range", func(t *testing.T) {
		loc := testBerlin()
		loc.Hourly.Variables[1].Values = loc.Hourly.Variables[1].Values[:10]
		if _, err := Parse(testhelper.Envelope(Version, loc)); !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
	t.Run("non-current blocks need a positive interval", func(t *testing.T) {
		loc := testBerlin()
		loc.Hourly.Interval = 0
		if _, err := Parse(testhelper.Envelope(Version, loc)); !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
	t.Run("a time end before the start is malformed", func(t *testing.T) {
		loc := testBerlin()
		loc.Hourly.TimeEnd = loc.Hourly.Time - 3600
		loc.Hourly.Variables = nil
		if _, err := Parse(testhelper.Envelope(Version, loc)); !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
	t.Run("a time range larger than the message is malformed", func(t *testing.T) {
		tests := []struct {
			name       string
			start, end int64
		}{
			{"huge range", 0, 1 << 62},
			{"range overflowing int64", math.MinInt64 + 1, math.MaxInt64},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				loc := testhelper.Location{Hourly: &testhelper.Block{Time: tc.start, TimeEnd: tc.end, Interval: 1}}
				env, err := Parse(testhelper.Envelope(Version, loc))
				if !errors.Is(err, ErrMalformedEnvelope) {
					t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
				}
				if env != nil {
					t.Error("expected no envelope on failure")
				}
			})
		}
	})
	t.Run("an empty block within the message size is accepted", func(t *testing.T) {
		loc := testhelper.Location{Hourly: &testhelper.Block{Time: 0, TimeEnd: 4 * 3600, Interval: 3600}}
		env := mustParse(t, testhelper.Envelope(Version, loc))
		block, ok := env.Locations()[0].Hourly()
		if !ok {
			t.Fatal("expected an hourly block")
		}
		if block.Len() != 4 || len(block.Timestamps()) != 4 || block.VariablesLen() != 0 {
			t.Errorf("expected 4 samples without variables, got %d/%d", block.Len(), block.VariablesLen())
		}
	})
	t.Run("current series hold at most one value", func(t *testing.T) {
		loc := testFrankfurt()
		loc.Current.Variables[0].Values = []float32{1, 2}
		if _, err := Parse(testhelper.Envelope(Version, loc)); !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
}

func TestParseStream(t *testing.T) {
	t.Run("header-less streams decode all messages", func(t *testing.T) {
		env, err := ParseStream(testhelper.Stream(testBerlin(), testFrankfurt()))
		if err != nil {
			t.Fatalf("failed to parse stream: %s", err)
		}
		if env.Len() != 2 {
			t.Fatalf("expected 2 locations, got %d", env.Len())
		}
	})
	t.Run("a stream with an envelope header is malformed", func(t *testing.T) {
		_, err := ParseStream(testhelper.Envelope(Version, testBerlin()))
		if !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("expected %s, got %v", ErrMalformedEnvelope, err)
		}
	})
}

func TestEnvelope_Locations(t *testing.T) {
	env := mustParse(t, testhelper.Envelope(Version, testBerlin(), testFrankfurt()))

	t.Run("locations keep server order", func(t *testing.T) {
		want := [][2]float64{{52.52, 13.41}, {50.1155, 8.6842}}
		var got [][2]float64
		for _, loc := range env.Locations() {
			got = append(got, [2]float64{loc.Latitude(), loc.Longitude()})
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
			t.Errorf("coordinates mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("all iterates like locations", func(t *testing.T) {
		count := 0
		for i, loc := range env.All() {
			if loc.Index() != i {
				t.Errorf("expected index %d, got %d", i, loc.Index())
			}
			count++
		}
		if count != env.Len() {
			t.Errorf("expected %d iterations, got %d", env.Len(), count)
		}
	})
	t.Run("locations past the end are out of range", func(t *testing.T) {
		for _, i := range []int{-1, 2, 100} {
			if _, err := env.Location(i); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("index %d: expected %s, got %v", i, ErrIndexOutOfRange, err)
			}
		}
	})
	t.Run("scalar fields decode", func(t *testing.T) {
		loc, err := env.Location(0)
		if err != nil {
			t.Fatalf("failed to get location: %s", err)
		}
		if loc.Envelope() != env {
			t.Error("expected location to reference its envelope")
		}
		if loc.Elevation() != 38 {
			t.Errorf("expected elevation 38, got %f", loc.Elevation())
		}
		if loc.UTCOffsetSeconds() != 7200 {
			t.Errorf("expected utc offset 7200, got %d", loc.UTCOffsetSeconds())
		}
		if loc.Timezone() != "Europe/Berlin" || loc.TimezoneAbbreviation() != "CEST" {
			t.Errorf("unexpected timezone %s/%s", loc.Timezone(), loc.TimezoneAbbreviation())
		}
		if loc.Model() != variable.ModelBestMatch {
			t.Errorf("expected model best_match, got %s", loc.Model())
		}
		if loc.GenerationTime().Microseconds() != 500 {
			t.Errorf("expected generation time 500µs, got %s", loc.GenerationTime())
		}
		if name := loc.TimeLocation().String(); name != "CEST" {
			t.Errorf("expected time location CEST, got %s", name)
		}
		other, _ := env.Location(1)
		if other.LocationID() != 1 {
			t.Errorf("expected location id 1, got %d", other.LocationID())
		}
	})
	t.Run("absent blocks are reported, not failed", func(t *testing.T) {
		loc, _ := env.Location(0)
		if _, ok := loc.Daily(); ok {
			t.Error("expected no daily block")
		}
		if _, ok := loc.Current(); ok {
			t.Error("expected no current block")
		}
		if _, ok := loc.Block(Kind(42)); ok {
			t.Error("expected no block for an unknown kind")
		}
		if len(loc.Blocks()) != 1 {
			t.Errorf("expected exactly one block, got %d", len(loc.Blocks()))
		}
	})
}

func TestBlock_TimeRange(t *testing.T) {
	env := mustParse(t, testhelper.Envelope(Version, testBerlin()))
	loc, _ := env.Location(0)
	hourly, ok := loc.Hourly()
	if !ok {
		t.Fatal("expected hourly block")
	}

	t.Run("sample count equals range divided by interval", func(t *testing.T) {
		start, end, interval := hourly.TimeRange()
		want := int((end - start) / int64(interval))
		if (end-start)%int64(interval) != 0 {
			t.Errorf("expected no remainder in time range")
		}
		if hourly.Len() != want || want != testSamples {
			t.Errorf("expected %d samples, got %d", want, hourly.Len())
		}
		for _, series := range hourly.Variables() {
			if len(series.Values()) != want {
				t.Errorf("expected %s to hold %d values, got %d", series.Name(), want, len(series.Values()))
			}
		}
	})
	t.Run("timestamps form a half-open interval", func(t *testing.T) {
		start, end, interval := hourly.TimeRange()
		stamps := hourly.Timestamps()
		if len(stamps) != hourly.Len() {
			t.Fatalf("expected %d timestamps, got %d", hourly.Len(), len(stamps))
		}
		if stamps[0] != start {
			t.Errorf("expected first timestamp %d, got %d", start, stamps[0])
		}
		if last := stamps[len(stamps)-1]; last != end-int64(interval) || last == end {
			t.Errorf("expected last timestamp %d, got %d", end-int64(interval), last)
		}
		for i, tm := range hourly.Times() {
			if tm.Unix() != stamps[i] {
				t.Errorf("time %d: expected %d, got %d", i, stamps[i], tm.Unix())
			}
		}
	})
	t.Run("time accessors agree with the range", func(t *testing.T) {
		if hourly.Start().Unix() != testStart {
			t.Errorf("expected start %d, got %d", testStart, hourly.Start().Unix())
		}
		if hourly.End().Unix() != testStart+testSamples*int64(testInterval) {
			t.Errorf("unexpected end %s", hourly.End())
		}
		if hourly.Interval().Seconds() != float64(testInterval) {
			t.Errorf("unexpected interval %s", hourly.Interval())
		}
		if hourly.Kind() != Hourly {
			t.Errorf("expected hourly kind, got %s", hourly.Kind())
		}
	})
	t.Run("times stop when the consumer stops", func(t *testing.T) {
		count := 0
		for range hourly.Times() {
			count++
			if count == 3 {
				break
			}
		}
		if count != 3 {
			t.Errorf("expected 3 iterations, got %d", count)
		}
	})
}

func TestBlock_Variable(t *testing.T) {
	env := mustParse(t, testhelper.Envelope(Version, testBerlin()))
	loc, _ := env.Location(0)
	hourly, _ := loc.Hourly()

	t.Run("variables keep request order", func(t *testing.T) {
		want := []string{"temperature_2m", "precipitation", "wind_speed_10m"}
		if hourly.VariablesLen() != len(want) {
			t.Fatalf("expected %d variables, got %d", len(want), hourly.VariablesLen())
		}
		for i, name := range want {
			series, err := hourly.Variable(i)
			if err != nil {
				t.Fatalf("failed to get variable %d: %s", i, err)
			}
			if series.Name() != name {
				t.Errorf("position %d: expected %s, got %s", i, name, series.Name())
			}
			if series.Index() != i {
				t.Errorf("expected index %d, got %d", i, series.Index())
			}
		}
	})
	t.Run("positions past the end are out of range", func(t *testing.T) {
		for _, i := range []int{-1, 3} {
			if _, err := hourly.Variable(i); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("index %d: expected %s, got %v", i, ErrIndexOutOfRange, err)
			}
		}
	})
}

func TestSeries(t *testing.T) {
	t.Run("current series expose a single sample at time start", func(t *testing.T) {
		env := mustParse(t, testhelper.Envelope(Version, testFrankfurt()))
		loc, _ := env.Location(0)
		current, ok := loc.Current()
		if !ok {
			t.Fatal("expected current block")
		}
		start, end, _ := current.TimeRange()
		if start != end {
			t.Errorf("expected time start == time end, got %d and %d", start, end)
		}
		temp, _ := current.Variable(0)
		if temp.Len() != 1 || len(temp.Values()) != 1 {
			t.Errorf("expected exactly one value, got %d", len(temp.Values()))
		}
		if temp.Value() != 21.5 {
			t.Errorf("expected 21.5, got %f", temp.Value())
		}
		if alt, ok := temp.Altitude(); !ok || alt != 2 {
			t.Errorf("expected altitude 2, got %f/%t", alt, ok)
		}
		if stamps := current.Timestamps(); len(stamps) != 1 || stamps[0] != start {
			t.Errorf("expected a single timestamp at start, got %v", stamps)
		}
	})
	t.Run("a zero current value is omitted on the wire and still decodes", func(t *testing.T) {
		env := mustParse(t, testhelper.Envelope(Version, testFrankfurt()))
		loc, _ := env.Location(0)
		current, _ := loc.Current()
		precip, _ := current.Variable(1)
		if diff := cmp.Diff([]float32{0}, precip.Values()); diff != "" {
			t.Errorf("values mismatch (-want +got):\n%s", diff)
		}
		if _, ok := precip.Altitude(); ok {
			t.Error("expected precipitation to have no altitude")
		}
	})
	t.Run("values alias the envelope buffer", func(t *testing.T) {
		if !hostLittleEndian {
			t.Skip("zero-copy requires a little-endian host")
		}
		buf := testhelper.Envelope(Version, testBerlin())
		env := mustParse(t, buf)
		loc, _ := env.Location(0)
		hourly, _ := loc.Hourly()
		temp, _ := hourly.Variable(0)
		values := temp.Values()
		start := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(values)))
		if addr < start || addr >= start+uintptr(len(buf)) {
			t.Fatal("expected values to point into the envelope buffer")
		}
		if values[0] != 10 || values[testSamples-1] != 10+testSamples-1 {
			t.Errorf("unexpected values %v", values)
		}
	})
	t.Run("copied values do not alias the envelope", func(t *testing.T) {
		env := mustParse(t, testhelper.Envelope(Version, testBerlin()))
		loc, _ := env.Location(0)
		hourly, _ := loc.Hourly()
		temp, _ := hourly.Variable(0)
		cp := temp.CopyValues(nil)
		cp[0] = -99
		if temp.Values()[0] == -99 {
			t.Error("expected copy to be independent of the envelope")
		}
	})
	t.Run("missing samples are NaN", func(t *testing.T) {
		loc := testBerlin()
		loc.Hourly.Variables[0].Values[3] = float32(math.NaN())
		env := mustParse(t, testhelper.Envelope(Version, loc))
		l, _ := env.Location(0)
		hourly, _ := l.Hourly()
		temp, _ := hourly.Variable(0)
		if !IsMissing(temp.Values()[3]) {
			t.Error("expected sample 3 to be missing")
		}
		if IsMissing(temp.Values()[2]) {
			t.Error("did not expect sample 2 to be missing")
		}
	})
	t.Run("int64 values and qualifiers decode", func(t *testing.T) {
		loc := testhelper.Location{
			Daily: &testhelper.Block{
				Time: testStart, TimeEnd: testStart + 2*86400, Interval: 86400,
				Variables: []testhelper.Series{
					{Variable: uint8(variable.Sunrise), Unit: uint8(variable.UnitUnixTime),
						ValuesInt64: []int64{testStart + 18000, testStart + 104460}},
					{Variable: uint8(variable.Temperature), Aggregation: uint8(variable.AggregationMaximum),
						Altitude: 2, Values: []float32{25, 27}},
					{Variable: uint8(variable.Temperature), Aggregation: uint8(variable.AggregationMinimum),
						Altitude: 2, Values: []float32{12, 14}},
					{Variable: uint8(variable.SoilMoisture), Depth: 1, DepthTo: 3, EnsembleMember: 4,
						PreviousDay: 1, Values: []float32{0.3, 0.31}},
				},
			},
		}
		env := mustParse(t, testhelper.Envelope(Version, loc))
		l, _ := env.Location(0)
		daily, ok := l.Daily()
		if !ok {
			t.Fatal("expected daily block")
		}
		sunrise, _ := daily.Variable(0)
		if diff := cmp.Diff([]int64{testStart + 18000, testStart + 104460}, sunrise.ValuesInt64()); diff != "" {
			t.Errorf("sunrise mismatch (-want +got):\n%s", diff)
		}
		if sunrise.Len() != 2 || len(sunrise.Values()) != 0 {
			t.Errorf("expected 2 int64 samples and no float samples, got %d/%d", sunrise.Len(), len(sunrise.Values()))
		}
		if !IsMissing(sunrise.Value()) {
			t.Error("expected value of an int64 series to be NaN")
		}
		if sunrise.Unit() != variable.UnitUnixTime {
			t.Errorf("expected unixtime unit, got %s", sunrise.Unit())
		}

		tmax, _ := daily.Variable(1)
		tmin, _ := daily.Variable(2)
		if tmax.Name() != "temperature_2m_max" || tmin.Name() != "temperature_2m_min" {
			t.Errorf("unexpected names %s and %s", tmax.Name(), tmin.Name())
		}
		maxKey, minKey := tmax.Key(), tmin.Key()
		maxKey.Aggregation, minKey.Aggregation = 0, 0
		if maxKey != minKey {
			t.Error("expected aggregations of one variable to share their remaining identity")
		}

		soil, _ := daily.Variable(3)
		if soil.Name() != "soil_moisture_1_to_3cm" {
			t.Errorf("unexpected soil name %s", soil.Name())
		}
		if depth, ok := soil.Depth(); !ok || depth != 1 {
			t.Errorf("expected depth 1, got %f", depth)
		}
		if to, ok := soil.DepthTo(); !ok || to != 3 {
			t.Errorf("expected depth to 3, got %f", to)
		}
		if member, ok := soil.EnsembleMember(); !ok || member != 4 {
			t.Errorf("expected ensemble member 4, got %d", member)
		}
		if day, ok := soil.PreviousDay(); !ok || day != 1 {
			t.Errorf("expected previous day 1, got %d", day)
		}
		if _, ok := soil.PressureLevel(); ok {
			t.Error("expected no pressure level")
		}
		if soil.Kind() != Daily {
			t.Errorf("expected daily kind, got %s", soil.Kind())
		}
	})
}

func TestParse_Idempotent(t *testing.T) {
	buf := testhelper.Envelope(Version, testBerlin(), testFrankfurt())
	first, second := mustParse(t, buf), mustParse(t, buf)
	if diff := cmp.Diff(snapshot(first), snapshot(second), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("decoding twice differs (-first +second):\n%s", diff)
	}
}

type locationSnapshot struct {
	Latitude, Longitude float64
	Elevation           float32
	UTCOffset           int32
	Timezone            string
	Blocks              map[string][][]float32
}

func snapshot(env *Envelope) []locationSnapshot {
	var out []locationSnapshot
	for _, loc := range env.Locations() {
		s := locationSnapshot{
			Latitude: loc.Latitude(), Longitude: loc.Longitude(), Elevation: loc.Elevation(),
			UTCOffset: loc.UTCOffsetSeconds(), Timezone: loc.Timezone(),
			Blocks: make(map[string][][]float32),
		}
		for _, block := range loc.Blocks() {
			for _, series := range block.Variables() {
				s.Blocks[block.Kind().String()] = append(s.Blocks[block.Kind().String()], series.CopyValues(nil))
			}
		}
		out = append(out, s)
	}
	return out
}

func TestKind(t *testing.T) {
	for _, kind := range Kinds {
		got, ok := ParseKind(kind.String())
		if !ok || got != kind {
			t.Errorf("expected %s to parse back, got %s/%t", kind, got, ok)
		}
	}
	if _, ok := ParseKind("weekly"); ok {
		t.Error("expected unknown kind to fail")
	}
	if Kind(9).String() != "kind(9)" {
		t.Errorf("unexpected rendering %s", Kind(9))
	}
}

func TestFloat32s(t *testing.T) {
	t.Run("misaligned input is copied in one piece", func(t *testing.T) {
		raw := make([]byte, 13)
		bits := math.Float32bits(1.5)
		raw[1], raw[2], raw[3], raw[4] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
		raw[5], raw[6], raw[7], raw[8] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
		values := float32s(raw[1:9])
		if diff := cmp.Diff([]float32{1.5, 1.5}, values); diff != "" {
			t.Errorf("values mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("empty input yields an empty slice", func(t *testing.T) {
		if values := float32s(nil); values == nil || len(values) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", values)
		}
		if values := int64s(nil); values == nil || len(values) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", values)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Run("enveloped buffers are detected", func(t *testing.T) {
		env, err := Decode(testhelper.Envelope(Version, testBerlin()))
		if err != nil {
			t.Fatalf("failed to decode: %s", err)
		}
		if env.Len() != 1 {
			t.Errorf("expected 1 location, got %d", env.Len())
		}
	})
	t.Run("plain streams are detected", func(t *testing.T) {
		env, err := Decode(testhelper.Stream(testBerlin(), testFrankfurt()))
		if err != nil {
			t.Fatalf("failed to decode: %s", err)
		}
		if env.Len() != 2 {
			t.Errorf("expected 2 locations, got %d", env.Len())
		}
	})
	t.Run("version checks still apply", func(t *testing.T) {
		if _, err := Decode(testhelper.Envelope(3, testBerlin())); !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("expected %s, got %v", ErrUnsupportedVersion, err)
		}
	})
	t.Run("an empty buffer is an empty stream", func(t *testing.T) {
		env, err := Decode(nil)
		if err != nil {
			t.Fatalf("failed to decode: %s", err)
		}
		if env.Len() != 0 || env.Size() != 0 {
			t.Errorf("expected an empty envelope, got %d locations", env.Len())
		}
	})
}
