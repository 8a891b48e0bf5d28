// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	"fmt"
	"iter"
	"time"
)

// Block is a fixed interval time series container of one location. It stores the time
// axis as start, end and interval only; the sample timestamps are derived on demand.
type Block struct {
	kind Kind
	tab  table
}

// Kind returns the aggregation kind of the block.
func (b Block) Kind() Kind {
	return b.kind
}

// TimeRange returns the half-open time range [start, end) in unix seconds and the
// interval in seconds. For current blocks end equals start.
func (b Block) TimeRange() (start, end int64, interval int32) {
	start = b.tab.i64(slotTime)
	interval = b.tab.i32(slotInterval)
	if b.kind == Current {
		return start, start, interval
	}
	return start, b.tab.i64(slotTimeEnd), interval
}

// Start returns the time of the first sample.
func (b Block) Start() time.Time {
	start, _, _ := b.TimeRange()
	return time.Unix(start, 0).UTC()
}

// End returns the exclusive end of the time range.
func (b Block) End() time.Time {
	_, end, _ := b.TimeRange()
	return time.Unix(end, 0).UTC()
}

// Interval returns the sampling interval.
func (b Block) Interval() time.Duration {
	_, _, interval := b.TimeRange()
	return time.Duration(interval) * time.Second
}

// Len returns the number of samples every series of the block holds.
func (b Block) Len() int {
	if b.kind == Current {
		return 1
	}
	start, end, interval := b.TimeRange()
	return int((uint64(end) - uint64(start)) / uint64(interval))
}

// Timestamps returns the unix timestamps start, start+interval, ... strictly below end.
func (b Block) Timestamps() []int64 {
	start, _, interval := b.TimeRange()
	stamps := make([]int64, b.Len())
	for i := range stamps {
		stamps[i] = start + int64(i)*int64(interval)
	}
	return stamps
}

// Times iterates over the sample times without materializing them.
func (b Block) Times() iter.Seq2[int, time.Time] {
	start, _, interval := b.TimeRange()
	n := b.Len()
	return func(yield func(int, time.Time) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, time.Unix(start+int64(i)*int64(interval), 0).UTC()) {
				return
			}
		}
	}
}

// VariablesLen returns the number of series in the block.
func (b Block) VariablesLen() int {
	_, n := b.tab.vector(slotVariables, 0)
	return n
}

// Variable returns the series at position i. Series are ordered as the variables were
// requested.
func (b Block) Variable(i int) (Series, error) {
	n := b.VariablesLen()
	if i < 0 || i >= n {
		return Series{}, fmt.Errorf("%w: variable %d of %d in %s block", ErrIndexOutOfRange, i, n, b.kind)
	}
	return b.series(i), nil
}

// Variables returns all series in request order.
func (b Block) Variables() []Series {
	series := make([]Series, b.VariablesLen())
	for i := range series {
		series[i] = b.series(i)
	}
	return series
}

func (b Block) series(i int) Series {
	return Series{kind: b.kind, index: i, tab: b.tab.element(slotVariables, i)}
}
