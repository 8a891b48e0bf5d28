// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package variable

import "strconv"

// Aggregation is the function applied to a variable over its sampling interval.
type Aggregation uint8

const (
	AggregationNone Aggregation = iota
	AggregationMinimum
	AggregationMaximum
	AggregationMean
	AggregationP10
	AggregationP25
	AggregationMedian
	AggregationP75
	AggregationP90
	AggregationDominant
	AggregationSum
	AggregationSpread

	numAggregations
)

var aggregationNames = [numAggregations]string{
	"none", "minimum", "maximum", "mean", "p10", "p25", "median", "p75", "p90", "dominant",
	"sum", "spread",
}

// aggregationSuffixes are the name suffixes the API appends for daily aggregations.
var aggregationSuffixes = [numAggregations]string{
	"", "_min", "_max", "_mean", "_p10", "_p25", "_median", "_p75", "_p90", "_dominant",
	"_sum", "_spread",
}

func (a Aggregation) String() string {
	if a < numAggregations {
		return aggregationNames[a]
	}
	return "aggregation(" + strconv.Itoa(int(a)) + ")"
}

// Suffix returns the variable name suffix for the aggregation, e.g. "_max".
func (a Aggregation) Suffix() string {
	if a < numAggregations {
		return aggregationSuffixes[a]
	}
	return ""
}
