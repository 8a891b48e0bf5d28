// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package export writes decoded locations in various output formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/wneessen/meteobuf/envelope"
)

// ErrUnknownFormat is returned by New for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter writes locations to w.
type Exporter interface {
	Export(w io.Writer, locations []envelope.Location) error
}

// Options configure the exporters created by New.
type Options struct {
	// Kinds limits the exported blocks. All present blocks are exported if empty.
	Kinds []envelope.Kind
	// Template is the text/template source of the template format.
	Template string
	// Measurement is the InfluxDB measurement name.
	Measurement string
}

// Formats lists the names New accepts.
var Formats = []string{"text", "template", "json", "csv", "msgpack", "parquet", "influx"}

// New returns the exporter for format.
func New(format string, opts Options) (Exporter, error) {
	switch strings.ToLower(format) {
	case "text":
		return &Text{Kinds: opts.Kinds}, nil
	case "template":
		return NewTemplate(opts.Template, opts.Kinds)
	case "json":
		return &JSON{Kinds: opts.Kinds}, nil
	case "csv":
		return &CSV{Kinds: opts.Kinds}, nil
	case "msgpack":
		return &Msgpack{Kinds: opts.Kinds}, nil
	case "parquet":
		return &Parquet{Kinds: opts.Kinds}, nil
	case "influx":
		return &Influx{Kinds: opts.Kinds, Measurement: opts.Measurement}, nil
	}
	return nil, fmt.Errorf("%w: %q, supported are %s", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}

// blocks returns the blocks of loc filtered by kinds.
func blocks(loc envelope.Location, kinds []envelope.Kind) []envelope.Block {
	all := loc.Blocks()
	if len(kinds) == 0 {
		return all
	}
	return slices.DeleteFunc(all, func(b envelope.Block) bool {
		return !slices.Contains(kinds, b.Kind())
	})
}

// ColumnName returns a name for series that is unique within a block for the responses the
// API produces: ensemble members and previous model runs are appended to the API name.
func ColumnName(series envelope.Series) string {
	name := series.Name()
	if member, ok := series.EnsembleMember(); ok {
		name += fmt.Sprintf("_member%02d", member)
	}
	if day, ok := series.PreviousDay(); ok {
		name += fmt.Sprintf("_previous_day%d", day)
	}
	return name
}
