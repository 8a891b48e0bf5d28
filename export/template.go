// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/meteobuf/envelope"
	"github.com/wneessen/meteobuf/internal/vartype"
)

// DefaultTemplate prints the current conditions and the next hours of every location.
const DefaultTemplate = `{{- range . -}}
{{ .Timezone }} ({{ floatFormat .Latitude 2 }}, {{ floatFormat .Longitude 2 }})
{{- with .Block "current" }}
{{- range .Series }}
  {{ pad .Name 28 }} {{ index .Values 0 }} {{ .Unit }}
{{- end }}
{{- end }}
{{- with $b := .Block "hourly" }}
{{- range $i, $t := $b.Times }}{{ if lt $i 6 }}
  {{ timeFormat $t "Mon 15:04" }}{{ range $b.Series }} {{ index .Values $i }}{{ end }}
{{- end }}{{ end }}
{{- end }}
{{ end -}}`

// LocationView is the data a template sees per location.
type LocationView struct {
	Index                int
	Latitude             float64
	Longitude            float64
	Elevation            float64
	Timezone             string
	TimezoneAbbreviation string
	GenerationTime       time.Duration
	Blocks               []BlockView
}

// Block returns the block view of the named kind, or nil.
func (l LocationView) Block(kind string) *BlockView {
	for i := range l.Blocks {
		if l.Blocks[i].Kind == kind {
			return &l.Blocks[i]
		}
	}
	return nil
}

// BlockView is the data a template sees per block.
type BlockView struct {
	Kind     string
	Interval time.Duration
	Times    []time.Time
	Series   []SeriesView
}

// SeriesView is the data a template sees per series. Values holds vartype.Unset for missing
// samples when printed.
type SeriesView struct {
	Name          string
	Unit          string
	Aggregation   string
	Altitude      vartype.VarFloat64
	PressureLevel vartype.VarFloat64
	Depth         vartype.VarFloat64
	Member        vartype.VarInt
	Values        []vartype.VarFloat64
}

// Template renders locations with a text/template.
type Template struct {
	tpl   *template.Template
	kinds []envelope.Kind
}

// NewTemplate parses text. An empty text selects DefaultTemplate.
func NewTemplate(text string, kinds []envelope.Kind) (*Template, error) {
	if text == "" {
		text = DefaultTemplate
	}
	tpl, err := template.New("export").Funcs(templateFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export template: %w", err)
	}
	return &Template{tpl: tpl, kinds: kinds}, nil
}

func (t *Template) Export(w io.Writer, locations []envelope.Location) error {
	if err := t.tpl.Execute(w, Views(locations, t.kinds)); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}

// Views converts locations into template data. Times are in the location's UTC offset.
func Views(locations []envelope.Location, kinds []envelope.Kind) []LocationView {
	views := make([]LocationView, 0, len(locations))
	for _, loc := range locations {
		view := LocationView{
			Index:                loc.Index(),
			Latitude:             loc.Latitude(),
			Longitude:            loc.Longitude(),
			Elevation:            float64(loc.Elevation()),
			Timezone:             loc.Timezone(),
			TimezoneAbbreviation: loc.TimezoneAbbreviation(),
			GenerationTime:       loc.GenerationTime(),
		}
		zone := loc.TimeLocation()
		for _, block := range blocks(loc, kinds) {
			bv := BlockView{Kind: block.Kind().String(), Interval: block.Interval()}
			for _, tm := range block.Times() {
				bv.Times = append(bv.Times, tm.In(zone))
			}
			for _, s := range block.Variables() {
				bv.Series = append(bv.Series, seriesView(s))
			}
			view.Blocks = append(view.Blocks, bv)
		}
		views = append(views, view)
	}
	return views
}

func seriesView(s envelope.Series) SeriesView {
	view := SeriesView{
		Name:          ColumnName(s),
		Unit:          s.Unit().String(),
		Aggregation:   s.Aggregation().String(),
		Altitude:      vartype.FromOK(s.Altitude()),
		PressureLevel: vartype.FromOK(s.PressureLevel()),
		Depth:         vartype.FromOK(s.Depth()),
		Member:        vartype.FromOK(s.EnsembleMember()),
	}
	if ints := s.ValuesInt64(); len(ints) > 0 {
		for _, v := range ints {
			view.Values = append(view.Values, vartype.NewVariable(float64(v)))
		}
		return view
	}
	values := s.Values()
	view.Values = make([]vartype.VarFloat64, len(values))
	for i := range values {
		view.Values[i] = sample(values, i)
	}
	return view
}

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":  timeFormat,
		"unixTime":    unixTime,
		"floatFormat": floatFormat,
		"pad":         pad,
		"lc":          strings.ToLower,
		"uc":          strings.ToUpper,
	}
}

func timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func unixTime(val vartype.VarFloat64) time.Time {
	return time.Unix(int64(val.Value()), 0).UTC()
}

func floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

// pad fills val with spaces up to width terminal cells.
func pad(val string, width int) string {
	return runewidth.FillRight(val, width)
}
