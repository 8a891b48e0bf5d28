// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/meteobuf/envelope"
	"github.com/wneessen/meteobuf/variable"
)

// Text writes one aligned table per location and block. Times are rendered in the
// location's UTC offset.
type Text struct {
	Kinds []envelope.Kind
}

const textTimeFormat = "2006-01-02 15:04"

func (e *Text) Export(w io.Writer, locations []envelope.Location) error {
	bw := bufio.NewWriter(w)
	for i, loc := range locations {
		if i > 0 {
			_, _ = bw.WriteString("\n")
		}
		_, _ = fmt.Fprintf(bw, "location %d: %s %s, %gm, %s (%s)\n", loc.Index(),
			coordinate(loc.Latitude(), "N", "S"), coordinate(loc.Longitude(), "E", "W"), loc.Elevation(),
			loc.Timezone(), loc.TimezoneAbbreviation())
		for _, block := range blocks(loc, e.Kinds) {
			_, _ = fmt.Fprintf(bw, "\n[%s]\n", block.Kind())
			writeTable(bw, table(loc.TimeLocation(), block))
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text table: %w", err)
	}
	return nil
}

func coordinate(v float64, pos, neg string) string {
	dir := pos
	if v < 0 {
		v, dir = -v, neg
	}
	return strconv.FormatFloat(v, 'f', 4, 64) + "°" + dir
}

// table returns the header, unit line and sample rows of block.
func table(zone *time.Location, block envelope.Block) [][]string {
	series := block.Variables()
	header := make([]string, 0, len(series)+1)
	units := make([]string, 0, len(series)+1)
	header, units = append(header, "time"), append(units, "")
	for _, s := range series {
		header = append(header, ColumnName(s))
		units = append(units, s.Unit().String())
	}

	rows := [][]string{header, units}
	for i, tm := range block.Times() {
		row := make([]string, 0, len(series)+1)
		row = append(row, tm.In(zone).Format(textTimeFormat))
		for _, s := range series {
			row = append(row, cell(s, i))
		}
		rows = append(rows, row)
	}
	return rows
}

func cell(s envelope.Series, i int) string {
	if ints := s.ValuesInt64(); i < len(ints) {
		if s.Unit() == variable.UnitUnixTime {
			return time.Unix(ints[i], 0).UTC().Format(textTimeFormat)
		}
		return strconv.FormatInt(ints[i], 10)
	}
	values := s.Values()
	if i >= len(values) || envelope.IsMissing(values[i]) {
		return "-"
	}
	return strconv.FormatFloat(float64(values[i]), 'f', -1, 32)
}

// writeTable pads every column to its widest cell. Widths are measured in terminal cells so
// units like °C and µg/m³ line up.
func writeTable(w io.Writer, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if i == 0 {
				cells[i] = runewidth.FillRight(c, widths[i])
				continue
			}
			cells[i] = runewidth.FillLeft(c, widths[i])
		}
		_, _ = io.WriteString(w, strings.TrimRight(strings.Join(cells, "  "), " ")+"\n")
	}
}
