// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// header returns the column headers of the rendered table. The period is
// decomposed into year and period-code fields.
func (t *Table) header() []string {
	cols := []string{"year", "period"}
	if t.Layout == Long {
		cols = append([]string{"series_id"}, cols...)
	}
	for _, c := range t.Columns {
		cols = append(cols, c.Name)
	}
	if t.Footnotes != nil {
		cols = append(cols, "footnotes")
	}
	return cols
}

// record returns row i as strings. Missing values render as empty cells.
func (t *Table) record(i int) []string {
	rec := []string{strconv.Itoa(t.Periods[i].Year), t.Periods[i].Code}
	if t.Layout == Long {
		rec = append([]string{t.Series[i]}, rec...)
	}
	for _, c := range t.Columns {
		rec = append(rec, formatValue(c.Values[i]))
	}
	if t.Footnotes != nil {
		rec = append(rec, t.Footnotes[i])
	}
	return rec
}

func formatValue(v float64) string {
	if IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatText writes the table as aligned human-readable columns.
func FormatText(t *Table, w io.Writer) {
	if t.NumRows() == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	header := t.header()
	widths := make([]int, len(header))
	records := make([][]string, 0, t.NumRows())
	for i, h := range header {
		widths[i] = len(h)
	}
	for i := 0; i < t.NumRows(); i++ {
		rec := t.record(i)
		records = append(records, rec)
		for j, cell := range rec {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	writeRow := func(rec []string) {
		parts := make([]string, len(rec))
		for j, cell := range rec {
			parts[j] = fmt.Sprintf("%-*s", widths[j], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	writeRow(header)
	total := 0
	for _, wd := range widths {
		total += wd + 2
	}
	fmt.Fprintln(w, strings.Repeat("-", total-2))
	for _, rec := range records {
		writeRow(rec)
	}
	fmt.Fprintf(w, "\n%d rows\n", t.NumRows())
}

// FormatCSV writes the table as CSV with a header row.
func FormatCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header()); err != nil {
		return err
	}
	for i := 0; i < t.NumRows(); i++ {
		if err := cw.Write(t.record(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonRow is one table row in the JSON rendering. Missing values encode as
// null.
type jsonRow struct {
	SeriesID string              `json:"series_id,omitempty"`
	Year     int                 `json:"year"`
	Period   string              `json:"period"`
	Values   map[string]*float64 `json:"values"`
}

// FormatJSON writes the table as an indented JSON array of rows.
func FormatJSON(t *Table, w io.Writer) error {
	rows := make([]jsonRow, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		row := jsonRow{
			Year:   t.Periods[i].Year,
			Period: t.Periods[i].Code,
			Values: make(map[string]*float64, len(t.Columns)),
		}
		if t.Layout == Long {
			row.SeriesID = t.Series[i]
		}
		for _, c := range t.Columns {
			if IsMissing(c.Values[i]) {
				row.Values[c.Name] = nil
				continue
			}
			v := c.Values[i]
			row.Values[c.Name] = &v
		}
		rows = append(rows, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
