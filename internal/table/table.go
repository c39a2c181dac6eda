// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table provides the tabular representation for BLS time series:
// wide and long layouts, missing-value interpolation, and temporal
// aggregation. Missing cells are NaN; operations never turn a missing cell
// into zero.
package table

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Layout selects the tabular shape of a result.
type Layout string

const (
	// Wide is one row per period, one value column per series.
	Wide Layout = "wide"

	// Long is one row per (series, period) pair with a single value column.
	Long Layout = "long"
)

// ParseLayout validates a layout string.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case Wide, Long:
		return Layout(s), nil
	case "":
		return Wide, nil
	}
	return "", fmt.Errorf("layout must be %q or %q, got %q", Wide, Long, s)
}

// Period identifies one observation time: a year plus the BLS intra-year
// period code (M01-M13, Q01-Q05, S01-S03, A01).
type Period struct {
	Year int
	Code string
}

// Time returns the timestamp of the start of the period. Annual codes
// (A01, M13, Q05, S03) map to January 1.
func (p Period) Time() time.Time {
	return time.Date(p.Year, time.Month(p.startMonth()), 1, 0, 0, 0, 0, time.UTC)
}

// startMonth returns the first calendar month covered by the period code.
// Unrecognized codes sort to month 1.
func (p Period) startMonth() int {
	n, freq := codeOrdinal(p.Code)
	switch freq {
	case Month:
		return n
	case Quarter:
		return 3*(n-1) + 1
	case Semiannual:
		return 6*(n-1) + 1
	}
	return 1
}

// Before orders periods chronologically; ties break on the literal code so
// sorting is deterministic when annual and sub-annual rows coexist.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	if pm, qm := p.startMonth(), q.startMonth(); pm != qm {
		return pm < qm
	}
	return p.Code < q.Code
}

// String renders the period as "2009 M01".
func (p Period) String() string {
	return fmt.Sprintf("%d %s", p.Year, p.Code)
}

// Column is one named value column. Values align with the table rows;
// missing cells are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Table is a rectangular frame of time series observations. Rows are
// identified by Periods; in the long layout Series additionally carries the
// series ID of each row and the table has a single "value" column. In the
// wide layout Series is nil and each column holds one series.
type Table struct {
	Layout  Layout
	Periods []Period
	Series  []string // long layout only; len == len(Periods)
	Columns []Column

	// Footnotes optionally carries provider footnote text per row. It is
	// dropped by aggregation.
	Footnotes []string
}

// ValueColumn is the column name used for observation values in the long
// layout.
const ValueColumn = "value"

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.Periods) }

// Column returns the named column, if present.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// SeriesNames returns the series IDs of the table: column names in the wide
// layout, distinct row labels in first-appearance order in the long layout.
func (t *Table) SeriesNames() []string {
	if t.Layout == Wide {
		names := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			names[i] = c.Name
		}
		return names
	}
	seen := make(map[string]bool)
	var names []string
	for _, s := range t.Series {
		if !seen[s] {
			seen[s] = true
			names = append(names, s)
		}
	}
	return names
}

// Append concatenates the rows of other onto t. Both tables must share the
// layout and, in the wide layout, the same column set in the same order.
func (t *Table) Append(other *Table) error {
	if t.Layout != other.Layout {
		return fmt.Errorf("cannot append %s table to %s table", other.Layout, t.Layout)
	}
	if t.Layout == Wide {
		if len(t.Columns) != len(other.Columns) {
			return fmt.Errorf("column count mismatch: %d vs %d", len(t.Columns), len(other.Columns))
		}
		for i := range t.Columns {
			if t.Columns[i].Name != other.Columns[i].Name {
				return fmt.Errorf("column mismatch at %d: %q vs %q", i, t.Columns[i].Name, other.Columns[i].Name)
			}
		}
	}
	t.Periods = append(t.Periods, other.Periods...)
	t.Series = append(t.Series, other.Series...)
	for i := range t.Columns {
		t.Columns[i].Values = append(t.Columns[i].Values, other.Columns[i].Values...)
	}
	if t.Footnotes != nil || other.Footnotes != nil {
		t.Footnotes = append(padNotes(t.Footnotes, len(t.Periods)-len(other.Periods)),
			padNotes(other.Footnotes, len(other.Periods))...)
	}
	return nil
}

func padNotes(notes []string, n int) []string {
	for len(notes) < n {
		notes = append(notes, "")
	}
	return notes
}

// Cell is one (series, period, value) triple.
type Cell struct {
	SeriesID string
	Period   Period
	Value    float64 // NaN when missing
}

// Cells flattens the table into its (series, period, value) triples. Wide
// and long renderings of the same data produce the same cell set, so this is
// the layout-independent view of a table.
func (t *Table) Cells() []Cell {
	var cells []Cell
	if t.Layout == Long {
		col, ok := t.Column(ValueColumn)
		if !ok {
			return nil
		}
		for i, p := range t.Periods {
			cells = append(cells, Cell{SeriesID: t.Series[i], Period: p, Value: col.Values[i]})
		}
		return cells
	}
	for _, c := range t.Columns {
		for i, p := range t.Periods {
			cells = append(cells, Cell{SeriesID: c.Name, Period: p, Value: c.Values[i]})
		}
	}
	return cells
}

// SortRows orders rows ascending by period; in the long layout rows with the
// same period keep their relative series order.
func (t *Table) SortRows() {
	idx := make([]int, len(t.Periods))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Periods[idx[a]].Before(t.Periods[idx[b]])
	})
	t.Periods = reorder(t.Periods, idx)
	if t.Series != nil {
		t.Series = reorder(t.Series, idx)
	}
	if t.Footnotes != nil {
		t.Footnotes = reorder(t.Footnotes, idx)
	}
	for i := range t.Columns {
		t.Columns[i].Values = reorder(t.Columns[i].Values, idx)
	}
}

func reorder[T any](s []T, idx []int) []T {
	out := make([]T, len(s))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}

// IsMissing reports whether v represents a missing observation.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Missing is the explicit missing-value marker.
func Missing() float64 { return math.NaN() }
