// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bls

import (
	"fmt"
	"sort"

	"github.com/pdiddy/blsconnect/internal/table"
)

func missing() float64 { return table.Missing() }

type cellKey struct {
	series string
	period table.Period
}

// normalized is the merged view of all chunk responses: one cell per
// (series, period) with the series and period orderings needed to render
// either layout.
type normalized struct {
	values    map[cellKey]float64
	footnotes map[cellKey]string
	series    []string // requested series that returned data, request order
	periods   []table.Period
}

// mergeObservations combines the observations from every chunk into one
// normalized table and reports what the provider never returned: one
// diagnostic per requested series absent from all responses and one per
// requested year with no observations for any series.
//
// A cell reported by more than one chunk (the API is inclusive at chunk
// boundaries) keeps its first non-missing value; a later missing report
// never overwrites a value already present.
func mergeObservations(obs []Observation, requested []string, start, end int) (*normalized, []string) {
	n := &normalized{
		values:    make(map[cellKey]float64),
		footnotes: make(map[cellKey]string),
	}
	returned := make(map[string]bool)
	years := make(map[int]bool)
	periodSeen := make(map[table.Period]bool)

	for _, o := range obs {
		returned[o.SeriesID] = true
		years[o.Year] = true
		k := cellKey{series: o.SeriesID, period: table.Period{Year: o.Year, Code: o.Period}}
		if !periodSeen[k.period] {
			periodSeen[k.period] = true
			n.periods = append(n.periods, k.period)
		}
		if prev, ok := n.values[k]; ok && !table.IsMissing(prev) {
			continue
		}
		n.values[k] = o.Value
		if o.Footnotes != "" {
			n.footnotes[k] = o.Footnotes
		}
	}

	sort.Slice(n.periods, func(a, b int) bool { return n.periods[a].Before(n.periods[b]) })

	var diags []string
	for _, id := range requested {
		if returned[id] {
			n.series = append(n.series, id)
			continue
		}
		diags = append(diags, fmt.Sprintf("series %s: no data returned for %d-%d", id, start, end))
	}
	for y := start; y <= end; y++ {
		if !years[y] {
			diags = append(diags, fmt.Sprintf("year %d: no observations returned for any series", y))
		}
	}
	return n, diags
}

// reshape renders the normalized table in the requested layout. Both
// layouts cover every (series, period) combination present in the merge;
// cells the provider never reported stay missing. Neither layout invents
// periods absent from all responses.
func (n *normalized) reshape(layout table.Layout, keepFootnotes bool) *table.Table {
	if layout == table.Long {
		return n.reshapeLong(keepFootnotes)
	}
	return n.reshapeWide(keepFootnotes)
}

func (n *normalized) reshapeWide(keepFootnotes bool) *table.Table {
	t := &table.Table{Layout: table.Wide}
	t.Periods = append(t.Periods, n.periods...)
	for _, id := range n.series {
		col := table.Column{Name: id, Values: make([]float64, 0, len(n.periods))}
		for _, p := range n.periods {
			col.Values = append(col.Values, n.cell(id, p))
		}
		t.Columns = append(t.Columns, col)
	}
	if keepFootnotes && len(n.series) == 1 {
		t.Footnotes = make([]string, 0, len(n.periods))
		for _, p := range n.periods {
			t.Footnotes = append(t.Footnotes, n.footnotes[cellKey{series: n.series[0], period: p}])
		}
	}
	return t
}

// reshapeLong emits one row per (series, period), ascending by period with
// the request's series order within each period.
func (n *normalized) reshapeLong(keepFootnotes bool) *table.Table {
	t := &table.Table{
		Layout:  table.Long,
		Columns: []table.Column{{Name: table.ValueColumn}},
	}
	if keepFootnotes {
		t.Footnotes = []string{}
	}
	for _, p := range n.periods {
		for _, id := range n.series {
			t.Periods = append(t.Periods, p)
			t.Series = append(t.Series, id)
			t.Columns[0].Values = append(t.Columns[0].Values, n.cell(id, p))
			if keepFootnotes {
				t.Footnotes = append(t.Footnotes, n.footnotes[cellKey{series: id, period: p}])
			}
		}
	}
	return t
}

// cell returns the merged value for (id, p), missing when never reported.
func (n *normalized) cell(id string, p table.Period) float64 {
	if v, ok := n.values[cellKey{series: id, period: p}]; ok {
		return v
	}
	return missing()
}
