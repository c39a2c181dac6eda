// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Frequency is a temporal bucket size, ordered finest to coarsest.
type Frequency int

const (
	Month Frequency = iota
	Quarter
	Semiannual
	Year
)

// ParseFrequency accepts the single-letter BLS frequency codes and their
// spelled-out forms. Anything finer than monthly is not a valid target.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "month", "monthly":
		return Month, nil
	case "q", "quarter", "quarterly":
		return Quarter, nil
	case "s", "semiannual":
		return Semiannual, nil
	case "y", "a", "year", "annual":
		return Year, nil
	}
	return 0, fmt.Errorf("frequency must be one of y, s, q, m; got %q", s)
}

func (f Frequency) String() string {
	switch f {
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	case Semiannual:
		return "semiannual"
	case Year:
		return "year"
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// codeOrdinal splits a BLS period code into its ordinal within the year and
// its native frequency. The annual-summary codes M13, Q05, and S03 are
// annual.
func codeOrdinal(code string) (int, Frequency) {
	n, freq, _ := parseCode(code)
	return n, freq
}

func parseCode(code string) (int, Frequency, bool) {
	if len(code) != 3 {
		return 0, Year, false
	}
	n := int(code[1]-'0')*10 + int(code[2]-'0')
	switch code[0] {
	case 'M':
		if n >= 1 && n <= 12 {
			return n, Month, true
		}
		if n == 13 {
			return 1, Year, true
		}
	case 'Q':
		if n >= 1 && n <= 4 {
			return n, Quarter, true
		}
		if n == 5 {
			return 1, Year, true
		}
	case 'S':
		if n >= 1 && n <= 2 {
			return n, Semiannual, true
		}
		if n == 3 {
			return 1, Year, true
		}
	case 'A':
		if n == 1 {
			return 1, Year, true
		}
	}
	return 0, Year, false
}

// bucketCode maps a period code to the code of the target-frequency bucket
// containing it. A target finer than the code's native frequency leaves the
// code unchanged (bucket of one).
func bucketCode(code string, target Frequency) string {
	_, native, ok := parseCode(code)
	if !ok || target < native {
		return code
	}
	m := Period{Code: code}.startMonth()
	switch target {
	case Month:
		return code
	case Quarter:
		return fmt.Sprintf("Q%02d", (m-1)/3+1)
	case Semiannual:
		return fmt.Sprintf("S%02d", (m-1)/6+1)
	default:
		return "A01"
	}
}

// Reduction names the method used to collapse each bucket.
type Reduction string

const (
	Mean   Reduction = "mean"
	First  Reduction = "first"
	Last   Reduction = "last"
	Min    Reduction = "min"
	Max    Reduction = "max"
	Sum    Reduction = "sum"
	Median Reduction = "median"
)

// ParseReduction validates a reduction name. An empty string selects Mean.
func ParseReduction(s string) (Reduction, error) {
	switch r := Reduction(strings.ToLower(strings.TrimSpace(s))); r {
	case Mean, First, Last, Min, Max, Sum, Median:
		return r, nil
	case "":
		return Mean, nil
	default:
		return "", fmt.Errorf("unknown reduction %q", s)
	}
}

// reduce collapses vals with the given method, skipping missing entries.
// A bucket with no non-missing values stays missing.
func reduce(method Reduction, vals []float64) float64 {
	known := vals[:0:0]
	for _, v := range vals {
		if !IsMissing(v) {
			known = append(known, v)
		}
	}
	if len(known) == 0 {
		return Missing()
	}
	switch method {
	case First:
		return known[0]
	case Last:
		return known[len(known)-1]
	case Min:
		out := known[0]
		for _, v := range known[1:] {
			out = math.Min(out, v)
		}
		return out
	case Max:
		out := known[0]
		for _, v := range known[1:] {
			out = math.Max(out, v)
		}
		return out
	case Sum, Mean:
		sum := 0.0
		for _, v := range known {
			sum += v
		}
		if method == Sum {
			return sum
		}
		return sum / float64(len(known))
	case Median:
		sort.Float64s(known)
		n := len(known)
		if n%2 == 0 {
			return (known[n/2-1] + known[n/2]) / 2
		}
		return known[n/2]
	}
	return Missing()
}

// GroupBy collapses rows into target-frequency buckets and reduces each
// bucket per series with the given method. Rows come back sorted ascending
// by period; footnotes do not survive aggregation.
func (t *Table) GroupBy(target Frequency, method Reduction) (*Table, error) {
	if _, err := ParseReduction(string(method)); err != nil {
		return nil, err
	}
	if t.Layout == Long {
		return t.groupLong(target, method), nil
	}
	return t.groupWide(target, method), nil
}

func (t *Table) groupWide(target Frequency, method Reduction) *Table {
	type bucket struct {
		period Period
		vals   [][]float64 // per column
	}
	var order []Period
	buckets := make(map[Period]*bucket)
	for i, p := range t.Periods {
		bp := Period{Year: p.Year, Code: bucketCode(p.Code, target)}
		b, ok := buckets[bp]
		if !ok {
			b = &bucket{period: bp, vals: make([][]float64, len(t.Columns))}
			buckets[bp] = b
			order = append(order, bp)
		}
		for c := range t.Columns {
			b.vals[c] = append(b.vals[c], t.Columns[c].Values[i])
		}
	}
	sort.Slice(order, func(a, b int) bool { return order[a].Before(order[b]) })

	out := &Table{Layout: Wide, Columns: make([]Column, len(t.Columns))}
	for c := range t.Columns {
		out.Columns[c].Name = t.Columns[c].Name
	}
	for _, bp := range order {
		out.Periods = append(out.Periods, bp)
		for c := range t.Columns {
			out.Columns[c].Values = append(out.Columns[c].Values, reduce(method, buckets[bp].vals[c]))
		}
	}
	return out
}

func (t *Table) groupLong(target Frequency, method Reduction) *Table {
	type key struct {
		series string
		period Period
	}
	col, _ := t.Column(ValueColumn)
	seriesOrder := t.SeriesNames()
	seriesRank := make(map[string]int, len(seriesOrder))
	for i, s := range seriesOrder {
		seriesRank[s] = i
	}

	var order []key
	buckets := make(map[key][]float64)
	for i, p := range t.Periods {
		k := key{series: t.Series[i], period: Period{Year: p.Year, Code: bucketCode(p.Code, target)}}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], col.Values[i])
	}
	sort.Slice(order, func(a, b int) bool {
		if order[a].period != order[b].period {
			return order[a].period.Before(order[b].period)
		}
		return seriesRank[order[a].series] < seriesRank[order[b].series]
	})

	out := &Table{Layout: Long, Columns: []Column{{Name: ValueColumn}}}
	for _, k := range order {
		out.Periods = append(out.Periods, k.period)
		out.Series = append(out.Series, k.series)
		out.Columns[0].Values = append(out.Columns[0].Values, reduce(method, buckets[k]))
	}
	return out
}
