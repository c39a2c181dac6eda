// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

// Interpolate fills missing values per series by linear interpolation
// between the nearest non-missing neighbors in time order. Values are never
// extrapolated before the first or after the last known observation, and a
// series with no known values stays entirely missing.
//
// In the wide layout each column is one series; in the long layout the value
// column is filled independently per series label.
func (t *Table) Interpolate() *Table {
	out := t.clone()
	if out.Layout == Long {
		for ci, c := range out.Columns {
			if c.Name != ValueColumn {
				continue
			}
			for _, name := range out.SeriesNames() {
				var idx []int
				for i, s := range out.Series {
					if s == name {
						idx = append(idx, i)
					}
				}
				fillLinear(out.Columns[ci].Values, idx)
			}
		}
		return out
	}
	idx := make([]int, out.NumRows())
	for i := range idx {
		idx[i] = i
	}
	for ci := range out.Columns {
		fillLinear(out.Columns[ci].Values, idx)
	}
	return out
}

// fillLinear interpolates vals at the positions idx, which must already be
// in time order.
func fillLinear(vals []float64, idx []int) {
	prev := -1 // position within idx of the last known value
	for j, i := range idx {
		if IsMissing(vals[i]) {
			continue
		}
		if prev >= 0 && j-prev > 1 {
			lo, hi := vals[idx[prev]], vals[i]
			span := float64(j - prev)
			for k := prev + 1; k < j; k++ {
				vals[idx[k]] = lo + (hi-lo)*float64(k-prev)/span
			}
		}
		prev = j
	}
}

// clone returns a deep copy so transformations never mutate their input.
func (t *Table) clone() *Table {
	out := &Table{Layout: t.Layout}
	out.Periods = append([]Period(nil), t.Periods...)
	if t.Series != nil {
		out.Series = append([]string(nil), t.Series...)
	}
	if t.Footnotes != nil {
		out.Footnotes = append([]string(nil), t.Footnotes...)
	}
	out.Columns = make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		out.Columns[i] = Column{Name: c.Name, Values: append([]float64(nil), c.Values...)}
	}
	return out
}
