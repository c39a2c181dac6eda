// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bls

// YearChunk is one provider-compliant sub-range of years. The API rejects
// ranges longer than 20 years (10 without a key), so wider requests are
// split into chunks and pulled one at a time.
type YearChunk struct {
	Start int
	End   int
}

// Span returns the number of years the chunk covers, inclusive.
func (c YearChunk) Span() int { return c.End - c.Start + 1 }

// planChunks partitions [start, end] into consecutive non-overlapping
// chunks of at most maxSpan years, ascending. The final chunk may be
// shorter. A range that fits in one chunk produces exactly one.
func planChunks(start, end, maxSpan int) []YearChunk {
	var chunks []YearChunk
	for s := start; s <= end; s += maxSpan {
		e := s + maxSpan - 1
		if e > end {
			e = end
		}
		chunks = append(chunks, YearChunk{Start: s, End: e})
	}
	return chunks
}

// batchSeries partitions ids into ordered batches of at most max entries,
// the same windowing planChunks applies to years. The API caps the number
// of series per request (50 with a key, 25 without).
func batchSeries(ids []string, max int) [][]string {
	var batches [][]string
	for i := 0; i < len(ids); i += max {
		j := i + max
		if j > len(ids) {
			j = len(ids)
		}
		batches = append(batches, ids[i:j])
	}
	return batches
}

// dedupeSeries drops repeated IDs while preserving first-appearance order.
func dedupeSeries(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
