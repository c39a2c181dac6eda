// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bls

import (
	"reflect"
	"testing"
)

func TestPlanChunks(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		maxSpan int
		want    []YearChunk
	}{
		{
			name:  "range fits one chunk",
			start: 2000, end: 2010, maxSpan: 20,
			want: []YearChunk{{2000, 2010}},
		},
		{
			name:  "single year",
			start: 2009, end: 2009, maxSpan: 10,
			want: []YearChunk{{2009, 2009}},
		},
		{
			name:  "exact multiple of span",
			start: 2000, end: 2019, maxSpan: 10,
			want: []YearChunk{{2000, 2009}, {2010, 2019}},
		},
		{
			name:  "short final chunk without key",
			start: 1990, end: 2015, maxSpan: 10,
			want: []YearChunk{{1990, 1999}, {2000, 2009}, {2010, 2015}},
		},
		{
			name:  "wide range with key",
			start: 1950, end: 1980, maxSpan: 20,
			want: []YearChunk{{1950, 1969}, {1970, 1980}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planChunks(tt.start, tt.end, tt.maxSpan)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("planChunks(%d, %d, %d) = %v, want %v", tt.start, tt.end, tt.maxSpan, got, tt.want)
			}
		})
	}
}

// TestPlanChunksPartition checks the partition invariants over a sweep of
// ranges: chunks ascend, touch without gaps or overlap, stay within the
// span limit, and cover exactly [start, end].
func TestPlanChunksPartition(t *testing.T) {
	for maxSpan := 1; maxSpan <= 25; maxSpan += 3 {
		for start := 1940; start <= 1945; start++ {
			for end := start; end <= start+60; end += 7 {
				chunks := planChunks(start, end, maxSpan)
				if len(chunks) == 0 {
					t.Fatalf("planChunks(%d, %d, %d) returned no chunks", start, end, maxSpan)
				}
				if chunks[0].Start != start {
					t.Errorf("first chunk starts at %d, want %d", chunks[0].Start, start)
				}
				if chunks[len(chunks)-1].End != end {
					t.Errorf("last chunk ends at %d, want %d", chunks[len(chunks)-1].End, end)
				}
				for i, c := range chunks {
					if c.Span() < 1 || c.Span() > maxSpan {
						t.Errorf("chunk %v span %d outside [1, %d]", c, c.Span(), maxSpan)
					}
					if i > 0 && c.Start != chunks[i-1].End+1 {
						t.Errorf("gap or overlap between %v and %v", chunks[i-1], c)
					}
				}
			}
		}
	}
}

func TestBatchSeries(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		max  int
		want [][]string
	}{
		{"under limit", []string{"A", "B"}, 25, [][]string{{"A", "B"}}},
		{"exact limit", []string{"A", "B", "C"}, 3, [][]string{{"A", "B", "C"}}},
		{"split preserves order", []string{"A", "B", "C", "D", "E"}, 2, [][]string{{"A", "B"}, {"C", "D"}, {"E"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := batchSeries(tt.ids, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("batchSeries(%v, %d) = %v, want %v", tt.ids, tt.max, got, tt.want)
			}
		})
	}
}

func TestDedupeSeries(t *testing.T) {
	got := dedupeSeries([]string{"B", "A", "B", "", "C", "A"})
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeSeries() = %v, want %v", got, want)
	}
}
