// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blsconnect/internal/table"
	"github.com/pdiddy/blsconnect/pkg/types"
)

// fetchCall records one scripted fetch.
type fetchCall struct {
	ids     []string
	chunk   YearChunk
	catalog bool
}

// fakeFetcher scripts responses per chunk without any network.
type fakeFetcher struct {
	calls   []fetchCall
	respond func(ids []string, chunk YearChunk) (*fetchResult, error)
}

func (f *fakeFetcher) fetch(_ context.Context, ids []string, chunk YearChunk, catalog bool) (*fetchResult, error) {
	f.calls = append(f.calls, fetchCall{ids: ids, chunk: chunk, catalog: catalog})
	if f.respond == nil {
		return &fetchResult{}, nil
	}
	return f.respond(ids, chunk)
}

// monthlyObs reports one observation per (series, year, month) with the
// given value.
func monthlyObs(ids []string, chunk YearChunk, value float64) *fetchResult {
	fr := &fetchResult{}
	for _, id := range ids {
		for y := chunk.Start; y <= chunk.End; y++ {
			for m := 1; m <= 12; m++ {
				fr.observations = append(fr.observations, Observation{
					SeriesID: id, Year: y, Period: fmt.Sprintf("M%02d", m), Value: value,
				})
			}
		}
	}
	return fr
}

func newTestClient(f fetcher, maxSpan, maxBatch int) *Client {
	return &Client{
		fetcher:  f,
		out:      io.Discard,
		maxSpan:  maxSpan,
		maxBatch: maxBatch,
		now:      func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestSeriesChunkingScenario(t *testing.T) {
	// 1990-2015 without a key: three ascending chunks, three fetches.
	f := &fakeFetcher{respond: func(ids []string, chunk YearChunk) (*fetchResult, error) {
		return monthlyObs(ids, chunk, 1.0), nil
	}}
	c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)

	result, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 1990, EndYear: 2015})
	require.NoError(t, err)

	wantChunks := []YearChunk{{1990, 1999}, {2000, 2009}, {2010, 2015}}
	require.Len(t, f.calls, len(wantChunks))
	for i, call := range f.calls {
		assert.Equal(t, wantChunks[i], call.chunk)
		assert.Equal(t, []string{"A"}, call.ids)
	}

	assert.Equal(t, 26*12, result.Table.NumRows())
	assert.Empty(t, result.Messages)
}

func TestSeriesInvalidInputBeforeAnyFetch(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		opts SeriesOptions
	}{
		{"start after end", []string{"A"}, SeriesOptions{StartYear: 2020, EndYear: 2019}},
		{"no series", nil, SeriesOptions{StartYear: 2019, EndYear: 2020}},
		{"bad layout", []string{"A"}, SeriesOptions{Layout: "diagonal"}},
		{"bad frequency", []string{"A"}, SeriesOptions{GroupBy: "fortnight"}},
		{"frequency finer than month", []string{"A"}, SeriesOptions{GroupBy: "d"}},
		{"bad reduction", []string{"A"}, SeriesOptions{GroupBy: "y", GroupMethod: "mode"}},
		{"wide footnotes with two series", []string{"A", "B"}, SeriesOptions{KeepFootnotes: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{}
			c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)
			_, err := c.Series(context.Background(), tt.ids, tt.opts)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Empty(t, f.calls, "no fetch may happen on invalid input")
		})
	}
}

func TestSeriesBatchesSeriesIDs(t *testing.T) {
	f := &fakeFetcher{respond: func(ids []string, chunk YearChunk) (*fetchResult, error) {
		return monthlyObs(ids, chunk, 1.0), nil
	}}
	c := newTestClient(f, maxSpanWithoutKey, 2)

	_, err := c.Series(context.Background(), []string{"A", "B", "C"}, SeriesOptions{StartYear: 2020, EndYear: 2021})
	require.NoError(t, err)

	require.Len(t, f.calls, 2)
	assert.Equal(t, []string{"A", "B"}, f.calls[0].ids)
	assert.Equal(t, []string{"C"}, f.calls[1].ids)
	assert.Equal(t, f.calls[0].chunk, f.calls[1].chunk)
}

func TestSeriesPartialDiagnosticsSurviveFailure(t *testing.T) {
	providerErr := &ProviderError{Status: "REQUEST_NOT_PROCESSED", Messages: []string{"daily threshold exceeded"}}
	f := &fakeFetcher{respond: func(ids []string, chunk YearChunk) (*fetchResult, error) {
		if chunk.Start == 2000 {
			return nil, providerErr
		}
		fr := monthlyObs(ids, chunk, 1.0)
		fr.messages = []string{fmt.Sprintf("chunk %d-%d ok", chunk.Start, chunk.End)}
		return fr, nil
	}}
	c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)

	_, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 1990, EndYear: 2005})

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	// The first chunk's messages stay readable after the failure.
	assert.Equal(t, []string{"chunk 1990-1999 ok"}, c.Messages())
}

func TestSeriesMessagesResetPerCall(t *testing.T) {
	withMessage := true
	f := &fakeFetcher{respond: func(ids []string, chunk YearChunk) (*fetchResult, error) {
		fr := monthlyObs(ids, chunk, 1.0)
		if withMessage {
			fr.messages = []string{"first call message"}
		}
		return fr, nil
	}}
	c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)

	res1, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 2020, EndYear: 2020})
	require.NoError(t, err)
	require.Equal(t, []string{"first call message"}, res1.Messages)

	withMessage = false
	res2, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 2020, EndYear: 2020})
	require.NoError(t, err)
	assert.Empty(t, res2.Messages)
	assert.Empty(t, c.Messages())
}

func TestSeriesCatalogMerging(t *testing.T) {
	f := &fakeFetcher{respond: func(ids []string, chunk YearChunk) (*fetchResult, error) {
		fr := monthlyObs(ids, chunk, 1.0)
		fr.catalog = map[string]types.SeriesCatalog{
			ids[0]: {SeriesID: ids[0], SeriesTitle: fmt.Sprintf("title from %d", chunk.Start)},
		}
		return fr, nil
	}}
	c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)
	c.catalogEnabled = true

	result, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 1995, EndYear: 2010})
	require.NoError(t, err)

	for _, call := range f.calls {
		assert.True(t, call.catalog, "catalog must be requested when enabled")
	}
	require.Contains(t, result.Catalog, "A")
	assert.Equal(t, c.Catalog(), result.Catalog)
}

func TestSeriesGroupByYearMean(t *testing.T) {
	// Twelve monthly values 1..12 collapse to one annual bucket of 6.5.
	f := &fakeFetcher{respond: func(ids []string, chunk YearChunk) (*fetchResult, error) {
		fr := &fetchResult{}
		for m := 1; m <= 12; m++ {
			fr.observations = append(fr.observations, Observation{
				SeriesID: "A", Year: chunk.Start, Period: fmt.Sprintf("M%02d", m), Value: float64(m),
			})
		}
		return fr, nil
	}}
	c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)

	result, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{
		StartYear: 2009, EndYear: 2009, GroupBy: "y", GroupMethod: "mean",
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.Table.NumRows())
	assert.Equal(t, table.Period{Year: 2009, Code: "A01"}, result.Table.Periods[0])
	col, ok := result.Table.Column("A")
	require.True(t, ok)
	assert.Equal(t, 6.5, col.Values[0])
}

func TestSeriesGroupByMonthIsNoOp(t *testing.T) {
	respond := func(ids []string, chunk YearChunk) (*fetchResult, error) {
		fr := &fetchResult{}
		for m := 1; m <= 12; m++ {
			fr.observations = append(fr.observations, Observation{
				SeriesID: "A", Year: chunk.Start, Period: fmt.Sprintf("M%02d", m), Value: float64(m),
			})
		}
		return fr, nil
	}

	plain := newTestClient(&fakeFetcher{respond: respond}, maxSpanWithoutKey, maxBatchNoKey)
	grouped := newTestClient(&fakeFetcher{respond: respond}, maxSpanWithoutKey, maxBatchNoKey)

	base, err := plain.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 2009, EndYear: 2009})
	require.NoError(t, err)
	monthly, err := grouped.Series(context.Background(), []string{"A"}, SeriesOptions{
		StartYear: 2009, EndYear: 2009, GroupBy: "m", GroupMethod: "first",
	})
	require.NoError(t, err)

	assert.Equal(t, base.Table.Periods, monthly.Table.Periods)
	assert.Equal(t, base.Table.Columns, monthly.Table.Columns)
}

func TestYearRangeDefaults(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		wantStart  int
		wantEnd    int
	}{
		{"both given", 1990, 2000, 1990, 2000},
		{"neither given", 0, 0, 2017, 2026},
		{"only end given", 0, 2003, 1994, 2003},
		{"only start given", 1986, 0, 1986, 1995},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&fakeFetcher{}, maxSpanWithoutKey, maxBatchNoKey)
			start, end, err := c.yearRange(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestNewDerivesLimitsFromKey(t *testing.T) {
	keyless := New(types.ClientConfig{})
	assert.Equal(t, maxSpanWithoutKey, keyless.maxSpan)
	assert.Equal(t, maxBatchNoKey, keyless.maxBatch)
	assert.False(t, keyless.catalogEnabled)

	keyed := New(types.ClientConfig{APIKey: "k"})
	assert.Equal(t, maxSpanWithKey, keyed.maxSpan)
	assert.Equal(t, maxBatchWithKey, keyed.maxBatch)
	assert.True(t, keyed.catalogEnabled)

	noCat := New(types.ClientConfig{APIKey: "k", DisableCatalog: true})
	assert.False(t, noCat.catalogEnabled)
}

func TestSeriesReportsGapYears(t *testing.T) {
	f := &fakeFetcher{respond: func(ids []string, chunk YearChunk) (*fetchResult, error) {
		fr := &fetchResult{}
		for y := chunk.Start; y <= chunk.End; y++ {
			if y == 2001 {
				continue // provider has nothing for 2001
			}
			fr.observations = append(fr.observations, Observation{
				SeriesID: "A", Year: y, Period: "A01", Value: 1.0,
			})
		}
		return fr, nil
	}}
	c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)

	result, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 2000, EndYear: 2002})
	require.NoError(t, err)

	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0], "2001")
	// The gap is a diagnostic, not an error, and not an invented row.
	assert.Equal(t, 2, result.Table.NumRows())
}

func TestSeriesErrorsAreTyped(t *testing.T) {
	f := &fakeFetcher{respond: func([]string, YearChunk) (*fetchResult, error) {
		return nil, &TransportError{URL: "https://api.bls.gov", Err: errors.New("connection reset")}
	}}
	c := newTestClient(f, maxSpanWithoutKey, maxBatchNoKey)

	_, err := c.Series(context.Background(), []string{"A"}, SeriesOptions{StartYear: 2020, EndYear: 2020})
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}
