// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bls queries the Bureau of Labor Statistics v2 timeseries API.
// It splits year ranges that exceed the per-request limit into chunks,
// merges the chunked responses into one table, and applies optional
// interpolation and temporal aggregation.
package bls

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pdiddy/blsconnect/internal/table"
	"github.com/pdiddy/blsconnect/pkg/types"
)

// Per-request API limits. Registered keys get the larger ones.
const (
	maxSpanWithKey    = 20
	maxSpanWithoutKey = 10
	maxBatchWithKey   = 50
	maxBatchNoKey     = 25
)

const defaultTimeout = 30 * time.Second

// Client pulls time series from the BLS API. Key-dependent limits and
// catalog availability are fixed at construction. A Client is not safe for
// concurrent use; its Messages and Catalog accessors describe the last
// completed call.
type Client struct {
	fetcher        fetcher
	out            io.Writer
	echoMessages   bool
	maxSpan        int
	maxBatch       int
	catalogEnabled bool
	defaultStart   int
	defaultEnd     int
	now            func() time.Time

	messages []string
	catalog  map[string]types.SeriesCatalog
}

// New builds a Client from cfg. An empty API key halves the year span per
// request, lowers the series batch size, and disables catalog metadata.
func New(cfg types.ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		fetcher: &httpFetcher{
			client:    &http.Client{Timeout: timeout},
			baseURL:   apiBaseURL,
			key:       cfg.APIKey,
			userAgent: cfg.UserAgent,
		},
		out:            os.Stderr,
		echoMessages:   cfg.MessageLevel != types.LevelSilent,
		maxSpan:        maxSpanWithoutKey,
		maxBatch:       maxBatchNoKey,
		catalogEnabled: cfg.APIKey != "" && !cfg.DisableCatalog,
		defaultStart:   cfg.StartYear,
		defaultEnd:     cfg.EndYear,
		now:            time.Now,
	}
	if cfg.APIKey != "" {
		c.maxSpan = maxSpanWithKey
		c.maxBatch = maxBatchWithKey
	}
	return c
}

// SetOutput redirects echoed provider messages (default os.Stderr).
func (c *Client) SetOutput(w io.Writer) { c.out = w }

// SeriesOptions controls one Series call. The zero value requests the wide
// layout over the default year range with no transformations.
type SeriesOptions struct {
	// StartYear and EndYear bound the request. When both are zero the
	// most recent span of years the API allows in one call is pulled;
	// when only one is set the other is derived a full span away.
	StartYear int
	EndYear   int

	// Layout selects wide (default) or long.
	Layout table.Layout

	// Interpolate linearly fills missing values per series. It runs
	// before any grouping.
	Interpolate bool

	// GroupBy collapses rows into buckets of this frequency: "y", "s",
	// "q", or "m" (or spelled out). Empty means no grouping.
	GroupBy string

	// GroupMethod is the bucket reduction (mean, first, last, min, max,
	// sum, median). Empty means mean.
	GroupMethod string

	// KeepFootnotes carries provider footnotes into the result. In the
	// wide layout this is only possible for a single series.
	KeepFootnotes bool
}

// Result is the outcome of one Series call.
type Result struct {
	// Table is the reshaped, optionally transformed data.
	Table *table.Table

	// Messages are the provider messages and client diagnostics
	// accumulated across every chunk of the call, in order.
	Messages []string

	// Catalog maps series ID to provider metadata. Empty without an
	// API key.
	Catalog map[string]types.SeriesCatalog
}

// Messages returns the provider messages and diagnostics from the last
// Series call. The slice is reset at the start of every call, so a failed
// call leaves the messages gathered before the failure.
func (c *Client) Messages() []string { return c.messages }

// Catalog returns the series metadata from the last Series call.
func (c *Client) Catalog() map[string]types.SeriesCatalog { return c.catalog }

// Series pulls the given series IDs over the requested year range and
// returns them as a table. Ranges wider than the API's per-request limit
// are pulled in ascending chunks and merged; series batches beyond the
// per-request cap are split the same way. Validation problems return
// ErrInvalidParameter before any network call; mid-pull failures return
// *TransportError or *ProviderError with the diagnostics collected so far
// still readable via Messages.
func (c *Client) Series(ctx context.Context, ids []string, opts SeriesOptions) (*Result, error) {
	c.messages = nil
	c.catalog = make(map[string]types.SeriesCatalog)

	ids = dedupeSeries(ids)
	if len(ids) == 0 {
		return nil, invalidf("no series IDs given")
	}
	layout, err := table.ParseLayout(string(opts.Layout))
	if err != nil {
		return nil, invalidf("%v", err)
	}
	var freq table.Frequency
	var method table.Reduction
	if opts.GroupBy != "" {
		if freq, err = table.ParseFrequency(opts.GroupBy); err != nil {
			return nil, invalidf("%v", err)
		}
		if method, err = table.ParseReduction(opts.GroupMethod); err != nil {
			return nil, invalidf("%v", err)
		}
	}
	if opts.KeepFootnotes && layout == table.Wide && len(ids) > 1 {
		return nil, invalidf("footnotes with more than one series require the long layout")
	}
	start, end, err := c.yearRange(opts.StartYear, opts.EndYear)
	if err != nil {
		return nil, err
	}

	var observations []Observation
	for _, chunk := range planChunks(start, end, c.maxSpan) {
		for _, batch := range batchSeries(ids, c.maxBatch) {
			fr, err := c.fetcher.fetch(ctx, batch, chunk, c.catalogEnabled)
			if err != nil {
				return nil, err
			}
			c.report(fr.messages)
			observations = append(observations, fr.observations...)
			for id, entry := range fr.catalog {
				c.catalog[id] = entry
			}
		}
	}

	merged, diags := mergeObservations(observations, ids, start, end)
	c.report(diags)

	t := merged.reshape(layout, opts.KeepFootnotes)
	if opts.Interpolate {
		t = t.Interpolate()
	}
	if opts.GroupBy != "" {
		if t, err = t.GroupBy(freq, method); err != nil {
			return nil, err
		}
	}

	return &Result{
		Table:    t,
		Messages: append([]string(nil), c.messages...),
		Catalog:  c.catalog,
	}, nil
}

// yearRange resolves the requested years against the client defaults. With
// neither year set it covers the most recent maxSpan years; with one set it
// anchors a full span on it.
func (c *Client) yearRange(start, end int) (int, int, error) {
	if start == 0 {
		start = c.defaultStart
	}
	if end == 0 {
		end = c.defaultEnd
	}
	if start == 0 && end == 0 {
		end = c.now().Year()
	}
	if start == 0 {
		start = end - (c.maxSpan - 1)
	}
	if end == 0 {
		end = start + (c.maxSpan - 1)
	}
	if start > end {
		return 0, 0, invalidf("start year %d is after end year %d", start, end)
	}
	return start, end, nil
}

// report appends msgs to the call's message log, echoing each when the
// configured message level asks for it.
func (c *Client) report(msgs []string) {
	for _, m := range msgs {
		c.messages = append(c.messages, m)
		if c.echoMessages {
			fmt.Fprintf(c.out, "warning: %s\n", m)
		}
	}
}
