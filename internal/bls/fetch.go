// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pdiddy/blsconnect/pkg/types"
)

// apiBaseURL is the BLS v2 timeseries endpoint. Declared as a var so tests
// can substitute an httptest server.
var apiBaseURL = "https://api.bls.gov/publicAPI/v2/timeseries/data/"

// statusSucceeded is the payload status of a successful BLS response.
const statusSucceeded = "REQUEST_SUCCEEDED"

// Observation is one reported (series, year, period) cell. Value is NaN
// when the provider reports the cell without data.
type Observation struct {
	SeriesID   string
	Year       int
	Period     string
	PeriodName string
	Value      float64
	Footnotes  string
}

// fetchResult is the decoded outcome of one API call.
type fetchResult struct {
	observations []Observation
	messages     []string
	catalog      map[string]types.SeriesCatalog
}

// fetcher issues one BLS API call for a batch of series over one year
// chunk. The client orchestrates chunking and batching above this
// interface; tests substitute it to script responses.
type fetcher interface {
	fetch(ctx context.Context, ids []string, chunk YearChunk, wantCatalog bool) (*fetchResult, error)
}

// httpFetcher posts requests to the BLS v2 API over HTTP.
type httpFetcher struct {
	client    *http.Client
	baseURL   string
	key       string
	userAgent string
}

// BLS v2 wire format.

type apiRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationKey,omitempty"`
	Catalog         bool     `json:"catalog,omitempty"`
}

type apiResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []apiSeries `json:"series"`
	} `json:"Results"`
}

type apiSeries struct {
	SeriesID string      `json:"seriesID"`
	Catalog  *apiCatalog `json:"catalog,omitempty"`
	Data     []apiDatum  `json:"data"`
}

type apiCatalog struct {
	SeriesTitle        string `json:"series_title"`
	SeriesID           string `json:"series_id"`
	Seasonality        string `json:"seasonality"`
	SurveyName         string `json:"survey_name"`
	SurveyAbbreviation string `json:"survey_abbreviation"`
	MeasureDataType    string `json:"measure_data_type"`
	Area               string `json:"area"`
	AreaType           string `json:"area_type"`
}

type apiDatum struct {
	Year       string        `json:"year"`
	Period     string        `json:"period"`
	PeriodName string        `json:"periodName"`
	Value      string        `json:"value"`
	Footnotes  []apiFootnote `json:"footnotes"`
}

type apiFootnote struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// fetch posts one request and decodes observations, provider messages, and
// catalog metadata. Network and decode failures surface as *TransportError;
// a well-formed non-success payload surfaces as *ProviderError with its
// messages attached.
func (f *httpFetcher) fetch(ctx context.Context, ids []string, chunk YearChunk, wantCatalog bool) (*fetchResult, error) {
	payload := apiRequest{
		SeriesID:  ids,
		StartYear: strconv.Itoa(chunk.Start),
		EndYear:   strconv.Itoa(chunk.End),
	}
	if f.key != "" {
		payload.RegistrationKey = f.key
		payload.Catalog = wantCatalog
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: f.baseURL, Err: err}
	}
	defer resp.Body.Close()

	var ar apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, &TransportError{URL: f.baseURL, Err: fmt.Errorf("decoding response (HTTP %d): %w", resp.StatusCode, err)}
	}
	if ar.Status != statusSucceeded {
		return nil, &ProviderError{Status: ar.Status, Messages: ar.Message}
	}

	out := &fetchResult{messages: ar.Message}
	for _, s := range ar.Results.Series {
		if s.Catalog != nil {
			if out.catalog == nil {
				out.catalog = make(map[string]types.SeriesCatalog)
			}
			out.catalog[s.SeriesID] = types.SeriesCatalog(*s.Catalog)
		}
		for _, d := range s.Data {
			year, err := strconv.Atoi(d.Year)
			if err != nil {
				continue
			}
			out.observations = append(out.observations, Observation{
				SeriesID:   s.SeriesID,
				Year:       year,
				Period:     d.Period,
				PeriodName: d.PeriodName,
				Value:      parseValue(d.Value),
				Footnotes:  joinFootnotes(d.Footnotes),
			})
		}
	}
	return out, nil
}

// parseValue converts the provider's string value. The API marks missing
// cells with "-" or an empty string; those become NaN, never zero.
func parseValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return missing()
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return missing()
	}
	return v
}

func joinFootnotes(notes []apiFootnote) string {
	var parts []string
	for _, n := range notes {
		t := strings.TrimSpace(n.Text)
		if t == "" {
			t = strings.TrimSpace(n.Code)
		}
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "; ")
}
