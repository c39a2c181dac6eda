// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration and result structs shared across the
// blsconnect packages and the CLI.
package types

import "time"

// MessageLevel controls how provider messages returned with an API response
// are reported while a request runs. Messages are always collected on the
// result; the level only governs echoing them to the client's writer.
type MessageLevel string

const (
	// LevelSilent collects messages without echoing them.
	LevelSilent MessageLevel = "silent"

	// LevelWarning echoes each provider message as a warning line as it
	// arrives. This is the default.
	LevelWarning MessageLevel = "warning"
)

// HTTPConfig holds shared HTTP settings for requests to the BLS API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "blsconnect/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the BLS API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the BLS registration key. Without a key the API limits
	// each request to 10 years and 25 series, and series catalog
	// metadata is unavailable. With a key the limits are 20 years and
	// 50 series.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// StartYear and EndYear are optional defaults applied when a query
	// does not specify its own range. It is generally clearer to pass
	// years per query instead.
	StartYear int `json:"start_year,omitempty" yaml:"start_year,omitempty"`
	EndYear   int `json:"end_year,omitempty" yaml:"end_year,omitempty"`

	// MessageLevel controls echoing of provider messages (default warning).
	MessageLevel MessageLevel `json:"message_level,omitempty" yaml:"message_level,omitempty"`

	// DisableCatalog skips requesting series catalog metadata even when
	// an API key is set.
	DisableCatalog bool `json:"disable_catalog,omitempty" yaml:"disable_catalog,omitempty"`
}

// SeriesCatalog is the provider-supplied metadata describing one series.
// Only returned when the request carries an API key.
type SeriesCatalog struct {
	SeriesTitle        string `json:"series_title" yaml:"series_title"`
	SeriesID           string `json:"series_id" yaml:"series_id"`
	Seasonality        string `json:"seasonality" yaml:"seasonality"`
	SurveyName         string `json:"survey_name" yaml:"survey_name"`
	SurveyAbbreviation string `json:"survey_abbreviation" yaml:"survey_abbreviation"`
	MeasureDataType    string `json:"measure_data_type" yaml:"measure_data_type"`
	Area               string `json:"area" yaml:"area"`
	AreaType           string `json:"area_type" yaml:"area_type"`
}
