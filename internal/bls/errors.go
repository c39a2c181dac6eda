// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bls

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameter marks malformed caller input (bad year range, layout,
// frequency, or empty series list). It is always returned before any
// network activity.
var ErrInvalidParameter = errors.New("invalid parameter")

// invalidf wraps ErrInvalidParameter with detail.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// TransportError reports that a network call to the BLS API could not
// complete, including responses whose body could not be decoded.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("BLS API request to %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError reports a well-formed error response from the BLS API:
// an invalid key or series ID, an exceeded daily quota, or any status other
// than REQUEST_SUCCEEDED.
type ProviderError struct {
	Status   string
	Messages []string
}

func (e *ProviderError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("BLS API %s: %s", e.Status, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("BLS API %s", e.Status)
}
