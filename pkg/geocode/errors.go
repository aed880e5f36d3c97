package geocode

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrMissingGoogleKey is returned before any request is made when no Google
// API key is configured.
var ErrMissingGoogleKey = eris.New("geocode: google maps api key is needed to find places")

// TransportError wraps a network-level failure talking to a provider.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("geocode: %s request: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a provider payload that could not be decoded, or a
// response status that carries no usable payload.
type ParseError struct {
	Provider string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("geocode: %s parse response: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NoResultsError reports that no provider could place the address in a country.
type NoResultsError struct {
	Address  string
	Provider string
	// Cause is set when the last provider answered with something other than
	// an empty result set, for example a malformed body.
	Cause error
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("geocode: [%s] no results found for %s", e.Provider, e.Address)
}

func (e *NoResultsError) Unwrap() error {
	return e.Cause
}
