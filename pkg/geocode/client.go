// Package geocode resolves free-form addresses to a country name via Google
// Geocoding (primary) and Mapbox Geocoding (fallback).
package geocode

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// GoogleGeocodeURL is the Google Geocoding API endpoint.
	GoogleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	// MapboxGeocodeURL is the Mapbox places endpoint; the address is appended as a path segment.
	MapboxGeocodeURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

	sourceGoogle = "google"
	sourceMapbox = "mapbox"
)

// Result is the country a provider placed an address in.
type Result struct {
	Country string
	Source  string // "google" or "mapbox"
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithGoogleAPIKey sets the primary provider key.
func WithGoogleAPIKey(key string) Option {
	return func(r *Resolver) {
		r.googleKey = key
	}
}

// WithMapboxAPIKey sets the fallback provider access token.
func WithMapboxAPIKey(key string) Option {
	return func(r *Resolver) {
		r.mapboxKey = key
	}
}

// WithHTTPClient sets a custom HTTP client for both providers.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = hc
	}
}

// WithGoogleURL overrides the Google endpoint.
func WithGoogleURL(u string) Option {
	return func(r *Resolver) {
		if u != "" {
			r.googleURL = u
		}
	}
}

// WithMapboxURL overrides the Mapbox endpoint.
func WithMapboxURL(u string) Option {
	return func(r *Resolver) {
		if u != "" {
			r.mapboxURL = u
		}
	}
}

// WithTimeout replaces the HTTP client with one that times out after d.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.httpClient = &http.Client{Timeout: d}
		}
	}
}

// Resolver finds the country of an address. Providers are queried one at a
// time: Mapbox is only asked after Google has answered with nothing usable.
// A Resolver is safe for concurrent use.
type Resolver struct {
	httpClient *http.Client
	googleURL  string
	mapboxURL  string

	mu        sync.RWMutex
	googleKey string
	mapboxKey string
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		googleURL:  GoogleGeocodeURL,
		mapboxURL:  MapboxGeocodeURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetGoogleAPIKey replaces the primary provider key.
func (r *Resolver) SetGoogleAPIKey(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.googleKey = key
}

// SetMapboxAPIKey replaces the fallback provider access token.
func (r *Resolver) SetMapboxAPIKey(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mapboxKey = key
}

func (r *Resolver) keys() (google, mapbox string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.googleKey, r.mapboxKey
}

// Geocode returns the country that address lies in.
//
// Without a Google key it fails with ErrMissingGoogleKey and makes no request.
// A transport failure from either provider is returned as *TransportError.
// Google answering with no country, or with a body that cannot be decoded,
// hands the address to Mapbox. Mapbox failing to place it yields *NoResultsError.
func (r *Resolver) Geocode(ctx context.Context, address string) (*Result, error) {
	googleKey, mapboxKey := r.keys()
	if googleKey == "" {
		return nil, ErrMissingGoogleKey
	}

	result, err := r.geocodeGoogle(ctx, address, googleKey)
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			return nil, err
		}
		zap.L().Debug("geocode: google response unusable, trying mapbox",
			zap.String("address", address),
			zap.Error(err),
		)
	} else if result != nil {
		return result, nil
	} else {
		zap.L().Debug("geocode: google returned no country, trying mapbox",
			zap.String("address", address),
		)
	}

	return r.geocodeMapbox(ctx, address, mapboxKey)
}
