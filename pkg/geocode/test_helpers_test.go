package geocode

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// newRewriteClient creates an HTTP client that redirects requests for each
// provider endpoint prefix to the matching test server URL.
func newRewriteClient(rewrites map[string]string) *http.Client {
	return &http.Client{
		Transport: &rewriteTransport{
			base:     http.DefaultTransport,
			rewrites: rewrites,
		},
	}
}

type rewriteTransport struct {
	base     http.RoundTripper
	rewrites map[string]string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	origURL := req.URL.String()
	for prefix, target := range t.rewrites {
		if !strings.HasPrefix(origURL, prefix) {
			continue
		}
		newReq := req.Clone(req.Context())
		parsed, err := req.URL.Parse(target + origURL[len(prefix):])
		if err != nil {
			return nil, err
		}
		newReq.URL = parsed
		newReq.Host = parsed.Host
		return t.base.RoundTrip(newReq)
	}
	return t.base.RoundTrip(req)
}

// fakeProvider is a test server that answers every request with a fixed
// status and body and counts the calls it receives.
type fakeProvider struct {
	*httptest.Server
	calls    atomic.Int32
	lastPath atomic.Value
	lastKey  atomic.Value
}

func newFakeProvider(t *testing.T, status int, body string) *fakeProvider {
	t.Helper()
	fp := &fakeProvider{}
	fp.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp.calls.Add(1)
		fp.lastPath.Store(r.URL.Path)
		key := r.URL.Query().Get("key")
		if key == "" {
			key = r.URL.Query().Get("access_token")
		}
		fp.lastKey.Store(key)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(fp.Close)
	return fp
}

// newTestResolver wires a Resolver to fake Google and Mapbox servers.
func newTestResolver(google, mapbox *fakeProvider, opts ...Option) *Resolver {
	rewrites := map[string]string{}
	if google != nil {
		rewrites[GoogleGeocodeURL] = google.URL
	}
	if mapbox != nil {
		rewrites[MapboxGeocodeURL] = mapbox.URL
	}
	base := []Option{
		WithHTTPClient(newRewriteClient(rewrites)),
		WithGoogleAPIKey("google-key"),
		WithMapboxAPIKey("mapbox-key"),
	}
	return NewResolver(append(base, opts...)...)
}

const (
	googleParis = `{
		"status": "OK",
		"results": [{
			"address_components": [
				{"long_name": "Paris", "short_name": "Paris", "types": ["locality", "political"]},
				{"long_name": "France", "short_name": "FR", "types": ["country", "political"]}
			],
			"formatted_address": "Paris, France"
		}]
	}`

	googleZeroResults = `{"status": "ZERO_RESULTS", "results": []}`

	mapboxBerlin = `{
		"type": "FeatureCollection",
		"features": [{
			"id": "place.123",
			"text": "Berlin",
			"place_type": ["place"],
			"context": [
				{"id": "region.9", "text": "Berlin"},
				{"id": "country.11", "short_code": "de", "text": "Germany"}
			]
		}]
	}`

	mapboxNoFeatures = `{"type": "FeatureCollection", "features": []}`

	mapboxUnauthorized = `{"message": "Not Authorized - Invalid Token"}`
)
