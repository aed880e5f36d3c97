package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// mapboxGeocodeResponse is the JSON response from the Mapbox places endpoint.
type mapboxGeocodeResponse struct {
	Features []mapboxFeature `json:"features"`
}

type mapboxFeature struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	PlaceType []string        `json:"place_type"`
	Context   []mapboxContext `json:"context"`
}

type mapboxContext struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	ShortCode string `json:"short_code"`
}

// country returns the text of the first context entry whose id names a
// country. A feature that is itself a country carries no such entry, so its
// own id is checked last.
func (f mapboxFeature) country() string {
	for _, c := range f.Context {
		if strings.Contains(c.ID, "country") {
			return c.Text
		}
	}
	if strings.Contains(f.ID, "country") {
		return f.Text
	}
	return ""
}

// geocodeMapbox asks Mapbox for the address. Every outcome other than a
// transport failure or a located country is a *NoResultsError.
func (r *Resolver) geocodeMapbox(ctx context.Context, address, key string) (*Result, error) {
	reqURL := strings.TrimRight(r.mapboxURL, "/") + "/" + url.PathEscape(address) + ".json?" +
		url.Values{"access_token": {key}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: mapbox build request")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: sourceMapbox, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: sourceMapbox, Err: err}
	}

	noResults := &NoResultsError{Address: address, Provider: sourceMapbox}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, noResults
	}
	if !gjson.ValidBytes(body) {
		noResults.Cause = &ParseError{Provider: sourceMapbox, Err: eris.New("malformed json")}
		return nil, noResults
	}
	if msg := gjson.GetBytes(body, "message"); msg.Exists() {
		zap.L().Debug("geocode: mapbox reported an error",
			zap.String("address", address),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg.String()),
		)
		return nil, noResults
	}

	var mapboxResp mapboxGeocodeResponse
	if err := json.Unmarshal(body, &mapboxResp); err != nil {
		noResults.Cause = &ParseError{Provider: sourceMapbox, Err: err}
		return nil, noResults
	}

	if len(mapboxResp.Features) == 0 {
		return nil, noResults
	}

	country := mapboxResp.Features[0].country()
	if country == "" {
		return nil, noResults
	}
	return &Result{Country: country, Source: sourceMapbox}, nil
}
