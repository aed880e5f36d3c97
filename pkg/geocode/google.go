package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"slices"

	"github.com/rotisserie/eris"
)

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results []googleResult `json:"results"`
	Status  string         `json:"status"`
}

type googleResult struct {
	AddressComponents []googleAddressComponent `json:"address_components"`
	FormattedAddress  string                   `json:"formatted_address"`
}

type googleAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// country returns the long name of the first component tagged "country".
func (r googleResult) country() string {
	for _, c := range r.AddressComponents {
		if slices.Contains(c.Types, "country") {
			return c.LongName
		}
	}
	return ""
}

// geocodeGoogle asks Google for the address. A nil result with a nil error
// means Google answered but found no country.
func (r *Resolver) geocodeGoogle(ctx context.Context, address, key string) (*Result, error) {
	params := url.Values{
		"address": {address},
		"key":     {key},
	}

	reqURL := r.googleURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: sourceGoogle, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: sourceGoogle, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ParseError{Provider: sourceGoogle, Err: eris.Errorf("status %d", resp.StatusCode)}
	}

	var googleResp googleGeocodeResponse
	if err := json.Unmarshal(body, &googleResp); err != nil {
		return nil, &ParseError{Provider: sourceGoogle, Err: err}
	}

	if len(googleResp.Results) == 0 {
		return nil, nil
	}

	country := googleResp.Results[0].country()
	if country == "" {
		return nil, nil
	}
	return &Result{Country: country, Source: sourceGoogle}, nil
}
