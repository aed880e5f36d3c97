package geocode

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleGeocode_Country(t *testing.T) {
	google := newFakeProvider(t, http.StatusOK, googleParis)
	r := newTestResolver(google, nil)

	result, err := r.geocodeGoogle(context.Background(), "Paris", "test-key")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "France", result.Country)
	assert.Equal(t, "google", result.Source)
	assert.Equal(t, "test-key", google.lastKey.Load())
}

func TestGoogleGeocode_NoResults(t *testing.T) {
	google := newFakeProvider(t, http.StatusOK, googleZeroResults)
	r := newTestResolver(google, nil)

	result, err := r.geocodeGoogle(context.Background(), "000 Nonexistent", "test-key")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGoogleGeocode_RequestDenied(t *testing.T) {
	google := newFakeProvider(t, http.StatusOK, `{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid.", "results": []}`)
	r := newTestResolver(google, nil)

	result, err := r.geocodeGoogle(context.Background(), "Paris", "bad-key")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGoogleGeocode_Malformed(t *testing.T) {
	google := newFakeProvider(t, http.StatusOK, `{"results": [`)
	r := newTestResolver(google, nil)

	_, err := r.geocodeGoogle(context.Background(), "Paris", "test-key")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "google", pe.Provider)
	assert.Contains(t, err.Error(), "geocode: google parse response")
}

func TestGoogleGeocode_APIError(t *testing.T) {
	google := newFakeProvider(t, http.StatusInternalServerError, ``)
	r := newTestResolver(google, nil)

	_, err := r.geocodeGoogle(context.Background(), "Paris", "test-key")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), "status 500")
}

func TestGoogleResult_Country(t *testing.T) {
	tests := []struct {
		name       string
		components []googleAddressComponent
		expected   string
	}{
		{
			name: "country present",
			components: []googleAddressComponent{
				{LongName: "Stockholm", Types: []string{"locality"}},
				{LongName: "Sweden", Types: []string{"country", "political"}},
			},
			expected: "Sweden",
		},
		{
			name: "first country wins",
			components: []googleAddressComponent{
				{LongName: "Egypt", Types: []string{"political", "country"}},
				{LongName: "Sudan", Types: []string{"country"}},
			},
			expected: "Egypt",
		},
		{
			name:       "no country",
			components: []googleAddressComponent{{LongName: "Somewhere", Types: []string{"route"}}},
			expected:   "",
		},
		{name: "empty", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, googleResult{AddressComponents: tt.components}.country())
		})
	}
}
