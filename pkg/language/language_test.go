package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Name(t *testing.T) {
	r := Default()

	tests := []struct {
		code     string
		expected string
	}{
		{"en", "English"},
		{"na", "Nauruan"},
		{"FR", "French"},
		{" de ", "German"},
		{"eng", "English"},
		{"haw", "Hawaiian"},
		{"", ""},
		{"q1", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, r.Name(tt.code), "code=%q", tt.code)
	}
}

func TestDefault_Code(t *testing.T) {
	r := Default()

	tests := []struct {
		name     string
		expected string
	}{
		{"English", "en"},
		{"english", "en"},
		{"Nauruan", "na"},
		{"Norwegian  Bokmal", "nb"},
		{"spa", "es"},
		{"Klingonese", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, r.Code(tt.name), "name=%q", tt.name)
	}
}

func TestNewTable_RoundTrip(t *testing.T) {
	tbl, err := NewTable(languagesCSV)
	require.NoError(t, err)
	for code, name := range tbl.byCode {
		assert.Equal(t, code, tbl.Code(name), "name=%q", name)
	}
}

func TestNewTable_SkipsBlankRows(t *testing.T) {
	tbl, err := NewTable([]byte("code,name\nxx,Example\n,Nameless\nyy,\n"))
	require.NoError(t, err)
	assert.Len(t, tbl.byCode, 1)
	assert.Equal(t, "Example", tbl.Name("xx"))
}

func TestNewTable_BadCSV(t *testing.T) {
	_, err := NewTable([]byte("code,name\n\"unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language: parse table")
}
