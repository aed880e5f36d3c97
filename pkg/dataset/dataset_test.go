package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	ds := Default()
	require.NotNil(t, ds)
	assert.Equal(t, 250, ds.Len())
	require.NoError(t, Validate(ds.Records()))
}

func TestDefault_ContinentCounts(t *testing.T) {
	counts := make(map[Continent]int)
	for _, r := range Default().Records() {
		counts[r.Continent]++
	}
	assert.Equal(t, 53, counts[Europe])
	assert.Equal(t, 58, counts[Africa])
	assert.Equal(t, 5, counts[Antarctica])
}

func TestRecords_ReturnsCopy(t *testing.T) {
	ds := Default()
	recs := ds.Records()
	orig := recs[0].Name
	recs[0].Name = "Mutated"
	assert.Equal(t, orig, ds.Records()[0].Name)
}

func TestLanguageCodes(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"en,na", []string{"en", "na"}},
		{"fr", []string{"fr"}},
		{" de , fr ,it", []string{"de", "fr", "it"}},
		{"en,,", []string{"en"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Record{Languages: tt.raw}.LanguageCodes(), "raw=%q", tt.raw)
	}
}

func TestValidate_Errors(t *testing.T) {
	good := Record{Name: "France", Continent: Europe, Languages: "fr"}

	tests := []struct {
		name    string
		records []Record
		errMsg  string
	}{
		{"empty name", []Record{{Continent: Europe, Languages: "fr"}}, "empty name"},
		{"duplicate", []Record{good, good}, "duplicate name"},
		{"bad continent", []Record{{Name: "X", Continent: "ZZ", Languages: "en"}}, "unknown continent"},
		{"no languages", []Record{{Name: "X", Continent: Asia}}, "no languages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_JSON(t *testing.T) {
	ds, err := Load(strings.NewReader(`[
		{"name":"Nauru","capital":"Yaren","phone":"674","currency":"AUD","continent":"OC","languages":"en,na"}
	]`))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	r := ds.Records()[0]
	assert.Equal(t, "Nauru", r.Name)
	assert.Equal(t, Oceania, r.Continent)
	assert.Equal(t, []string{"en", "na"}, r.LanguageCodes())
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: parse json")
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "countries.yaml")
	content := `
- name: Sweden
  capital: Stockholm
  phone: "46"
  currency: SEK
  continent: EU
  languages: sv
- name: Egypt
  capital: Cairo
  phone: "20"
  currency: EGP
  continent: AF
  languages: ar
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Sweden", ds.Records()[0].Name)
	assert.Equal(t, "46", ds.Records()[0].Phone)
	assert.Equal(t, Africa, ds.Records()[1].Continent)
}

func TestLoadFile_JSONByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "countries.data")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Chile","continent":"SA","languages":"es"}]`), 0o644))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: open")
}

func TestParseContinent(t *testing.T) {
	tests := []struct {
		in   string
		want Continent
		ok   bool
	}{
		{"EU", Europe, true},
		{"eu", Europe, true},
		{"Europe", Europe, true},
		{"north america", NorthAmerica, true},
		{"NorthAmerica", NorthAmerica, true},
		{" south  america ", SouthAmerica, true},
		{"oc", Oceania, true},
		{"Atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseContinent(tt.in)
		assert.Equal(t, tt.ok, ok, "in=%q", tt.in)
		assert.Equal(t, tt.want, got, "in=%q", tt.in)
	}
}

func TestContinent_Name(t *testing.T) {
	assert.Equal(t, "Europe", Europe.Name())
	assert.Equal(t, "South America", SouthAmerica.Name())
	assert.Equal(t, "", Continent("XX").Name())
	assert.Len(t, Continents(), 7)
}
