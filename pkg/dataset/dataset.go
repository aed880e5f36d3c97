// Package dataset holds the static country reference table.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed countries.json
var countriesJSON []byte

// languageSep separates language codes in the raw languages field.
const languageSep = ","

// Record is one country entry.
type Record struct {
	Name      string    `json:"name" yaml:"name" csv:"name"`
	Capital   string    `json:"capital" yaml:"capital" csv:"capital"`
	Phone     string    `json:"phone" yaml:"phone" csv:"phone"`
	Currency  string    `json:"currency" yaml:"currency" csv:"currency"`
	Continent Continent `json:"continent" yaml:"continent" csv:"continent"`
	Languages string    `json:"languages" yaml:"languages" csv:"languages"`
}

// LanguageCodes splits the raw languages field into ordered codes.
func (r Record) LanguageCodes() []string {
	parts := strings.Split(r.Languages, languageSep)
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}

// Dataset is an ordered, read-only list of country records.
type Dataset struct {
	records []Record
}

// New validates records and returns a Dataset holding a private copy of them.
func New(records []Record) (*Dataset, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{records: cp}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in dataset order.
func (d *Dataset) Records() []Record {
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Validate checks that names are unique and non-empty, every continent belongs
// to the fixed set and every record lists at least one language.
func Validate(records []Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			return eris.Errorf("dataset: record %d has empty name", i)
		}
		if j, dup := seen[r.Name]; dup {
			return eris.Errorf("dataset: duplicate name %q at records %d and %d", r.Name, j, i)
		}
		seen[r.Name] = i
		if !r.Continent.Valid() {
			return eris.Errorf("dataset: %s has unknown continent %q", r.Name, r.Continent)
		}
		if len(r.LanguageCodes()) == 0 {
			return eris.Errorf("dataset: %s has no languages", r.Name)
		}
	}
	return nil
}

// Load decodes a JSON array of records.
func Load(r io.Reader) (*Dataset, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, eris.Wrap(err, "dataset: parse json")
	}
	return New(records)
}

// LoadYAML decodes a YAML sequence of records.
func LoadYAML(r io.Reader) (*Dataset, error) {
	var records []Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		return nil, eris.Wrap(err, "dataset: parse yaml")
	}
	return New(records)
}

// LoadFile reads a dataset from disk. Files ending in .yaml or .yml are read
// as YAML, anything else as JSON.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return Load(f)
	}
}

var defaultDataset = sync.OnceValues(func() (*Dataset, error) {
	return Load(bytes.NewReader(countriesJSON))
})

// Default returns the embedded dataset. It panics if the embedded file is invalid.
func Default() *Dataset {
	ds, err := defaultDataset()
	if err != nil {
		panic(err)
	}
	return ds
}
