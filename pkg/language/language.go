// Package language maps between ISO 639-1 language codes and English display names.
package language

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed languages.csv
var languagesCSV []byte

// Resolver translates language codes to names and back. Both directions
// return "" when nothing matches.
type Resolver interface {
	Name(code string) string
	Code(name string) string
}

type entry struct {
	Code string `csv:"code"`
	Name string `csv:"name"`
}

// Table is a Resolver backed by a fixed code/name list. Codes missing from the
// list fall back to the CLDR English names shipped with golang.org/x/text.
type Table struct {
	byCode map[string]string
	byName map[string]string
}

// NewTable parses a CSV with "code" and "name" columns.
func NewTable(data []byte) (*Table, error) {
	var entries []entry
	if err := csvutil.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrap(err, "language: parse table")
	}

	t := &Table{
		byCode: make(map[string]string, len(entries)),
		byName: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		code := strings.ToLower(strings.TrimSpace(e.Code))
		name := strings.TrimSpace(e.Name)
		if code == "" || name == "" {
			continue
		}
		t.byCode[code] = name
		if _, dup := t.byName[strings.ToLower(name)]; !dup {
			t.byName[strings.ToLower(name)] = code
		}
	}
	return t, nil
}

// Name returns the English name for code.
func (t *Table) Name(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if name, ok := t.byCode[code]; ok {
		return name
	}

	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return ""
	}
	if name, ok := t.byCode[base.String()]; ok {
		return name
	}
	return display.English.Languages().Name(base)
}

// Code returns the two-letter code for an English language name. Three-letter
// ISO 639 codes are also accepted and reduced to their two-letter form.
func (t *Table) Code(name string) string {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if key == "" {
		return ""
	}
	if code, ok := t.byName[key]; ok {
		return code
	}

	base, err := xlanguage.ParseBase(key)
	if err != nil {
		return ""
	}
	if _, ok := t.byCode[base.String()]; ok {
		return base.String()
	}
	return ""
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return NewTable(languagesCSV)
})

// Default returns the Resolver built from the embedded ISO 639-1 list.
func Default() Resolver {
	t, err := defaultTable()
	if err != nil {
		panic(err)
	}
	return t
}
