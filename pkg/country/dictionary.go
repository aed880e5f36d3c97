// Package country answers questions about countries from the reference
// dataset and places free-form addresses in a country via geocoding.
package country

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"

	"github.com/sells-group/countrydict/pkg/dataset"
	"github.com/sells-group/countrydict/pkg/geocode"
	"github.com/sells-group/countrydict/pkg/language"
)

// Record is a single country entry.
type Record = dataset.Record

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithDataset replaces the embedded dataset.
func WithDataset(ds *dataset.Dataset) Option {
	return func(d *Dictionary) {
		d.ds = ds
	}
}

// WithLanguages replaces the default language resolver.
func WithLanguages(r language.Resolver) Option {
	return func(d *Dictionary) {
		d.languages = r
	}
}

// WithGeocoder sets the address geocoder used by ByAddress and the continent checks.
func WithGeocoder(g Geocoder) Option {
	return func(d *Dictionary) {
		d.geocoder = g
	}
}

// WithBatchConcurrency bounds the parallelism of ByAddresses.
func WithBatchConcurrency(n int) Option {
	return func(d *Dictionary) {
		if n > 0 {
			d.batchConcurrency = n
		}
	}
}

// Dictionary answers lookups over an immutable country list. It holds no
// mutable state of its own and is safe for concurrent use.
type Dictionary struct {
	ds               *dataset.Dataset
	records          []Record
	byName           map[string]int
	languages        language.Resolver
	geocoder         Geocoder
	batchConcurrency int
}

// New builds a Dictionary. Without options it uses the embedded dataset, the
// default language table and a geocoder with no keys configured.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{batchConcurrency: 5}
	for _, opt := range opts {
		opt(d)
	}
	if d.ds == nil {
		d.ds = dataset.Default()
	}
	if d.languages == nil {
		d.languages = language.Default()
	}
	if d.geocoder == nil {
		d.geocoder = geocode.NewResolver()
	}

	d.records = d.ds.Records()
	d.byName = make(map[string]int, len(d.records))
	for i, r := range d.records {
		key := normalizeName(r.Name)
		if _, dup := d.byName[key]; !dup {
			d.byName[key] = i
		}
	}
	return d
}

// normalizeName collapses whitespace and title-cases each word, so "  united
// KINGDOM" and "United Kingdom" share a key.
func normalizeName(name string) string {
	return cases.Title(xlanguage.Und).String(strings.Join(strings.Fields(name), " "))
}

// All returns every record in dataset order.
func (d *Dictionary) All() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// ByName returns the country called name, ignoring case and extra whitespace,
// or nil when there is none.
func (d *Dictionary) ByName(name string) *Record {
	i, ok := d.byName[normalizeName(name)]
	if !ok {
		return nil
	}
	r := d.records[i]
	return &r
}

// ByPhone returns the first country whose calling code equals phone. A
// leading "+" is ignored.
func (d *Dictionary) ByPhone(phone string) *Record {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if phone == "" {
		return nil
	}
	return d.first(func(r Record) bool { return r.Phone == phone })
}

// ByCapital returns the first country whose capital is exactly capital.
func (d *Dictionary) ByCapital(capital string) *Record {
	if capital == "" {
		return nil
	}
	return d.first(func(r Record) bool { return r.Capital == capital })
}

// Capital returns the capital of the named country, or "" when unknown.
func (d *Dictionary) Capital(name string) string {
	if r := d.ByName(name); r != nil {
		return r.Capital
	}
	return ""
}

// PhoneIndex returns the calling code of the named country, or "" when unknown.
func (d *Dictionary) PhoneIndex(name string) string {
	if r := d.ByName(name); r != nil {
		return r.Phone
	}
	return ""
}

// Currency returns the currency code of the named country, or "" when unknown.
func (d *Dictionary) Currency(name string) string {
	if r := d.ByName(name); r != nil {
		return r.Currency
	}
	return ""
}

// Continent returns the continent code of the named country, or "" when unknown.
func (d *Dictionary) Continent(name string) dataset.Continent {
	if r := d.ByName(name); r != nil {
		return r.Continent
	}
	return ""
}

// Languages returns the display names of the languages spoken in the named
// country, in dataset order. Codes the resolver does not know are returned
// as-is. Unknown countries yield an empty slice.
func (d *Dictionary) Languages(name string) []string {
	r := d.ByName(name)
	if r == nil {
		return []string{}
	}
	codes := r.LanguageCodes()
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		n := d.languages.Name(code)
		if n == "" {
			n = code
		}
		names = append(names, n)
	}
	return names
}

// ByContinent returns every country on continent, in dataset order.
func (d *Dictionary) ByContinent(continent dataset.Continent) []Record {
	return d.filter(func(r Record) bool { return r.Continent == continent })
}

// ByCurrency returns every country using currency, in dataset order.
func (d *Dictionary) ByCurrency(currency string) []Record {
	return d.filter(func(r Record) bool { return r.Currency == currency })
}

// ByLanguage returns every country where language is spoken. language may be
// a code ("fr") or, when longer than two characters, a name ("French").
func (d *Dictionary) ByLanguage(lang string) []Record {
	code := strings.ToLower(strings.TrimSpace(lang))
	if len(code) > 2 {
		code = d.languages.Code(code)
	}
	if code == "" {
		return []Record{}
	}
	return d.filter(func(r Record) bool { return slices.Contains(r.LanguageCodes(), code) })
}

func (d *Dictionary) first(match func(Record) bool) *Record {
	for _, r := range d.records {
		if match(r) {
			return &r
		}
	}
	return nil
}

func (d *Dictionary) filter(match func(Record) bool) []Record {
	out := []Record{}
	for _, r := range d.records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}
