package dataset

import "strings"

// Continent is a two-letter continent code.
type Continent string

// Continent codes used by the dataset.
const (
	Africa       Continent = "AF"
	Antarctica   Continent = "AN"
	Asia         Continent = "AS"
	Europe       Continent = "EU"
	NorthAmerica Continent = "NA"
	Oceania      Continent = "OC"
	SouthAmerica Continent = "SA"
)

var continentNames = map[Continent]string{
	Africa:       "Africa",
	Antarctica:   "Antarctica",
	Asia:         "Asia",
	Europe:       "Europe",
	NorthAmerica: "North America",
	Oceania:      "Oceania",
	SouthAmerica: "South America",
}

// Continents lists every continent code in a stable order.
func Continents() []Continent {
	return []Continent{Africa, Antarctica, Asia, Europe, NorthAmerica, Oceania, SouthAmerica}
}

// Valid reports whether c is one of the known codes.
func (c Continent) Valid() bool {
	_, ok := continentNames[c]
	return ok
}

// Name returns the English name of the continent, or "" for unknown codes.
func (c Continent) Name() string { return continentNames[c] }

// ParseContinent accepts a code ("eu") or an English name ("Europe",
// "north america", "northamerica").
func ParseContinent(s string) (Continent, bool) {
	s = strings.TrimSpace(s)
	if c := Continent(strings.ToUpper(s)); c.Valid() {
		return c, true
	}
	key := strings.ToLower(strings.Join(strings.Fields(s), ""))
	for c, name := range continentNames {
		if strings.ToLower(strings.ReplaceAll(name, " ", "")) == key {
			return c, true
		}
	}
	return "", false
}
