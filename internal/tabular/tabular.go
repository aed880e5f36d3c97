// Package tabular reads and writes the country dataset as JSON, YAML, CSV or XLSX.
package tabular

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/countrydict/pkg/dataset"
)

// Format is an export/import file format.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// sheetName is the worksheet written to and read from XLSX files.
const sheetName = "countries"

// columns is the header order for CSV and XLSX.
var columns = []string{"name", "capital", "phone", "currency", "continent", "languages"}

// ParseFormat accepts a format name, case-insensitively; "yml" maps to YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "csv":
		return CSV, nil
	case "xlsx":
		return XLSX, nil
	default:
		return "", eris.Errorf("tabular: unsupported format %q", s)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return JSON
	}
	return f
}

// Write encodes records to w in the given format.
func Write(w io.Writer, format Format, records []dataset.Record) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return eris.Wrap(err, "tabular: encode json")
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(records); err != nil {
			return eris.Wrap(err, "tabular: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "tabular: flush yaml")
		}
	case CSV:
		data, err := csvutil.Marshal(records)
		if err != nil {
			return eris.Wrap(err, "tabular: encode csv")
		}
		if _, err := w.Write(data); err != nil {
			return eris.Wrap(err, "tabular: write csv")
		}
	case XLSX:
		return writeXLSX(w, records)
	default:
		return eris.Errorf("tabular: unsupported format %q", format)
	}
	return nil
}

func writeXLSX(w io.Writer, records []dataset.Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "tabular: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range columns {
		header.AddCell().SetString(c)
	}
	for _, r := range records {
		row := sheet.AddRow()
		for _, v := range []string{r.Name, r.Capital, r.Phone, r.Currency, string(r.Continent), r.Languages} {
			row.AddCell().SetString(v)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "tabular: write xlsx")
	}
	return nil
}
