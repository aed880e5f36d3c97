package tabular

import (
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/countrydict/pkg/dataset"
)

// LoadDataset reads a dataset file in any supported format, chosen by extension.
func LoadDataset(path string) (*dataset.Dataset, error) {
	switch FormatFromPath(path) {
	case CSV:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "tabular: read %s", path)
		}
		var records []dataset.Record
		if err := csvutil.Unmarshal(data, &records); err != nil {
			return nil, eris.Wrap(err, "tabular: parse csv")
		}
		return dataset.New(records)
	case XLSX:
		records, err := readXLSX(path)
		if err != nil {
			return nil, err
		}
		return dataset.New(records)
	default:
		return dataset.LoadFile(path)
	}
}

func readXLSX(path string) ([]dataset.Record, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "tabular: open xlsx")
	}

	sheet, ok := f.Sheet[sheetName]
	if !ok {
		if len(f.Sheets) == 0 {
			return nil, eris.New("tabular: xlsx has no sheets")
		}
		sheet = f.Sheets[0]
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("tabular: xlsx sheet is empty")
	}

	index := make(map[string]int)
	for i, cell := range sheet.Rows[0].Cells {
		index[strings.ToLower(strings.TrimSpace(cell.String()))] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, eris.Errorf("tabular: xlsx missing column %q", c)
		}
	}

	records := make([]dataset.Record, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		get := func(col string) string {
			i := index[col]
			if row == nil || i >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[i].String())
		}
		if get("name") == "" {
			continue
		}
		records = append(records, dataset.Record{
			Name:      get("name"),
			Capital:   get("capital"),
			Phone:     get("phone"),
			Currency:  get("currency"),
			Continent: dataset.Continent(get("continent")),
			Languages: get("languages"),
		})
	}
	return records, nil
}
