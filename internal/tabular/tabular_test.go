package tabular

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/countrydict/pkg/dataset"
)

func sampleRecords() []dataset.Record {
	return []dataset.Record{
		{Name: "Antigua and Barbuda", Capital: "Saint John's", Phone: "1268", Currency: "XCD", Continent: dataset.NorthAmerica, Languages: "en"},
		{Name: "Nauru", Capital: "Yaren", Phone: "674", Currency: "AUD", Continent: dataset.Oceania, Languages: "en,na"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", JSON},
		{"YAML", YAML},
		{"yml", YAML},
		{" csv ", CSV},
		{"xlsx", XLSX},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, "in=%q", tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, CSV, FormatFromPath("/tmp/out.CSV"))
	assert.Equal(t, XLSX, FormatFromPath("countries.xlsx"))
	assert.Equal(t, YAML, FormatFromPath("countries.yml"))
	assert.Equal(t, JSON, FormatFromPath("countries.json"))
	assert.Equal(t, JSON, FormatFromPath("countries"))
}

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, sampleRecords()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(columns, ","), lines[0])
	assert.Equal(t, `Nauru,Yaren,674,AUD,OC,"en,na"`, lines[2])
}

func TestWriteThenLoad(t *testing.T) {
	for _, f := range []Format{JSON, YAML, CSV, XLSX} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "countries."+string(f))
			out, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, Write(out, f, sampleRecords()))
			require.NoError(t, out.Close())

			ds, err := LoadDataset(path)
			require.NoError(t, err)
			assert.Equal(t, sampleRecords(), ds.Records())
		})
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), sampleRecords())
	require.Error(t, err)
}

func TestLoadDataset_XLSXMissingColumn(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	row := sheet.AddRow()
	row.AddCell().SetString("name")
	row.AddCell().SetString("capital")

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.Save(path))

	_, err = LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "phone"`)
}

func TestLoadDataset_CSVValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,capital,phone,currency,continent,languages\nX,Y,1,USD,ZZ,en\n"), 0o644))

	_, err := LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown continent")
}

func TestLoadDataset_DefaultRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, dataset.Default().Records()))

	path := filepath.Join(t.TempDir(), "all.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, dataset.Default().Len(), ds.Len())
}
