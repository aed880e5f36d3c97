package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/countrydict/internal/tabular"
)

var (
	exportFormat    string
	exportOutput    string
	exportContinent string
	exportCurrency  string
	exportLanguage  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the country dataset as JSON, YAML, CSV or XLSX",
	Long:  "Writes the (optionally filtered) dataset. The format defaults to the --output extension, or JSON on stdout. Exported files can be loaded back through dataset.path.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format := tabular.FormatFromPath(exportOutput)
		if exportFormat != "" {
			f, err := tabular.ParseFormat(exportFormat)
			if err != nil {
				return err
			}
			format = f
		}

		dict, err := setup(cmd.Context(), "lookup")
		if err != nil {
			return err
		}
		records, err := filterRecords(dict, exportContinent, exportCurrency, exportLanguage)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return eris.Wrapf(err, "export: create %s", exportOutput)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		if err := tabular.Write(out, format, records); err != nil {
			return err
		}
		if exportOutput != "" {
			zap.L().Info("export complete",
				zap.String("path", exportOutput),
				zap.String("format", string(format)),
				zap.Int("records", len(records)),
			)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json, yaml, csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportContinent, "continent", "", "continent code or name")
	exportCmd.Flags().StringVar(&exportCurrency, "currency", "", "ISO 4217 currency code")
	exportCmd.Flags().StringVar(&exportLanguage, "language", "", "ISO 639-1 code or language name")
	rootCmd.AddCommand(exportCmd)
}
