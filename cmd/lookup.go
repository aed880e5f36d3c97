package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/countrydict/pkg/country"
	"github.com/sells-group/countrydict/pkg/dataset"
)

// fieldCmd builds a command that prints one field of a named country.
func fieldCmd(use, short string, field func(*country.Dictionary, string) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <country>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := setup(cmd.Context(), "lookup")
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			v := field(dict, name)
			if v == "" {
				return eris.Errorf("no country named %q", name)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

var getCmd = &cobra.Command{
	Use:   "get <country>",
	Short: "Show the full record of a country",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := setup(cmd.Context(), "lookup")
		if err != nil {
			return err
		}
		name := strings.Join(args, " ")
		r := dict.ByName(name)
		if r == nil {
			return eris.Errorf("no country named %q", name)
		}
		printRecord(cmd.OutOrStdout(), r)
		return nil
	},
}

var capitalCmd = fieldCmd("capital", "Show the capital of a country",
	(*country.Dictionary).Capital)

var phoneCmd = fieldCmd("phone", "Show the international dialing prefix of a country",
	(*country.Dictionary).PhoneIndex)

var currencyCmd = fieldCmd("currency", "Show the ISO 4217 currency code of a country",
	(*country.Dictionary).Currency)

var continentCmd = fieldCmd("continent", "Show the continent code of a country",
	func(d *country.Dictionary, name string) string { return string(d.Continent(name)) })

var languagesCmd = &cobra.Command{
	Use:   "languages <country>",
	Short: "List the languages spoken in a country",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := setup(cmd.Context(), "lookup")
		if err != nil {
			return err
		}
		name := strings.Join(args, " ")
		if dict.ByName(name) == nil {
			return eris.Errorf("no country named %q", name)
		}
		for _, l := range dict.Languages(name) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

var byPhoneCmd = &cobra.Command{
	Use:   "by-phone <prefix>",
	Short: "Find the first country using a dialing prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := setup(cmd.Context(), "lookup")
		if err != nil {
			return err
		}
		r := dict.ByPhone(args[0])
		if r == nil {
			return eris.Errorf("no country with phone prefix %q", args[0])
		}
		printRecord(cmd.OutOrStdout(), r)
		return nil
	},
}

var byCapitalCmd = &cobra.Command{
	Use:   "by-capital <capital>",
	Short: "Find the country with a given capital (case-sensitive)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := setup(cmd.Context(), "lookup")
		if err != nil {
			return err
		}
		capital := strings.Join(args, " ")
		r := dict.ByCapital(capital)
		if r == nil {
			return eris.Errorf("no country with capital %q", capital)
		}
		printRecord(cmd.OutOrStdout(), r)
		return nil
	},
}

var (
	listContinent string
	listCurrency  string
	listLanguage  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List countries, optionally filtered",
	Long:  "List countries in dataset order. Filters combine: --continent takes a code (EU) or a name (Europe), --currency an ISO 4217 code, --language an ISO 639-1 code or an English language name.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dict, err := setup(cmd.Context(), "lookup")
		if err != nil {
			return err
		}
		records, err := filterRecords(dict, listContinent, listCurrency, listLanguage)
		if err != nil {
			return err
		}
		printRecords(cmd.OutOrStdout(), records)
		return nil
	},
}

// filterRecords applies the non-empty filters in turn.
func filterRecords(dict *country.Dictionary, continent, currency, language string) ([]country.Record, error) {
	records := dict.All()
	if continent != "" {
		c, ok := dataset.ParseContinent(continent)
		if !ok {
			return nil, eris.Errorf("unknown continent %q", continent)
		}
		records = keep(records, dict.ByContinent(c))
	}
	if currency != "" {
		records = keep(records, dict.ByCurrency(strings.ToUpper(currency)))
	}
	if language != "" {
		records = keep(records, dict.ByLanguage(language))
	}
	return records, nil
}

// keep returns the records of a whose names also appear in b.
func keep(a, b []country.Record) []country.Record {
	names := make(map[string]bool, len(b))
	for _, r := range b {
		names[r.Name] = true
	}
	out := make([]country.Record, 0, len(b))
	for _, r := range a {
		if names[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

func init() {
	listCmd.Flags().StringVar(&listContinent, "continent", "", "continent code or name")
	listCmd.Flags().StringVar(&listCurrency, "currency", "", "ISO 4217 currency code")
	listCmd.Flags().StringVar(&listLanguage, "language", "", "ISO 639-1 code or language name")

	rootCmd.AddCommand(getCmd, capitalCmd, phoneCmd, currencyCmd, continentCmd,
		languagesCmd, byPhoneCmd, byCapitalCmd, listCmd)
}
