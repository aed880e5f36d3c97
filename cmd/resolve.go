package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/countrydict/pkg/country"
	"github.com/sells-group/countrydict/pkg/dataset"
)

var resolveFile string

var resolveCmd = &cobra.Command{
	Use:   "resolve [address...]",
	Short: "Resolve addresses to countries",
	Long:  "Geocodes each address with Google, falling back to Mapbox, and maps the country back into the dataset. Addresses come from the arguments and, with --file, one per line from a file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addresses := append([]string(nil), args...)
		if resolveFile != "" {
			lines, err := readLines(resolveFile)
			if err != nil {
				return err
			}
			addresses = append(addresses, lines...)
		}
		if len(addresses) == 0 {
			return eris.New("resolve: no addresses given")
		}

		dict, err := setup(ctx, "resolve")
		if err != nil {
			return err
		}

		results := dict.ByAddresses(ctx, addresses)
		failed := printAddressResults(cmd.OutOrStdout(), results)

		zap.L().Info("resolve complete",
			zap.Int("addresses", len(results)),
			zap.Int("failed", failed),
		)
		if failed > 0 {
			return eris.Errorf("resolve: %d of %d addresses failed", failed, len(results))
		}
		return nil
	},
}

// printAddressResults writes one row per address and returns the failure count.
func printAddressResults(out io.Writer, results []country.AddressResult) int {
	failed := 0
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ADDRESS\tCOUNTRY\tCONTINENT\tERROR")
	_, _ = fmt.Fprintln(w, "-------\t-------\t---------\t-----")
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			_, _ = fmt.Fprintf(w, "%s\t-\t-\t%s\n", r.Address, r.Err)
		case r.Country == nil:
			_, _ = fmt.Fprintf(w, "%s\t-\t-\tcountry not in dataset\n", r.Address)
		default:
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", r.Address, r.Country.Name, r.Country.Continent)
		}
	}
	_ = w.Flush()
	return failed
}

// readLines returns the non-blank lines of a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "resolve: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "resolve: read %s", path)
	}
	return lines, nil
}

var inCmd = &cobra.Command{
	Use:   "in <continent> <address>",
	Short: "Check whether an address lies on a continent",
	Long:  "Prints true or false. A country name is answered from the dataset; any other address is geocoded.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		continent, ok := dataset.ParseContinent(args[0])
		if !ok {
			return eris.Errorf("unknown continent %q", args[0])
		}

		dict, err := setup(ctx, "lookup")
		if err != nil {
			return err
		}

		in, err := dict.InContinent(ctx, strings.Join(args[1:], " "), continent)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), in)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveFile, "file", "", "file with one address per line")
	rootCmd.AddCommand(resolveCmd, inCmd)
}
