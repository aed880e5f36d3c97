package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sells-group/countrydict/pkg/country"
)

// printRecords writes records as an aligned table.
func printRecords(out io.Writer, records []country.Record) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCAPITAL\tPHONE\tCURRENCY\tCONTINENT\tLANGUAGES")
	_, _ = fmt.Fprintln(w, "----\t-------\t-----\t--------\t---------\t---------")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Capital, r.Phone, r.Currency, r.Continent, r.Languages)
	}
	_ = w.Flush()
}

// printRecord writes one record as key/value lines.
func printRecord(out io.Writer, r *country.Record) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Name:\t%s\n", r.Name)
	_, _ = fmt.Fprintf(w, "Capital:\t%s\n", r.Capital)
	_, _ = fmt.Fprintf(w, "Phone:\t+%s\n", r.Phone)
	_, _ = fmt.Fprintf(w, "Currency:\t%s\n", r.Currency)
	_, _ = fmt.Fprintf(w, "Continent:\t%s (%s)\n", r.Continent.Name(), r.Continent)
	_, _ = fmt.Fprintf(w, "Languages:\t%s\n", r.Languages)
	_ = w.Flush()
}
