package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/countrydict/internal/config"
	"github.com/sells-group/countrydict/internal/fetcher"
	"github.com/sells-group/countrydict/internal/tabular"
	"github.com/sells-group/countrydict/pkg/country"
	"github.com/sells-group/countrydict/pkg/dataset"
	"github.com/sells-group/countrydict/pkg/geocode"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "countrydict",
	Short: "Country reference lookups and address-to-country resolution",
	Long:  "Looks up countries by name, phone prefix or capital, filters them by continent, currency or language, and resolves free-form addresses to countries via Google with a Mapbox fallback.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

// newDictionary builds a Dictionary from the loaded configuration.
func newDictionary(ctx context.Context, c *config.Config) (*country.Dictionary, error) {
	resolver := geocode.NewResolver(
		geocode.WithGoogleAPIKey(c.Geocode.GoogleKey),
		geocode.WithMapboxAPIKey(c.Geocode.MapboxKey),
		geocode.WithGoogleURL(c.Geocode.GoogleURL),
		geocode.WithMapboxURL(c.Geocode.MapboxURL),
		geocode.WithTimeout(c.Geocode.Timeout()),
	)

	opts := []country.Option{
		country.WithGeocoder(resolver),
		country.WithBatchConcurrency(c.Geocode.BatchConcurrency),
	}
	if c.Dataset.Path != "" {
		ds, err := loadDataset(ctx, c)
		if err != nil {
			return nil, eris.Wrap(err, "load dataset")
		}
		zap.L().Debug("loaded dataset",
			zap.String("path", c.Dataset.Path),
			zap.Int("records", ds.Len()),
		)
		opts = append(opts, country.WithDataset(ds))
	}
	return country.New(opts...), nil
}

// loadDataset reads dataset.path, downloading it first when it is a URL.
func loadDataset(ctx context.Context, c *config.Config) (*dataset.Dataset, error) {
	if fetcher.IsRemote(c.Dataset.Path) {
		return tabular.FetchDataset(ctx, c.Dataset.Path, c.Geocode.Timeout())
	}
	return tabular.LoadDataset(c.Dataset.Path)
}

// setup validates the configuration for mode and builds the dictionary.
func setup(ctx context.Context, mode string) (*country.Dictionary, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	return newDictionary(ctx, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
