package config

import (
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig holds the address geocoding providers.
type GeocodeConfig struct {
	GoogleKey        string `yaml:"google_key" mapstructure:"google_key"`
	MapboxKey        string `yaml:"mapbox_key" mapstructure:"mapbox_key"`
	GoogleURL        string `yaml:"google_url" mapstructure:"google_url"`
	MapboxURL        string `yaml:"mapbox_url" mapstructure:"mapbox_url"`
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	BatchConcurrency int    `yaml:"batch_concurrency" mapstructure:"batch_concurrency"`
}

// Timeout returns the per-request timeout as a duration.
func (g GeocodeConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// DatasetConfig selects the country reference file. An empty path uses the
// embedded dataset.
type DatasetConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COUNTRYDICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("geocode.google_key", "")
	v.SetDefault("geocode.mapbox_key", "")
	v.SetDefault("geocode.google_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("geocode.mapbox_url", "https://api.mapbox.com/geocoding/v5/mapbox.places")
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("geocode.batch_concurrency", 5)
	v.SetDefault("dataset.path", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a given mode depends on. Modes: "lookup",
// "resolve", "serve".
func (c *Config) Validate(mode string) error {
	var errs []error

	switch mode {
	case "lookup":
	case "resolve":
		if c.Geocode.GoogleKey == "" {
			errs = append(errs, eris.New("geocode.google_key is required"))
		}
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, eris.New("server.port must be > 0"))
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Geocode.TimeoutSecs <= 0 {
		errs = append(errs, eris.New("geocode.timeout_secs must be > 0"))
	}
	if c.Geocode.BatchConcurrency < 1 || c.Geocode.BatchConcurrency > 50 {
		errs = append(errs, eris.New("geocode.batch_concurrency must be between 1 and 50"))
	}

	if len(errs) > 0 {
		return eris.Wrap(errors.Join(errs...), "config: validate "+mode)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
