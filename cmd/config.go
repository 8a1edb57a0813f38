package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultLedgerFile is the ledger used when neither the flags nor the configuration name one.
const DefaultLedgerFile = "transactions.jsonl"

// Config is the content of the configuration file. Every key can be
// overridden with an LPF_ prefixed environment variable, e.g. LPF_LEDGER_FILE.
type Config struct {
	LedgerFile string      `mapstructure:"ledger_file"`
	PricesDB   string      `mapstructure:"prices_db"`
	PricePaths []PricePath `mapstructure:"price_paths"`
}

// PricePath locates the price of Symbol in a JSON document, for import-prices.
// It is a list entry and not a map key since configuration keys are case insensitive.
type PricePath struct {
	Symbol string `mapstructure:"symbol"`
	Path   string `mapstructure:"path"`
}

// Paths returns the configured JSONPath of each symbol.
func (c *Config) Paths() map[string]string {
	res := make(map[string]string, len(c.PricePaths))
	for _, p := range c.PricePaths {
		res[p.Symbol] = p.Path
	}
	return res
}

// LoadConfig reads the configuration at path, or .lpf.yaml in the current or
// home directory when path is empty. A missing default file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("ledger_file", DefaultLedgerFile)
	v.SetDefault("prices_db", "")

	v.SetEnvPrefix("LPF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".lpf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ApplyConfig loads the configuration and uses it for every global flag not
// set on the command line. It must be called after flag.Parse.
func ApplyConfig() error {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return err
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["ledger-file"] {
		*ledgerFile = cfg.LedgerFile
	}
	if !set["prices-db"] {
		*pricesDB = cfg.PricesDB
	}
	pricePaths = cfg.Paths()
	return nil
}
