// Package config loads the receipt rules and runtime settings from YAML.
//
// Every setting has a default, so a missing or partial file still yields a
// usable configuration:
//
//	log_level: info
//	receipt:
//	  tax_rate: 0.06
//	  categories: [DAIRY, PRODUCE]
//	  taxable_codes: [" T", "-T", "TF", " X"]
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultCategories are the department headers printed on the store's receipts.
var DefaultCategories = []string{
	"Age Restricted: 18",
	"BAKE SHOP",
	"BAKERY - COMMERCIAL",
	"CHEESE SHOP",
	"CONVENIENCE ITEMS",
	"DAIRY",
	"DELI",
	"FROZEN FOOD",
	"GENERAL MERCHANDISE",
	"GROCERY",
	"HEALTH AND BEAUTY CARE",
	"MEAT",
	"PHARMACY",
	"PREPARED FOODS",
	"PRODUCE",
}

// DefaultTaxableCodes are the two-character tax codes that mark a line as taxable.
//
//	 T  taxable item
//	-T  taxable item reduction
//	TF  taxable food (candy, soda, prepared food)
//	 X  taxable item, alternate marker
var DefaultTaxableCodes = []string{" T", "-T", "TF", " X"}

// DefaultTaxRate is the sales tax applied to taxable items.
var DefaultTaxRate = decimal.RequireFromString("0.06")

// Config holds the application configuration.
type Config struct {
	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error". Default: "info"
	LogLevel string `yaml:"log_level"`

	Receipt ReceiptRules `yaml:"receipt"`
}

// ReceiptRules are the store-format constants the receipt engine matches against.
type ReceiptRules struct {
	// TaxRate is applied to the sum of taxable item prices. It varies by
	// taxing jurisdiction. Default: 0.06
	TaxRate decimal.Decimal `yaml:"tax_rate"`

	// Categories is the fixed set of unindented department headers.
	Categories []string `yaml:"categories"`

	// TaxableCodes lists the tax codes whose lines are taxable.
	TaxableCodes []string `yaml:"taxable_codes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := newConfig()
	applyDefaults(cfg)
	return cfg
}

// newConfig seeds the settings whose zero value is meaningful, so an explicit
// zero in the file is kept and an absent key falls back to the default.
func newConfig() *Config {
	return &Config{Receipt: ReceiptRules{TaxRate: DefaultTaxRate}}
}

// Load reads the YAML file at path, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := newConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if len(cfg.Receipt.Categories) == 0 {
		cfg.Receipt.Categories = append([]string(nil), DefaultCategories...)
	}
	if len(cfg.Receipt.TaxableCodes) == 0 {
		cfg.Receipt.TaxableCodes = append([]string(nil), DefaultTaxableCodes...)
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return c.Receipt.Validate()
}

// Validate checks the receipt rules.
func (r ReceiptRules) Validate() error {
	if r.TaxRate.IsNegative() || r.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate %s must be in [0, 1)", r.TaxRate)
	}
	if len(r.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	for _, category := range r.Categories {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("category labels must not be blank")
		}
	}
	if len(r.TaxableCodes) == 0 {
		return fmt.Errorf("at least one taxable code is required")
	}
	for _, code := range r.TaxableCodes {
		if len(code) != 2 {
			return fmt.Errorf("taxable code %q must be exactly two characters", code)
		}
	}
	return nil
}
