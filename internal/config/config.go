package config

import "time"

// SettleConfig is the root configuration for a settlement run.
type SettleConfig struct {
	Run     RunConfig     `yaml:"run"`
	API     APIConfig     `yaml:"api"`
	Inputs  InputsConfig  `yaml:"inputs"`
	Outputs OutputsConfig `yaml:"outputs"`
}

// RunConfig holds the competition window and settlement currency.
// Dates use the canonical display format (e.g., "14-Jul-2025").
type RunConfig struct {
	StartDate      string `yaml:"start_date"`      // First day of the competition
	EvaluationDate string `yaml:"evaluation_date"` // Defaults to today (UTC)
	Currency       string `yaml:"currency"`
}

// APIConfig holds CoinGecko API settings.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	UserAgent         string        `yaml:"user_agent"` // Static identification header
	Timeout           time.Duration `yaml:"timeout"`
	MaxAttempts       int           `yaml:"max_attempts"`        // Attempts per request under rate limiting
	RateLimitCooldown time.Duration `yaml:"rate_limit_cooldown"` // Fixed wait before a rate-limit retry
	PaceInterval      time.Duration `yaml:"pace_interval"`       // Enforced gap between per-asset fetches
}

// InputsConfig holds the flat-file inputs.
type InputsConfig struct {
	Catalog      string `yaml:"catalog"`      // Asset catalog CSV (id,symbol,name)
	Participants string `yaml:"participants"` // Canonical participant list CSV
}

// OutputsConfig holds the flat-file outputs.
type OutputsConfig struct {
	PriceTable string `yaml:"price_table"` // Historical price table CSV
	Results    string `yaml:"results"`     // Ranked settlement results CSV
	Exclusions string `yaml:"exclusions"`  // Participants excluded for missing data
	Tiebreak   string `yaml:"tiebreak"`    // Intraday tie-break evidence CSV
	TableData  string `yaml:"table_data"`  // Running gain/loss JSON document
}
