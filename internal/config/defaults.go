package config

import (
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
)

// Default values for optional configuration fields.
const (
	DefaultBaseURL   = "https://api.coingecko.com/api/v3"
	DefaultUserAgent = "Mozilla/5.0 (CryptoGameDataFetcher/1.1)"
	DefaultCurrency  = "usd"

	DefaultAPITimeout  = 30 * time.Second
	DefaultMaxAttempts = 3
	// The free tier holds 429s for a while; a minute plus a buffer clears it.
	DefaultRateLimitCooldown = 65 * time.Second
	// Throttle kicks in above 5-6 requests per minute; 12s keeps us under it.
	DefaultPaceInterval = 12 * time.Second

	DefaultCatalogFile      = "cryptoList.csv"
	DefaultParticipantsFile = "attendeeList.csv"
	DefaultPriceTableFile   = "coinGeckoData.csv"
	DefaultResultsFile      = "cryptoGameResults.csv"
	DefaultExclusionsFile   = "cryptoGameExclusions.csv"
	DefaultTiebreakFile     = "tiebreakerData.csv"
	DefaultTableDataFile    = "tableData.json"
)

func (c *SettleConfig) applyDefaults() {
	// Run defaults
	if c.Run.EvaluationDate == "" {
		c.Run.EvaluationDate = model.DateKey(time.Now().UTC())
	}
	if c.Run.Currency == "" {
		c.Run.Currency = DefaultCurrency
	}

	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = DefaultUserAgent
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxAttempts == 0 {
		c.API.MaxAttempts = DefaultMaxAttempts
	}
	if c.API.RateLimitCooldown == 0 {
		c.API.RateLimitCooldown = DefaultRateLimitCooldown
	}
	if c.API.PaceInterval == 0 {
		c.API.PaceInterval = DefaultPaceInterval
	}

	// Input defaults
	if c.Inputs.Catalog == "" {
		c.Inputs.Catalog = DefaultCatalogFile
	}
	if c.Inputs.Participants == "" {
		c.Inputs.Participants = DefaultParticipantsFile
	}

	// Output defaults
	if c.Outputs.PriceTable == "" {
		c.Outputs.PriceTable = DefaultPriceTableFile
	}
	if c.Outputs.Results == "" {
		c.Outputs.Results = DefaultResultsFile
	}
	if c.Outputs.Exclusions == "" {
		c.Outputs.Exclusions = DefaultExclusionsFile
	}
	if c.Outputs.Tiebreak == "" {
		c.Outputs.Tiebreak = DefaultTiebreakFile
	}
	if c.Outputs.TableData == "" {
		c.Outputs.TableData = DefaultTableDataFile
	}
}
