// Package model defines shared data types used across the settlement engine.
//
// Conventions:
//   - Prices: float64, quoted in the run's settlement currency (usd by default)
//   - Dates: canonical display key "02-Jan-2006", always UTC
//   - Timestamps: time.Time in UTC (intraday tie-break samples)
package model
