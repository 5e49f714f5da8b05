package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical display format for calendar dates. Every date
// written to or read from a flat file uses this layout, end to end, so a key
// written by the collector always matches a key looked up by the calculator.
const DateLayout = "02-Jan-2006"

// DateKey formats t as a canonical date key, discarding the time component.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a canonical date key into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// DayRange returns every calendar day from start through end inclusive.
func DayRange(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start.UTC(); !d.After(end.UTC()); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// -----------------------------------------------------------------------------
// Reference Types
// -----------------------------------------------------------------------------

// Asset is a tradeable cryptocurrency from the reference catalog.
type Asset struct {
	Symbol string // Short ticker symbol, lowercased (e.g., "btc"); unique key
	ID     string // External price-API identifier (e.g., "bitcoin")
	Name   string // Display name (e.g., "Bitcoin")
}

// Participant is one competition entrant with a single asset choice.
type Participant struct {
	Name       string    // Entrant display name
	SignupDate time.Time // Date the choice was committed (UTC midnight)
	SignupTime string    // Wall-clock signup time "HH:MM", informational only
	Symbol     string    // Chosen asset symbol, lowercased
}

// Series is a sparse daily price series keyed by canonical date key.
// Absent keys are first-class "missing" entries, never zero-filled.
type Series map[string]float64

// -----------------------------------------------------------------------------
// Settlement Types
// -----------------------------------------------------------------------------

// Run identifies one settlement run for audit purposes.
type Run struct {
	ID             uuid.UUID // Per-run identifier stamped into logs
	StartDate      time.Time // First day of the competition window
	EvaluationDate time.Time // Shared gain/loss evaluation date
	Currency       string    // Settlement currency (e.g., "usd")
}

// Result is a settled participant with both prices present.
type Result struct {
	Participant   Participant
	StartPrice    float64 // Price at the participant's signup date
	EndPrice      float64 // Price at the shared evaluation date
	PercentChange float64 // (end-start)/start*100, full precision
	Formatted     string  // Signed, 2dp display string (e.g., "+20.00%")
}

// Exclusion records a participant left out of the ranking, with the reason.
// Excluded participants still appear in output for auditability.
type Exclusion struct {
	Participant Participant
	Reason      string // e.g., "missing data"
}

// TiebreakSample is one intraday price point emitted as tie-break evidence.
type TiebreakSample struct {
	Symbol     string    // Tied asset symbol
	SignupDate time.Time // Signup day the samples cover
	Timestamp  time.Time // Sample timestamp, UTC
	Price      float64   // Sample price
}

// FormatPercent renders a percent change as a signed display string.
// Zero and positive values get an explicit leading "+".
func FormatPercent(v float64) string {
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.2f%%", sign, math.Abs(v))
}
