// Package table maintains tableData.json, the running "today's price and
// percent change" document displayed on the competition website between
// settlement runs.
package table

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/shanem9/crypto-settle/internal/writer"
)

// Entry is the per-symbol display record.
type Entry struct {
	StartPrice    *float64 `json:"start_price,omitempty"`
	TodaysDate    string   `json:"todays_date,omitempty"` // ISO date of last refresh
	TodaysPrice   float64  `json:"todays_price"`
	PercentChange float64  `json:"percent_change"`
}

// Data maps lowercased symbol to its display record.
type Data map[string]*Entry

// Load reads an existing table document. A missing file is an input failure:
// the refresher updates start prices it cannot invent.
func Load(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table data: %w", err)
	}
	defer f.Close()

	var data Data
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse table data %s: %w", path, err)
	}
	return data, nil
}

// Refresh updates one symbol's record with today's price and the running
// percent change against its start price, rounded to 2dp for display.
// Symbols without a start price are left untouched; a zero start price
// yields a defined zero change.
func (d Data) Refresh(symbol string, todaysPrice float64, today time.Time) bool {
	entry, ok := d[symbol]
	if !ok || entry.StartPrice == nil {
		return false
	}

	var pct float64
	if *entry.StartPrice != 0 {
		pct = (todaysPrice - *entry.StartPrice) / *entry.StartPrice * 100
	}

	entry.TodaysDate = today.UTC().Format("2006-01-02")
	entry.TodaysPrice = todaysPrice
	entry.PercentChange = round2(pct)
	return true
}

// Save writes the document atomically with stable indentation.
func (d Data) Save(path string) error {
	return writer.WriteFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
