// Package pricestore accumulates per-asset daily price series into a single
// sparse table (symbol x date) and round-trips it through the flat CSV form
// consumed by later runs. Missing prices stay missing; there is no
// interpolation across gaps.
package pricestore

import (
	"sort"
	"strings"
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
)

// Store is the in-memory historical price table, built up one fully-fetched
// asset at a time. Treated as append-only within a run.
type Store struct {
	series map[string]model.Series
}

// New creates an empty store.
func New() *Store {
	return &Store{series: make(map[string]model.Series)}
}

// Put inserts or overwrites the full series for a symbol.
func (s *Store) Put(symbol string, series model.Series) {
	s.series[strings.ToLower(symbol)] = series
}

// Lookup returns the price for a symbol on an exact calendar date.
// The second return reports presence; absent dates are first-class misses.
func (s *Store) Lookup(symbol string, date time.Time) (float64, bool) {
	series, ok := s.series[strings.ToLower(symbol)]
	if !ok {
		return 0, false
	}
	price, ok := series[model.DateKey(date)]
	return price, ok
}

// Has reports whether any series exists for a symbol.
func (s *Store) Has(symbol string) bool {
	_, ok := s.series[strings.ToLower(symbol)]
	return ok
}

// Symbols returns all stored symbols, sorted.
func (s *Store) Symbols() []string {
	syms := make([]string, 0, len(s.series))
	for sym := range s.series {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// Len returns the number of stored series.
func (s *Store) Len() int {
	return len(s.series)
}
