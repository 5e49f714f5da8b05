package pricestore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
	"github.com/shanem9/crypto-settle/internal/writer"
)

// WriteCSV serializes the table as one row per symbol and one column per
// date, with a header row naming the dates in the canonical display format.
// Missing prices become empty cells.
func (s *Store) WriteCSV(w io.Writer, dates []time.Time) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(dates)+1)
	header = append(header, "symbol")
	for _, d := range dates {
		header = append(header, model.DateKey(d))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, sym := range s.Symbols() {
		row := make([]string, 0, len(dates)+1)
		row = append(row, sym)
		for _, d := range dates {
			if price, ok := s.Lookup(sym, d); ok {
				row = append(row, strconv.FormatFloat(price, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", sym, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reconstructs a store from the tabular form. Symbols are lowercased
// on load so keying stays consistent regardless of manual edits to the file.
func ReadCSV(r io.Reader) (*Store, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("price table is empty")
	}

	header := rows[0]
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "symbol") {
		return nil, fmt.Errorf("price table header must start with %q", "symbol")
	}
	// Validate the date columns up front so a corrupted header fails loudly
	// instead of producing keys that never match a lookup.
	for _, key := range header[1:] {
		if _, err := model.ParseDate(strings.TrimSpace(key)); err != nil {
			return nil, fmt.Errorf("price table header: %w", err)
		}
	}

	store := New()
	for i, row := range rows[1:] {
		sym := strings.ToLower(strings.TrimSpace(row[0]))
		if sym == "" {
			continue
		}
		series := make(model.Series)
		for col := 1; col < len(row) && col < len(header); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			price, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d (%s): parse price %q: %w", i+2, sym, cell, err)
			}
			series[strings.TrimSpace(header[col])] = price
		}
		store.Put(sym, series)
	}

	return store, nil
}

// WriteFile persists the table atomically (write-then-replace).
func (s *Store) WriteFile(path string, dates []time.Time) error {
	return writer.WriteFileAtomic(path, func(w io.Writer) error {
		return s.WriteCSV(w, dates)
	})
}

// ReadFile loads a previously persisted table.
func ReadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price table: %w", err)
	}
	defer f.Close()

	store, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read price table %s: %w", path, err)
	}
	return store, nil
}
