package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shanem9/crypto-settle/internal/model"
)

// Catalog is the reference set of assets, keyed by lowercased symbol.
// Immutable for the run once loaded.
type Catalog struct {
	assets   []model.Asset
	bySymbol map[string]model.Asset
}

// LoadCatalog reads an asset catalog CSV. The header row must name at least
// "id" and "symbol" columns ("name" is optional); column order is free.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	cat, err := ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return cat, nil
}

// ReadCatalog parses catalog CSV from r.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	cols, err := headerIndex(rows[0], "id", "symbol")
	if err != nil {
		return nil, err
	}
	nameCol, hasName := optionalColumn(rows[0], "name")

	cat := &Catalog{bySymbol: make(map[string]model.Asset, len(rows)-1)}
	for _, row := range rows[1:] {
		asset := model.Asset{
			ID:     strings.TrimSpace(row[cols["id"]]),
			Symbol: strings.ToLower(strings.TrimSpace(row[cols["symbol"]])),
		}
		if hasName {
			asset.Name = strings.TrimSpace(row[nameCol])
		}
		if asset.Symbol == "" || asset.ID == "" {
			continue
		}
		// First entry for a symbol wins; CoinGecko exports can carry
		// duplicate tickers for unrelated coins further down the list.
		if _, exists := cat.bySymbol[asset.Symbol]; exists {
			continue
		}
		cat.assets = append(cat.assets, asset)
		cat.bySymbol[asset.Symbol] = asset
	}

	return cat, nil
}

// Get returns the asset for a symbol. Lookup is case-insensitive.
func (c *Catalog) Get(symbol string) (model.Asset, bool) {
	a, ok := c.bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	return a, ok
}

// Assets returns all catalog assets in file order.
func (c *Catalog) Assets() []model.Asset {
	return c.assets
}

// Len returns the number of distinct symbols.
func (c *Catalog) Len() int {
	return len(c.assets)
}

// headerIndex maps required column names to their positions.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	out := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		out[name] = i
	}
	return out, nil
}

// optionalColumn finds a column position if present.
func optionalColumn(header []string, name string) (int, bool) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, true
		}
	}
	return 0, false
}
