package roster

import (
	"sort"

	"github.com/shanem9/crypto-settle/internal/model"
)

// Resolve reduces the catalog to the distinct assets actually chosen by
// participants. Chosen symbols with no catalog entry come back in unresolved
// (sorted, by symbol) and are excluded from the fetch set; an unresolvable
// symbol never aborts the run.
func Resolve(cat *Catalog, parts []model.Participant) (required []model.Asset, unresolved []string) {
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if seen[p.Symbol] {
			continue
		}
		seen[p.Symbol] = true

		asset, ok := cat.Get(p.Symbol)
		if !ok {
			unresolved = append(unresolved, p.Symbol)
			continue
		}
		required = append(required, asset)
	}

	sort.Strings(unresolved)
	return required, unresolved
}
