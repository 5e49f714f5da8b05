package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
)

// RawEntrant is one row of the raw entrants export before normalization.
type RawEntrant struct {
	Name       string
	Date       string // d/m/yy, d/m/yyyy, or already-canonical display format
	Time       string // "HH:MM" wall clock
	Coin       string // Free-text coin choice (symbol, API id, or full name)
	TicketType string
}

// Dropped records an entrant removed during normalization, with the reason.
type Dropped struct {
	Entrant RawEntrant
	Reason  string
}

// Entrants signing up with party or virtual tickets are not eligible.
var excludedTicketTypes = []string{"party", "virtual"}

// perSymbolCap limits how many entrants may back one symbol; first five by
// signup date-time keep their entry.
const perSymbolCap = 5

// LoadEntrants reads a raw entrants export CSV. The header row must name
// "name", "date" and "coin" columns; "time" and "ticket type" are optional.
func LoadEntrants(path string) ([]RawEntrant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entrants: %w", err)
	}
	defer f.Close()

	raws, err := ReadEntrants(f)
	if err != nil {
		return nil, fmt.Errorf("read entrants %s: %w", path, err)
	}
	return raws, nil
}

// ReadEntrants parses raw entrant CSV from r.
func ReadEntrants(r io.Reader) ([]RawEntrant, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("entrants export is empty")
	}

	cols, err := headerIndex(rows[0], "name", "date", "coin")
	if err != nil {
		return nil, err
	}
	timeCol, hasTime := optionalColumn(rows[0], "time")
	ticketCol, hasTicket := optionalColumn(rows[0], "ticket type")

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	raws := make([]RawEntrant, 0, len(rows)-1)
	for _, row := range rows[1:] {
		e := RawEntrant{
			Name: cell(row, cols["name"]),
			Date: cell(row, cols["date"]),
			Coin: cell(row, cols["coin"]),
		}
		if hasTime {
			e.Time = cell(row, timeCol)
		}
		if hasTicket {
			e.TicketType = cell(row, ticketCol)
		}
		raws = append(raws, e)
	}

	return raws, nil
}

// Normalize turns raw entrants into the canonical participant list:
//
//  1. Resolve each free-text coin choice to a catalog symbol via MatchCoin.
//  2. Drop entrants with excluded ticket types (substring match).
//  3. Parse signup dates into the canonical date key.
//  4. Drop entrants whose coin never resolved against the catalog.
//  5. Cap each symbol to its first five entrants by signup date-time.
//
// Dropped entrants are returned with reasons rather than silently removed.
func Normalize(raws []RawEntrant, cat *Catalog) ([]model.Participant, []Dropped) {
	var parts []model.Participant
	var dropped []Dropped

	for _, e := range raws {
		if reason, excluded := excludedTicket(e.TicketType); excluded {
			dropped = append(dropped, Dropped{Entrant: e, Reason: reason})
			continue
		}

		asset, ok := MatchCoin(cat, e.Coin)
		if !ok {
			dropped = append(dropped, Dropped{Entrant: e,
				Reason: fmt.Sprintf("coin %q not present in catalog", e.Coin)})
			continue
		}

		date, err := parseSignupDate(e.Date)
		if err != nil {
			dropped = append(dropped, Dropped{Entrant: e,
				Reason: fmt.Sprintf("unparseable signup date %q", e.Date)})
			continue
		}

		parts = append(parts, model.Participant{
			Name:       e.Name,
			SignupDate: date,
			SignupTime: e.Time,
			Symbol:     asset.Symbol,
		})
	}

	return capPerSymbol(parts, &dropped), dropped
}

// MatchCoin resolves a free-text coin choice against the catalog under an
// explicit three-pass policy, each pass over catalog file order with the
// first hit winning:
//
//  1. exact symbol match (case-insensitive)
//  2. catalog id appearing as a substring of the choice
//  3. catalog display name appearing as a substring of the choice
//
// Making the passes explicit keeps resolution independent of accidental
// catalog ordering between symbol, id and name hits.
func MatchCoin(cat *Catalog, coin string) (model.Asset, bool) {
	choice := strings.ToLower(strings.TrimSpace(coin))
	if choice == "" {
		return model.Asset{}, false
	}

	if asset, ok := cat.Get(choice); ok {
		return asset, true
	}

	for _, asset := range cat.Assets() {
		if asset.ID != "" && strings.Contains(choice, strings.ToLower(asset.ID)) {
			return asset, true
		}
	}

	for _, asset := range cat.Assets() {
		if asset.Name != "" && strings.Contains(choice, strings.ToLower(asset.Name)) {
			return asset, true
		}
	}

	return model.Asset{}, false
}

func excludedTicket(ticketType string) (string, bool) {
	tt := strings.ToLower(strings.TrimSpace(ticketType))
	for _, ex := range excludedTicketTypes {
		if strings.Contains(tt, ex) {
			return fmt.Sprintf("ticket type %q not eligible", ticketType), true
		}
	}
	return "", false
}

// parseSignupDate accepts the raw export's day-first forms plus the
// canonical display format.
func parseSignupDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2/1/2006", "2/1/06", model.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// capPerSymbol keeps the first perSymbolCap participants per symbol ordered
// by signup date-time (input order breaks exact ties), appending the rest to
// dropped.
func capPerSymbol(parts []model.Participant, dropped *[]Dropped) []model.Participant {
	type indexed struct {
		p   model.Participant
		idx int
	}

	bySymbol := make(map[string][]indexed)
	for i, p := range parts {
		bySymbol[p.Symbol] = append(bySymbol[p.Symbol], indexed{p, i})
	}

	keep := make(map[int]bool, len(parts))
	for _, group := range bySymbol {
		sort.SliceStable(group, func(a, b int) bool {
			if !group[a].p.SignupDate.Equal(group[b].p.SignupDate) {
				return group[a].p.SignupDate.Before(group[b].p.SignupDate)
			}
			return group[a].p.SignupTime < group[b].p.SignupTime
		})
		for i, entry := range group {
			if i < perSymbolCap {
				keep[entry.idx] = true
				continue
			}
			*dropped = append(*dropped, Dropped{
				Entrant: RawEntrant{
					Name: entry.p.Name,
					Date: model.DateKey(entry.p.SignupDate),
					Time: entry.p.SignupTime,
					Coin: entry.p.Symbol,
				},
				Reason: fmt.Sprintf("over %d-entry cap for %q", perSymbolCap, entry.p.Symbol),
			})
		}
	}

	out := make([]model.Participant, 0, len(keep))
	for i, p := range parts {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
