package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shanem9/crypto-settle/internal/model"
)

// LoadParticipants reads the canonical participant list CSV
// (attendeeName,signUpDate,signUpTime,cryptoSymbol). Signup dates must be in
// the canonical display format; anything else is an input failure and fatal
// to the run.
func LoadParticipants(path string) ([]model.Participant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open participants: %w", err)
	}
	defer f.Close()

	parts, err := ReadParticipants(f)
	if err != nil {
		return nil, fmt.Errorf("read participants %s: %w", path, err)
	}
	return parts, nil
}

// ReadParticipants parses participant CSV from r.
func ReadParticipants(r io.Reader) ([]model.Participant, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("participant list is empty")
	}

	cols, err := headerIndex(rows[0], "attendeename", "signupdate", "cryptosymbol")
	if err != nil {
		return nil, err
	}
	timeCol, hasTime := optionalColumn(rows[0], "signuptime")

	parts := make([]model.Participant, 0, len(rows)-1)
	for i, row := range rows[1:] {
		date, err := model.ParseDate(strings.TrimSpace(row[cols["signupdate"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		p := model.Participant{
			Name:       strings.TrimSpace(row[cols["attendeename"]]),
			SignupDate: date,
			Symbol:     strings.ToLower(strings.TrimSpace(row[cols["cryptosymbol"]])),
		}
		if hasTime {
			p.SignupTime = strings.TrimSpace(row[timeCol])
		}
		parts = append(parts, p)
	}

	return parts, nil
}
