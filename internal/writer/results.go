package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shanem9/crypto-settle/internal/model"
)

// WriteResults writes ranked settlement results, best-to-worst, as
// attendeeName,cryptoSymbol,gainLoss,gainLossFormatted.
func WriteResults(path string, results []model.Result) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return writeResultsCSV(w, results)
	})
}

func writeResultsCSV(w io.Writer, results []model.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"attendeeName", "cryptoSymbol", "gainLoss", "gainLossFormatted"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.Participant.Name,
			r.Participant.Symbol,
			strconv.FormatFloat(r.PercentChange, 'f', -1, 64),
			r.Formatted,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write result row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteExclusions writes participants excluded from ranking, with reasons,
// so missing-data cases stay visible in output rather than silently dropped.
func WriteExclusions(path string, exclusions []model.Exclusion) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)

		if err := cw.Write([]string{"attendeeName", "cryptoSymbol", "signUpDate", "reason"}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, e := range exclusions {
			row := []string{
				e.Participant.Name,
				e.Participant.Symbol,
				model.DateKey(e.Participant.SignupDate),
				e.Reason,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write exclusion row: %w", err)
			}
		}

		cw.Flush()
		return cw.Error()
	})
}

// WriteParticipants writes the canonical participant list produced by the
// entrant normalizer.
func WriteParticipants(path string, parts []model.Participant) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)

		if err := cw.Write([]string{"attendeeName", "signUpDate", "signUpTime", "cryptoSymbol"}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, p := range parts {
			row := []string{p.Name, model.DateKey(p.SignupDate), p.SignupTime, p.Symbol}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write participant row: %w", err)
			}
		}

		cw.Flush()
		return cw.Error()
	})
}
