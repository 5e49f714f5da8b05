package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
)

// WriteEvidence writes intraday tie-break samples for manual or automated
// adjudication, one row per sample:
// cryptoSymbol,signUpDate,timestampUTC,price.
func WriteEvidence(path string, samples []model.TiebreakSample) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)

		if err := cw.Write([]string{"cryptoSymbol", "signUpDate", "timestampUTC", "price"}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, s := range samples {
			row := []string{
				s.Symbol,
				model.DateKey(s.SignupDate),
				s.Timestamp.UTC().Format(time.RFC3339),
				strconv.FormatFloat(s.Price, 'f', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write sample row: %w", err)
			}
		}

		cw.Flush()
		return cw.Error()
	})
}
