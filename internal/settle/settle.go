// Package settle computes per-participant gain/loss against the historical
// price table, ranks the field, and detects exact ties at the top.
package settle

import (
	"slices"
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
	"github.com/shanem9/crypto-settle/internal/pricestore"
)

// ReasonMissingData marks participants excluded because a start or end price
// was absent from the table. Common and expected: assets listed after a date,
// API gaps, failed fetches.
const ReasonMissingData = "missing data"

// Compute settles every participant: start price at their own signup date,
// end price at the shared evaluation date. Participants with either price
// missing are excluded from ranking and reported separately; this never
// errors. A zero start price yields a defined zero percent change.
func Compute(parts []model.Participant, store *pricestore.Store, evalDate time.Time) ([]model.Result, []model.Exclusion) {
	results := make([]model.Result, 0, len(parts))
	var exclusions []model.Exclusion

	for _, p := range parts {
		startPrice, startOK := store.Lookup(p.Symbol, p.SignupDate)
		endPrice, endOK := store.Lookup(p.Symbol, evalDate)
		if !startOK || !endOK {
			exclusions = append(exclusions, model.Exclusion{
				Participant: p,
				Reason:      ReasonMissingData,
			})
			continue
		}

		var pct float64
		if startPrice != 0 {
			pct = (endPrice - startPrice) / startPrice * 100
		}

		results = append(results, model.Result{
			Participant:   p,
			StartPrice:    startPrice,
			EndPrice:      endPrice,
			PercentChange: pct,
			Formatted:     model.FormatPercent(pct),
		})
	}

	return results, exclusions
}

// Rank sorts results by percent change, best to worst, in place. The sort is
// stable so participants with exactly equal changes keep input order.
func Rank(results []model.Result) {
	slices.SortStableFunc(results, func(a, b model.Result) int {
		switch {
		case a.PercentChange > b.PercentChange:
			return -1
		case a.PercentChange < b.PercentChange:
			return 1
		default:
			return 0
		}
	})
}

// TopTie returns the leading group of ranked results sharing the maximum
// percent change exactly. A tie exists if and only if the group has two or
// more entries; equality is bit-for-bit on the full-precision value, never
// on the rounded display string.
func TopTie(ranked []model.Result) []model.Result {
	if len(ranked) == 0 {
		return nil
	}

	top := ranked[0].PercentChange
	group := ranked[:1]
	for _, r := range ranked[1:] {
		if r.PercentChange != top {
			break
		}
		group = ranked[:len(group)+1]
	}
	return group
}
