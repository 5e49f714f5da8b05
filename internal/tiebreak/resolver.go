// Package tiebreak resolves an exact tie at the top of the ranking by
// fetching intraday price samples for the tied asset across the signup day
// and emitting them as evidence. Adjudication itself is out of scope: a
// human (or a further tool) decides from the samples who committed at the
// lower price.
package tiebreak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shanem9/crypto-settle/internal/api"
	"github.com/shanem9/crypto-settle/internal/model"
	"github.com/shanem9/crypto-settle/internal/roster"
)

// ErrInconsistentTie reports a tie group spanning more than one symbol or
// signup date. By construction all tied top entries for one determination
// should reference the same asset and day; anything else is a data
// inconsistency to surface, not to silently resolve.
var ErrInconsistentTie = errors.New("tie group spans multiple symbols or signup dates")

// ErrNoData reports that the intraday fetch produced nothing usable.
var ErrNoData = errors.New("no tiebreaker data available")

// RangeFetcher is the slice of the API client the resolver needs.
type RangeFetcher interface {
	GetMarketChartRange(ctx context.Context, coinID, currency string, from, to time.Time) (*api.ChartResponse, error)
}

// Resolver fetches tie-break evidence.
type Resolver struct {
	client   RangeFetcher
	currency string
	logger   *slog.Logger
}

// New creates a Resolver.
func New(client RangeFetcher, currency string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{client: client, currency: currency, logger: logger}
}

// Resolve verifies the tied group is consistent, then fetches intraday
// samples for the tied symbol across [signup 00:00 UTC, signup+1d 00:00 UTC)
// and returns them for adjudication. Fetch failures and empty responses come
// back as ErrNoData; the caller reports and carries on, never aborts.
func (r *Resolver) Resolve(ctx context.Context, group []model.Result, cat *roster.Catalog) ([]model.TiebreakSample, error) {
	if len(group) < 2 {
		return nil, fmt.Errorf("tie group has %d entries, need at least 2", len(group))
	}

	symbol := group[0].Participant.Symbol
	signup := group[0].Participant.SignupDate
	for _, res := range group[1:] {
		if res.Participant.Symbol != symbol || !res.Participant.SignupDate.Equal(signup) {
			return nil, fmt.Errorf("%w: %s/%s vs %s/%s", ErrInconsistentTie,
				symbol, model.DateKey(signup),
				res.Participant.Symbol, model.DateKey(res.Participant.SignupDate))
		}
	}

	asset, ok := cat.Get(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: symbol %q not in catalog", ErrNoData, symbol)
	}

	from := signup.UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 1)

	r.logger.Info("fetching intraday tiebreak data",
		"symbol", symbol,
		"coin_id", asset.ID,
		"signup_date", model.DateKey(signup),
	)

	chart, err := r.client.GetMarketChartRange(ctx, asset.ID, r.currency, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	raw := chart.Samples()
	if len(raw) == 0 {
		return nil, ErrNoData
	}

	samples := make([]model.TiebreakSample, 0, len(raw))
	for _, s := range raw {
		samples = append(samples, model.TiebreakSample{
			Symbol:     symbol,
			SignupDate: signup,
			Timestamp:  s.Timestamp,
			Price:      s.Price,
		})
	}

	return samples, nil
}
