package api

import (
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
)

// ChartResponse from GET /coins/{id}/market_chart and .../market_chart/range.
// Prices are (epoch-ms timestamp, price) pairs in response order.
type ChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// Sample is a single decoded price point.
type Sample struct {
	Timestamp time.Time
	Price     float64
}

// Samples decodes the raw price pairs into timestamped samples, skipping
// malformed entries. Timestamps are UTC.
func (r *ChartResponse) Samples() []Sample {
	samples := make([]Sample, 0, len(r.Prices))
	for _, p := range r.Prices {
		if len(p) < 2 {
			continue
		}
		samples = append(samples, Sample{
			Timestamp: time.UnixMilli(int64(p[0])).UTC(),
			Price:     p[1],
		})
	}
	return samples
}

// DailySeries collapses the price points to one price per calendar day, keyed
// by the canonical date key. When the API returns more than one point for a
// date, the later one in response order wins.
func (r *ChartResponse) DailySeries() model.Series {
	series := make(model.Series, len(r.Prices))
	for _, s := range r.Samples() {
		series[model.DateKey(s.Timestamp)] = s.Price
	}
	return series
}

// SimplePrices from GET /simple/price: asset ID -> currency -> price.
type SimplePrices map[string]map[string]float64

// Price returns the quoted price for one asset in one currency.
func (p SimplePrices) Price(id, currency string) (float64, bool) {
	quotes, ok := p[id]
	if !ok {
		return 0, false
	}
	v, ok := quotes[currency]
	return v, ok
}
