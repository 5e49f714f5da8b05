package tiebreak

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanem9/crypto-settle/internal/api"
	"github.com/shanem9/crypto-settle/internal/model"
	"github.com/shanem9/crypto-settle/internal/roster"
)

type fakeRangeFetcher struct {
	chart   *api.ChartResponse
	err     error
	gotID   string
	gotFrom time.Time
	gotTo   time.Time
	gotCurr string
}

func (f *fakeRangeFetcher) GetMarketChartRange(ctx context.Context, coinID, currency string, from, to time.Time) (*api.ChartResponse, error) {
	f.gotID, f.gotCurr, f.gotFrom, f.gotTo = coinID, currency, from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.chart, nil
}

func testCatalog(t *testing.T) *roster.Catalog {
	t.Helper()
	cat, err := roster.ReadCatalog(strings.NewReader("id,symbol,name\nbitcoin,btc,Bitcoin\nethereum,eth,Ethereum\n"))
	require.NoError(t, err)
	return cat
}

func tiedGroup(t *testing.T, date string) []model.Result {
	t.Helper()
	d, err := model.ParseDate(date)
	require.NoError(t, err)
	return []model.Result{
		{Participant: model.Participant{Name: "A", Symbol: "btc", SignupDate: d}, PercentChange: 20},
		{Participant: model.Participant{Name: "B", Symbol: "btc", SignupDate: d}, PercentChange: 20},
	}
}

func TestResolve(t *testing.T) {
	t.Run("fetches the signup day and maps samples", func(t *testing.T) {
		ts := time.Date(2025, 7, 14, 9, 31, 0, 0, time.UTC)
		fetcher := &fakeRangeFetcher{chart: &api.ChartResponse{
			Prices: [][]float64{{float64(ts.UnixMilli()), 100.25}},
		}}

		r := New(fetcher, "usd", nil)
		samples, err := r.Resolve(context.Background(), tiedGroup(t, "14-Jul-2025"), testCatalog(t))
		require.NoError(t, err)

		assert.Equal(t, "bitcoin", fetcher.gotID)
		assert.Equal(t, "usd", fetcher.gotCurr)
		assert.Equal(t, time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), fetcher.gotFrom)
		assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), fetcher.gotTo)

		require.Len(t, samples, 1)
		assert.Equal(t, "btc", samples[0].Symbol)
		assert.Equal(t, "14-Jul-2025", model.DateKey(samples[0].SignupDate))
		assert.True(t, samples[0].Timestamp.Equal(ts))
		assert.Equal(t, 100.25, samples[0].Price)
	})

	t.Run("inconsistent group surfaced", func(t *testing.T) {
		d14, _ := model.ParseDate("14-Jul-2025")
		d15, _ := model.ParseDate("15-Jul-2025")
		group := []model.Result{
			{Participant: model.Participant{Name: "A", Symbol: "btc", SignupDate: d14}},
			{Participant: model.Participant{Name: "B", Symbol: "eth", SignupDate: d15}},
		}

		r := New(&fakeRangeFetcher{}, "usd", nil)
		_, err := r.Resolve(context.Background(), group, testCatalog(t))
		assert.ErrorIs(t, err, ErrInconsistentTie)
	})

	t.Run("same symbol different dates also inconsistent", func(t *testing.T) {
		d14, _ := model.ParseDate("14-Jul-2025")
		d15, _ := model.ParseDate("15-Jul-2025")
		group := []model.Result{
			{Participant: model.Participant{Name: "A", Symbol: "btc", SignupDate: d14}},
			{Participant: model.Participant{Name: "B", Symbol: "btc", SignupDate: d15}},
		}

		r := New(&fakeRangeFetcher{}, "usd", nil)
		_, err := r.Resolve(context.Background(), group, testCatalog(t))
		assert.ErrorIs(t, err, ErrInconsistentTie)
	})

	t.Run("fetch failure degrades to no data", func(t *testing.T) {
		fetcher := &fakeRangeFetcher{err: errors.New("http 503")}
		r := New(fetcher, "usd", nil)
		_, err := r.Resolve(context.Background(), tiedGroup(t, "14-Jul-2025"), testCatalog(t))
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("empty response is no data", func(t *testing.T) {
		fetcher := &fakeRangeFetcher{chart: &api.ChartResponse{}}
		r := New(fetcher, "usd", nil)
		_, err := r.Resolve(context.Background(), tiedGroup(t, "14-Jul-2025"), testCatalog(t))
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("symbol missing from catalog is no data", func(t *testing.T) {
		d14, _ := model.ParseDate("14-Jul-2025")
		group := []model.Result{
			{Participant: model.Participant{Name: "A", Symbol: "xyz", SignupDate: d14}},
			{Participant: model.Participant{Name: "B", Symbol: "xyz", SignupDate: d14}},
		}

		r := New(&fakeRangeFetcher{}, "usd", nil)
		_, err := r.Resolve(context.Background(), group, testCatalog(t))
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("single entry is not a tie", func(t *testing.T) {
		r := New(&fakeRangeFetcher{}, "usd", nil)
		_, err := r.Resolve(context.Background(), tiedGroup(t, "14-Jul-2025")[:1], testCatalog(t))
		assert.Error(t, err)
	})
}
