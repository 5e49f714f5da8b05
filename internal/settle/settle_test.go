package settle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanem9/crypto-settle/internal/model"
	"github.com/shanem9/crypto-settle/internal/pricestore"
)

func TestComputeEndToEnd(t *testing.T) {
	// Catalog: btc, eth. Three participants; evaluation on 20-Jul-2025.
	store := pricestore.New()
	store.Put("btc", model.Series{"14-Jul-2025": 100, "15-Jul-2025": 90, "20-Jul-2025": 120})
	store.Put("eth", model.Series{"14-Jul-2025": 50, "20-Jul-2025": 55})

	d14, _ := model.ParseDate("14-Jul-2025")
	d15, _ := model.ParseDate("15-Jul-2025")
	eval, _ := model.ParseDate("20-Jul-2025")

	parts := []model.Participant{
		{Name: "A", Symbol: "btc", SignupDate: d14},
		{Name: "B", Symbol: "eth", SignupDate: d14},
		{Name: "C", Symbol: "btc", SignupDate: d15},
	}

	results, exclusions := Compute(parts, store, eval)
	require.Len(t, results, 3)
	require.Empty(t, exclusions)

	Rank(results)

	// C from 90 -> 120 = +33.33%, A +20.00%, B +10.00%.
	assert.Equal(t, "C", results[0].Participant.Name)
	assert.InDelta(t, 100.0*(120.0-90.0)/90.0, results[0].PercentChange, 1e-12)
	assert.Equal(t, "+33.33%", results[0].Formatted)

	assert.Equal(t, "A", results[1].Participant.Name)
	assert.InDelta(t, 20.0, results[1].PercentChange, 1e-12)
	assert.Equal(t, "+20.00%", results[1].Formatted)

	assert.Equal(t, "B", results[2].Participant.Name)
	assert.InDelta(t, 10.0, results[2].PercentChange, 1e-12)
	assert.Equal(t, "+10.00%", results[2].Formatted)

	// Descending: every adjacent pair ordered.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].PercentChange, results[i].PercentChange)
	}

	assert.Len(t, TopTie(results), 1, "no tie in this scenario")
}

func TestComputeMissingData(t *testing.T) {
	store := pricestore.New()
	store.Put("btc", model.Series{"14-Jul-2025": 100, "20-Jul-2025": 120})

	d14, _ := model.ParseDate("14-Jul-2025")
	d15, _ := model.ParseDate("15-Jul-2025")
	eval, _ := model.ParseDate("20-Jul-2025")

	parts := []model.Participant{
		{Name: "A", Symbol: "btc", SignupDate: d14},
		{Name: "NoStart", Symbol: "btc", SignupDate: d15},  // gap at signup date
		{Name: "NoSeries", Symbol: "xyz", SignupDate: d14}, // symbol never fetched
	}

	results, exclusions := Compute(parts, store, eval)
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Participant.Name)

	require.Len(t, exclusions, 2)
	for _, e := range exclusions {
		assert.Equal(t, ReasonMissingData, e.Reason)
	}
	assert.Equal(t, "NoStart", exclusions[0].Participant.Name)
	assert.Equal(t, "NoSeries", exclusions[1].Participant.Name)
}

func TestComputeZeroStartPrice(t *testing.T) {
	store := pricestore.New()
	store.Put("new", model.Series{"14-Jul-2025": 0, "20-Jul-2025": 5})

	d14, _ := model.ParseDate("14-Jul-2025")
	eval, _ := model.ParseDate("20-Jul-2025")

	results, exclusions := Compute([]model.Participant{
		{Name: "Z", Symbol: "new", SignupDate: d14},
	}, store, eval)

	require.Empty(t, exclusions)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].PercentChange, "zero start price is a defined fallback")
	assert.Equal(t, "+0.00%", results[0].Formatted)
}

func TestTopTie(t *testing.T) {
	t.Run("exact tie detected", func(t *testing.T) {
		results := []model.Result{
			{Participant: model.Participant{Name: "A"}, PercentChange: 20.0},
			{Participant: model.Participant{Name: "B"}, PercentChange: 20.0},
			{Participant: model.Participant{Name: "C"}, PercentChange: 19.99},
		}
		Rank(results)

		group := TopTie(results)
		require.Len(t, group, 2)
		assert.Equal(t, "A", group[0].Participant.Name)
		assert.Equal(t, "B", group[1].Participant.Name)
	})

	t.Run("rounded-equal is not a tie", func(t *testing.T) {
		// Both display as "10.00%" but differ at full precision.
		results := []model.Result{
			{Participant: model.Participant{Name: "A"}, PercentChange: 10.004},
			{Participant: model.Participant{Name: "B"}, PercentChange: 10.001},
		}
		Rank(results)

		assert.Equal(t, model.FormatPercent(results[0].PercentChange),
			model.FormatPercent(results[1].PercentChange))
		assert.Len(t, TopTie(results), 1, "near-equal values must not tie")
	})

	t.Run("stable order within tie", func(t *testing.T) {
		results := []model.Result{
			{Participant: model.Participant{Name: "First"}, PercentChange: 5},
			{Participant: model.Participant{Name: "Second"}, PercentChange: 5},
		}
		Rank(results)
		assert.Equal(t, "First", results[0].Participant.Name)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, TopTie(nil))
	})
}
