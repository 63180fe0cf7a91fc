package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeProfitTarget(t *testing.T) {
	target := d("35")
	req := Request{Cost: d("40"), SellingPrice: d("100")}

	suggestions := Optimize(req, d("0.08"), d("22.5"), req.SellingPrice,
		[]Target{{Name: "target", ProfitAmount: &target}})
	require.Len(t, suggestions, 1)

	// (35 + 40 + 22.5) / 0.92 = 105.978..., rounded up to 105.98
	s := suggestions[0]
	assert.True(t, d("105.98").Equal(s.SuggestedPrice), "got %s", s.SuggestedPrice)
	assert.True(t, d("5.98").Equal(s.PriceAdjustment), "got %s", s.PriceAdjustment)
	// Rounding up means the expected profit meets or slightly exceeds the target
	assert.True(t, s.ExpectedProfit.GreaterThanOrEqual(target), "got %s", s.ExpectedProfit)
}

func TestOptimizeMarginTarget(t *testing.T) {
	margin := d("0.25")
	req := Request{Cost: d("40"), SellingPrice: d("100")}

	suggestions := Optimize(req, d("0.08"), d("22.5"), req.SellingPrice,
		[]Target{{Name: "strong", MarginRate: &margin}})
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	// (40 + 22.5) / (1 - 0.08 - 0.25) = 93.283..., rounded up to 93.29
	assert.True(t, d("93.29").Equal(s.SuggestedPrice), "got %s", s.SuggestedPrice)
	require.NotNil(t, s.ExpectedProfitRate)
	assert.True(t, s.ExpectedProfitRate.GreaterThanOrEqual(margin), "got %s", s.ExpectedProfitRate)
}

func TestOptimizeSkipsUnreachableTargets(t *testing.T) {
	margin := d("0.95")
	req := Request{Cost: d("40")}

	suggestions := Optimize(req, d("0.08"), d("22.5"), d("100"),
		[]Target{{Name: "impossible", MarginRate: &margin}})
	assert.Empty(t, suggestions)
}

func TestOptimizeFeeRateAtOneProducesNothing(t *testing.T) {
	suggestions := Optimize(Request{Cost: d("40")}, d("1"), d("22.5"), d("100"), DefaultTargets())
	assert.Nil(t, suggestions)
}

func TestOptimizeDefaultTargets(t *testing.T) {
	req := Request{Cost: d("40"), SellingPrice: d("100")}
	suggestions := Optimize(req, d("0.08"), d("22.5"), req.SellingPrice, DefaultTargets())

	require.Len(t, suggestions, 3)
	// Higher targets need higher prices
	assert.True(t, suggestions[0].SuggestedPrice.LessThan(suggestions[1].SuggestedPrice))
	assert.True(t, suggestions[1].SuggestedPrice.LessThan(suggestions[2].SuggestedPrice))
}
