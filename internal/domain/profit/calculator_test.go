package profit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xborder/finance-engine/internal/domain/shipping"
)

func testCalculator() Calculator {
	return Calculator{
		Fees:       testSchedule(),
		Thresholds: DefaultThresholds(),
		Targets:    DefaultTargets(),
	}
}

func profitRequest() Request {
	return Request{
		SKU:          "SKU-1",
		Platform:     "shopee",
		Cost:         d("40"),
		SellingPrice: d("100"),
		WeightG:      d("1200"),
		LengthCm:     d("30"),
		WidthCm:      d("20"),
		HeightCm:     d("15"),
	}
}

func quoteWithCost(cost string) ShippingQuote {
	c := d(cost)
	return ShippingQuote{
		SelectedService: "standard",
		SelectedCost:    &c,
	}
}

func TestCalculateProfitIdentity(t *testing.T) {
	res := testCalculator().Calculate(profitRequest(), quoteWithCost("22.5"))

	// 100 - 40 - 8 - 22.5 = 29.5
	assert.True(t, d("8").Equal(res.PlatformFee), "fee got %s", res.PlatformFee)
	require.NotNil(t, res.ProfitAmount)
	assert.True(t, d("29.5").Equal(*res.ProfitAmount), "got %s", res.ProfitAmount)
	require.NotNil(t, res.ProfitRate)
	assert.True(t, d("0.295").Equal(*res.ProfitRate), "got %s", res.ProfitRate)
	assert.Equal(t, MarginStrong, res.Scenario)
	assert.Empty(t, res.Warnings)

	// identity: selling price = cost + fee + shipping + profit
	sum := res.Cost.Add(res.PlatformFee).Add(*res.SelectedShippingCost).Add(*res.ProfitAmount)
	assert.True(t, res.SellingPrice.Equal(sum))
}

func TestCalculateMarginAnalysisBreakdown(t *testing.T) {
	res := testCalculator().Calculate(profitRequest(), quoteWithCost("22.5"))

	require.NotNil(t, res.MarginAnalysis)
	require.Len(t, res.MarginAnalysis.CostBreakdown, 3)

	byName := map[string]CostComponent{}
	for _, line := range res.MarginAnalysis.CostBreakdown {
		byName[line.Name] = line
	}
	require.NotNil(t, byName["cost"].ShareOfPrice)
	assert.True(t, d("0.4").Equal(*byName["cost"].ShareOfPrice))
	assert.True(t, d("0.08").Equal(*byName["platform_fee"].ShareOfPrice))
	assert.True(t, d("0.225").Equal(*byName["shipping"].ShareOfPrice))
	assert.Equal(t, MarginStrong, res.MarginAnalysis.MarginLevel)
}

func TestCalculateNegativeMargin(t *testing.T) {
	req := profitRequest()
	req.SellingPrice = d("50")

	res := testCalculator().Calculate(req, quoteWithCost("22.5"))

	require.NotNil(t, res.ProfitAmount)
	assert.True(t, res.ProfitAmount.IsNegative())
	assert.Equal(t, MarginLoss, res.Scenario)
	assert.Contains(t, res.Warnings, WarnNegativeMargin)
}

func TestCalculateUnshippable(t *testing.T) {
	res := testCalculator().Calculate(profitRequest(), ShippingQuote{})

	assert.Equal(t, "unshippable", res.Scenario)
	assert.Contains(t, res.Warnings, WarnUnshippable)
	assert.Nil(t, res.ProfitAmount, "no profit figure without a shipping cost")
	assert.Nil(t, res.SelectedShippingCost)
}

func TestCalculateZeroSellingPrice(t *testing.T) {
	req := profitRequest()
	req.SellingPrice = decimal.Zero

	res := testCalculator().Calculate(req, quoteWithCost("22.5"))

	assert.Contains(t, res.Warnings, WarnZeroSellingPrice)
	assert.Nil(t, res.ProfitRate)
	require.NotNil(t, res.ProfitAmount)
	assert.True(t, res.ProfitAmount.IsNegative())
	assert.Equal(t, MarginUnknown, res.Scenario)
}

func TestCalculateCategoryFeeFallbackWarning(t *testing.T) {
	req := profitRequest()
	req.CategoryCode = "toys" // no shopee/toys category rate configured

	res := testCalculator().Calculate(req, quoteWithCost("22.5"))

	assert.Contains(t, res.Warnings, WarnCategoryFeeFallback)
	assert.True(t, d("0.08").Equal(res.PlatformFeeRate), "fell back to platform rate")
}

func TestCalculateCategoryRateNoWarning(t *testing.T) {
	req := profitRequest()
	req.CategoryCode = "electronics"

	res := testCalculator().Calculate(req, quoteWithCost("22.5"))

	assert.NotContains(t, res.Warnings, WarnCategoryFeeFallback)
	assert.True(t, d("0.05").Equal(res.PlatformFeeRate))
}

func TestCalculateCarriesShippingOptions(t *testing.T) {
	cost := d("22.5")
	quote := ShippingQuote{
		Options: map[string]shipping.Result{
			"standard": {ServiceType: "standard", TotalCost: cost},
			"express":  {ServiceType: "express", TotalCost: d("39")},
		},
		Recommended:     "standard",
		SelectedService: "standard",
		SelectedCost:    &cost,
	}

	res := testCalculator().Calculate(profitRequest(), quote)

	assert.Len(t, res.ShippingOptions, 2)
	assert.Equal(t, "standard", res.RecommendedShipping)
	assert.NotEmpty(t, res.Suggestions)
}

func TestProfitRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := profitRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("negative cost", func(t *testing.T) {
		req := profitRequest()
		req.Cost = d("-1")
		assert.Error(t, req.Validate())
	})

	t.Run("fee rate out of range", func(t *testing.T) {
		req := profitRequest()
		bad := d("1")
		req.PlatformFeeRate = &bad
		assert.Error(t, req.Validate())
	})
}
