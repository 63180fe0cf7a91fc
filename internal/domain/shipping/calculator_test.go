package shipping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xborder/finance-engine/internal/domain/rates"
)

func testVersion() rates.VersionRef {
	return rates.VersionRef{
		RateVersion:   "v-test",
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func standardTable() *rates.RateTable {
	return &rates.RateTable{
		ID:                  "tbl-standard",
		Platform:            "shopee",
		Carrier:             "SLS",
		Service:             "standard",
		VolumetricDivisor:   d("5000"),
		MinCharge:           d("8"),
		MaxWeightKg:         d("30"),
		MaxDimensionCm:      d("100"),
		OversizeThresholdCm: d("60"),
		DeliveryDaysMin:     5,
		DeliveryDaysMax:     9,
		Tiers: []rates.Tier{
			{WeightFloorKg: d("0"), WeightStepKg: d("0.1"), BaseRate: d("6"), WeightRate: d("11")},
			{WeightFloorKg: d("1"), WeightStepKg: d("0.5"), BaseRate: d("17"), WeightRate: d("5.5")},
			{WeightFloorKg: d("5"), WeightStepKg: d("0.5"), BaseRate: d("39"), WeightRate: d("4.5")},
		},
		Surcharges: []rates.SurchargeRule{
			{Kind: rates.SurchargeBattery, FlatAmount: d("5")},
			{Kind: rates.SurchargeFragile, Percent: d("0.05")},
			{Kind: rates.SurchargeLiquid, FlatAmount: d("8")},
			{Kind: rates.SurchargeInsurance, Percent: d("0.02")},
			{Kind: rates.SurchargeOversize, FlatAmount: d("12")},
		},
	}
}

func baseRequest() Request {
	return Request{
		Platform:    "shopee",
		ServiceType: "standard",
		WeightG:     d("1200"),
		LengthCm:    d("30"),
		WidthCm:     d("20"),
		HeightCm:    d("15"),
	}
}

func TestCalculateStandardScenario(t *testing.T) {
	res, err := Calculate(baseRequest(), standardTable(), testVersion())
	require.NoError(t, err)

	assert.False(t, res.Rejected)
	assert.Equal(t, ScenarioStandard, res.Scenario)
	assert.True(t, d("1.2").Equal(res.ActualWeightKg))
	assert.True(t, d("1.8").Equal(res.VolumeWeightKg))
	assert.True(t, d("1.8").Equal(res.ChargeableWeightKg))
	assert.True(t, d("0.5").Equal(res.WeightStepKg))
	assert.True(t, d("2.0").Equal(res.RoundedWeightKg))
	// 17 + 5.5 * (2.0 - 1.0)
	assert.True(t, d("22.5").Equal(res.TotalCost), "got %s", res.TotalCost)
	assert.False(t, res.MinChargeApplied)
	assert.Empty(t, res.Surcharges)
	assert.Equal(t, "v-test", res.RateVersion)
	assert.Equal(t, "tbl-standard", res.RateID)
	assert.Equal(t, 5, res.DeliveryDaysMin)
	assert.Equal(t, 9, res.DeliveryDaysMax)
}

func TestCalculateRoundingCrossesTierBoundary(t *testing.T) {
	// Chargeable 0.95kg lands in the first tier (step 0.1) and rounds to
	// 1.0kg, which bills in the second tier.
	req := baseRequest()
	req.WeightG = d("950")
	req.LengthCm, req.WidthCm, req.HeightCm = d("10"), d("10"), d("10")

	res, err := Calculate(req, standardTable(), testVersion())
	require.NoError(t, err)

	assert.True(t, d("1.0").Equal(res.RoundedWeightKg))
	assert.True(t, d("17").Equal(res.BaseRate), "billed tier should be the 1kg tier")
	// 17 + 5.5 * (1.0 - 1.0)
	assert.True(t, d("17").Equal(res.TotalCost), "got %s", res.TotalCost)
}

func TestCalculateMinChargeFloor(t *testing.T) {
	req := baseRequest()
	req.WeightG = d("50")
	req.LengthCm, req.WidthCm, req.HeightCm = d("5"), d("5"), d("5")

	res, err := Calculate(req, standardTable(), testVersion())
	require.NoError(t, err)

	// 6 + 11*0.1 = 7.1, below the 8 minimum
	assert.True(t, d("8").Equal(res.TotalCost), "got %s", res.TotalCost)
	assert.True(t, res.MinChargeApplied)
	assert.Equal(t, ScenarioMinCharge, res.Scenario)
}

func TestCalculateSurcharges(t *testing.T) {
	cover := d("500")
	req := baseRequest()
	req.Battery = true
	req.Fragile = true
	req.Insurance = true
	req.InsuranceValue = &cover
	req.DeclaredValue = d("200")

	res, err := Calculate(req, standardTable(), testVersion())
	require.NoError(t, err)

	// subtotal 22.5; battery 5, fragile 22.5*0.05=1.125, insurance 200*0.02=4
	require.Len(t, res.Surcharges, 3)
	assert.True(t, d("5").Equal(res.Surcharges["battery"]))
	assert.True(t, d("1.125").Equal(res.Surcharges["fragile"]))
	assert.True(t, d("4").Equal(res.Surcharges["insurance"]))
	require.NotNil(t, res.InsuranceBasis)
	assert.True(t, d("200").Equal(*res.InsuranceBasis))
	assert.True(t, d("32.625").Equal(res.TotalCost), "got %s", res.TotalCost)
	assert.Equal(t, ScenarioStandard, res.Scenario)
}

func TestCalculateInsuranceTracksDeclaredValue(t *testing.T) {
	cover := d("100")
	makeReq := func(declared string) Request {
		req := baseRequest()
		req.Insurance = true
		req.InsuranceValue = &cover
		req.DeclaredValue = d(declared)
		return req
	}

	low, err := Calculate(makeReq("100"), standardTable(), testVersion())
	require.NoError(t, err)
	high, err := Calculate(makeReq("10000"), standardTable(), testVersion())
	require.NoError(t, err)

	// 100*0.02=2 vs 10000*0.02=200; the declared value is the percentage basis
	assert.True(t, d("2").Equal(low.Surcharges["insurance"]))
	assert.True(t, d("200").Equal(high.Surcharges["insurance"]))
	assert.True(t, high.TotalCost.GreaterThan(low.TotalCost))

	// the requested cover alone never changes the price
	otherCover := d("9999")
	req := makeReq("100")
	req.InsuranceValue = &otherCover
	same, err := Calculate(req, standardTable(), testVersion())
	require.NoError(t, err)
	assert.True(t, low.TotalCost.Equal(same.TotalCost))
}

func TestCalculateOversize(t *testing.T) {
	req := baseRequest()
	req.LengthCm = d("70") // above the 60cm threshold, under the 100cm limit

	res, err := Calculate(req, standardTable(), testVersion())
	require.NoError(t, err)

	assert.False(t, res.Rejected)
	assert.True(t, res.OversizeApplied)
	assert.Equal(t, ScenarioOversize, res.Scenario)
	assert.True(t, d("12").Equal(res.Surcharges["oversize"]))
}

func TestCalculateRejections(t *testing.T) {
	t.Run("weight exceeded", func(t *testing.T) {
		req := baseRequest()
		req.WeightG = d("31000")

		res, err := Calculate(req, standardTable(), testVersion())
		require.NoError(t, err)
		assert.True(t, res.Rejected)
		assert.Equal(t, ReasonWeightExceeded, res.RejectionReason)
		assert.Equal(t, ScenarioRejected, res.Scenario)
		assert.True(t, res.TotalCost.IsZero())
	})

	t.Run("dimension exceeded", func(t *testing.T) {
		req := baseRequest()
		req.HeightCm = d("120")

		res, err := Calculate(req, standardTable(), testVersion())
		require.NoError(t, err)
		assert.True(t, res.Rejected)
		assert.Equal(t, ReasonDimensionExceeded, res.RejectionReason)
	})
}

func TestCalculateDeterministic(t *testing.T) {
	req := baseRequest()
	req.Fragile = true

	first, err := Calculate(req, standardTable(), testVersion())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Calculate(req, standardTable(), testVersion())
		require.NoError(t, err)
		assert.True(t, first.TotalCost.Equal(again.TotalCost))
		assert.Equal(t, first.Scenario, again.Scenario)
	}
}

func TestCalculateCostMonotonicInWeight(t *testing.T) {
	table := standardTable()
	prev := decimal.Zero
	for _, grams := range []string{"100", "500", "1200", "3000", "6000", "12000", "25000"} {
		req := baseRequest()
		req.WeightG = d(grams)
		req.LengthCm, req.WidthCm, req.HeightCm = d("10"), d("10"), d("10")

		res, err := Calculate(req, table, testVersion())
		require.NoError(t, err)
		require.False(t, res.Rejected)
		assert.True(t, res.TotalCost.GreaterThanOrEqual(prev),
			"cost decreased at %sg: %s < %s", grams, res.TotalCost, prev)
		prev = res.TotalCost
	}
}

func TestRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := baseRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("missing platform", func(t *testing.T) {
		req := baseRequest()
		req.Platform = ""
		assert.Error(t, req.Validate())
	})

	t.Run("insurance without value", func(t *testing.T) {
		req := baseRequest()
		req.Insurance = true
		assert.Error(t, req.Validate())
	})

	t.Run("insurance with non-positive value", func(t *testing.T) {
		req := baseRequest()
		req.Insurance = true
		zero := decimal.Zero
		req.InsuranceValue = &zero
		assert.Error(t, req.Validate())
	})
}
