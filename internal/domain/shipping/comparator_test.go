package shipping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xborder/finance-engine/internal/domain/rates"
)

func comparisonSnapshot() *rates.Snapshot {
	standard := *standardTable()
	express := rates.RateTable{
		ID:                "tbl-express",
		Platform:          "shopee",
		Carrier:           "SLS",
		Service:           "express",
		VolumetricDivisor: d("5000"),
		MinCharge:         d("15"),
		MaxWeightKg:       d("20"),
		MaxDimensionCm:    d("80"),
		DeliveryDaysMin:   2,
		DeliveryDaysMax:   4,
		Tiers: []rates.Tier{
			{WeightFloorKg: d("0"), WeightStepKg: d("0.5"), BaseRate: d("30"), WeightRate: d("9")},
		},
	}
	return rates.NewSnapshot("v-cmp", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		[]rates.RateTable{standard, express})
}

func TestCompareRecommendsCheapest(t *testing.T) {
	cmp, err := Compare(baseRequest(), comparisonSnapshot(), nil)
	require.NoError(t, err)

	require.Len(t, cmp.Results, 2)
	assert.Equal(t, "standard", cmp.Recommended)

	byService := map[string]Result{}
	for _, res := range cmp.Results {
		byService[res.ServiceType] = res
	}
	assert.Contains(t, byService["standard"].Tags, TagCheapest)
	assert.Contains(t, byService["express"].Tags, TagFastest)
	assert.NotContains(t, byService["express"].Tags, TagCheapest)
}

func TestCompareExplicitServiceList(t *testing.T) {
	cmp, err := Compare(baseRequest(), comparisonSnapshot(), []string{"express"})
	require.NoError(t, err)

	require.Len(t, cmp.Results, 1)
	assert.Equal(t, "express", cmp.Recommended)
}

func TestCompareRetainsRejectedOptions(t *testing.T) {
	req := baseRequest()
	req.HeightCm = d("90") // over express's 80cm limit, under standard's 100cm

	cmp, err := Compare(req, comparisonSnapshot(), nil)
	require.NoError(t, err)

	require.Len(t, cmp.Results, 2)
	assert.Equal(t, "standard", cmp.Recommended)
	for _, res := range cmp.Results {
		if res.ServiceType == "express" {
			assert.True(t, res.Rejected)
			assert.Equal(t, ReasonDimensionExceeded, res.RejectionReason)
		}
	}
}

func TestCompareAllRejected(t *testing.T) {
	req := baseRequest()
	req.WeightG = d("50000")

	cmp, err := Compare(req, comparisonSnapshot(), nil)
	require.NoError(t, err)

	assert.Empty(t, cmp.Recommended)
	for _, res := range cmp.Results {
		assert.True(t, res.Rejected)
	}
}

func TestCompareUnknownServiceKeptAsUnavailable(t *testing.T) {
	cmp, err := Compare(baseRequest(), comparisonSnapshot(), []string{"standard", "teleport"})
	require.NoError(t, err)

	require.Len(t, cmp.Results, 2)
	assert.Equal(t, "standard", cmp.Recommended)
	for _, res := range cmp.Results {
		if res.ServiceType == "teleport" {
			assert.True(t, res.Rejected)
			assert.Equal(t, ReasonRateNotFound, res.RejectionReason)
			assert.Equal(t, ScenarioUnavailable, res.Scenario)
		}
	}
}

func TestCompareUnknownPlatform(t *testing.T) {
	req := baseRequest()
	req.Platform = "nosuch"

	_, err := Compare(req, comparisonSnapshot(), nil)
	assert.Error(t, err)
}

func TestCompareTieBrokenByDeliveryDays(t *testing.T) {
	slow := *standardTable()
	fast := *standardTable()
	fast.ID = "tbl-fast"
	fast.Service = "fast"
	fast.DeliveryDaysMin, fast.DeliveryDaysMax = 2, 3

	snap := rates.NewSnapshot("v-tie", time.Now().UTC(), []rates.RateTable{slow, fast})
	cmp, err := Compare(baseRequest(), snap, nil)
	require.NoError(t, err)

	// Identical pricing; the faster service wins the tie.
	assert.Equal(t, "fast", cmp.Recommended)
}
