package persistence

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xborder/finance-engine/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// SeedDefaultRates inserts the built-in rate card when the store holds no
// rate tables. It returns the number of tables inserted (zero when the store
// already has data).
func SeedDefaultRates(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.RateTableModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rate tables: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tables := defaultRateCard()
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range tables {
			if err := tx.Create(&tables[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed default rates: %w", err)
	}
	return len(tables), nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultRateCard builds the starter rate tables used by fresh installs:
// a cross-border standard and express service plus a domestic economy one.
func defaultRateCard() []models.RateTableModel {
	standard := models.RateTableModel{
		ID:                  uuid.New(),
		Platform:            "shopee",
		Carrier:             "SLS",
		Service:             "standard",
		IsDefault:           true,
		VolumetricDivisor:   dec("5000"),
		MinCharge:           dec("8"),
		MaxWeightKg:         dec("30"),
		MaxDimensionCm:      dec("100"),
		OversizeThresholdCm: dec("60"),
		DeliveryDaysMin:     5,
		DeliveryDaysMax:     9,
		Tiers: []models.RateTierModel{
			{ID: uuid.New(), WeightFloorKg: dec("0"), WeightStepKg: dec("0.1"), BaseRate: dec("6"), WeightRate: dec("11")},
			{ID: uuid.New(), WeightFloorKg: dec("1"), WeightStepKg: dec("0.5"), BaseRate: dec("17"), WeightRate: dec("5.5")},
			{ID: uuid.New(), WeightFloorKg: dec("5"), WeightStepKg: dec("0.5"), BaseRate: dec("39"), WeightRate: dec("4.5")},
		},
		Surcharges: []models.RateSurchargeModel{
			{ID: uuid.New(), Kind: "battery", FlatAmount: dec("5"), Percent: dec("0")},
			{ID: uuid.New(), Kind: "fragile", FlatAmount: dec("0"), Percent: dec("0.05")},
			{ID: uuid.New(), Kind: "liquid", FlatAmount: dec("8"), Percent: dec("0")},
			{ID: uuid.New(), Kind: "insurance", FlatAmount: dec("0"), Percent: dec("0.02")},
			{ID: uuid.New(), Kind: "oversize", FlatAmount: dec("12"), Percent: dec("0")},
		},
	}

	express := models.RateTableModel{
		ID:                  uuid.New(),
		Platform:            "shopee",
		Carrier:             "SLS",
		Service:             "express",
		VolumetricDivisor:   dec("5000"),
		MinCharge:           dec("15"),
		MaxWeightKg:         dec("20"),
		MaxDimensionCm:      dec("80"),
		OversizeThresholdCm: dec("50"),
		DeliveryDaysMin:     2,
		DeliveryDaysMax:     4,
		Tiers: []models.RateTierModel{
			{ID: uuid.New(), WeightFloorKg: dec("0"), WeightStepKg: dec("0.1"), BaseRate: dec("12"), WeightRate: dec("18")},
			{ID: uuid.New(), WeightFloorKg: dec("1"), WeightStepKg: dec("0.5"), BaseRate: dec("30"), WeightRate: dec("9")},
		},
		Surcharges: []models.RateSurchargeModel{
			{ID: uuid.New(), Kind: "battery", FlatAmount: dec("8"), Percent: dec("0")},
			{ID: uuid.New(), Kind: "fragile", FlatAmount: dec("0"), Percent: dec("0.06")},
			{ID: uuid.New(), Kind: "liquid", FlatAmount: dec("10"), Percent: dec("0")},
			{ID: uuid.New(), Kind: "insurance", FlatAmount: dec("0"), Percent: dec("0.025")},
			{ID: uuid.New(), Kind: "oversize", FlatAmount: dec("20"), Percent: dec("0")},
		},
	}

	economy := models.RateTableModel{
		ID:                  uuid.New(),
		Platform:            "lazada",
		Carrier:             "LEX",
		Service:             "economy",
		IsDefault:           true,
		VolumetricDivisor:   dec("6000"),
		MinCharge:           dec("5"),
		MaxWeightKg:         dec("30"),
		MaxDimensionCm:      dec("120"),
		OversizeThresholdCm: dec("70"),
		DeliveryDaysMin:     7,
		DeliveryDaysMax:     14,
		Tiers: []models.RateTierModel{
			{ID: uuid.New(), WeightFloorKg: dec("0"), WeightStepKg: dec("0.25"), BaseRate: dec("4"), WeightRate: dec("8")},
			{ID: uuid.New(), WeightFloorKg: dec("2"), WeightStepKg: dec("0.5"), BaseRate: dec("18"), WeightRate: dec("4")},
		},
		Surcharges: []models.RateSurchargeModel{
			{ID: uuid.New(), Kind: "battery", FlatAmount: dec("4"), Percent: dec("0")},
			{ID: uuid.New(), Kind: "fragile", FlatAmount: dec("0"), Percent: dec("0.04")},
			{ID: uuid.New(), Kind: "insurance", FlatAmount: dec("0"), Percent: dec("0.015")},
			{ID: uuid.New(), Kind: "oversize", FlatAmount: dec("10"), Percent: dec("0")},
		},
	}

	for _, t := range []*models.RateTableModel{&standard, &express, &economy} {
		for i := range t.Tiers {
			t.Tiers[i].RateTableID = t.ID
		}
		for i := range t.Surcharges {
			t.Surcharges[i].RateTableID = t.ID
		}
	}
	return []models.RateTableModel{standard, express, economy}
}
