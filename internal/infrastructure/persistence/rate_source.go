package persistence

import (
	"context"
	"fmt"

	"github.com/xborder/finance-engine/internal/domain/rates"
	"github.com/xborder/finance-engine/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRateSource loads rate tables from the rate store. It implements
// rates.Source; the registry calls Load on every reload.
type GormRateSource struct {
	db *gorm.DB
}

// NewGormRateSource creates a rate source backed by the given database
func NewGormRateSource(db *gorm.DB) *GormRateSource {
	return &GormRateSource{db: db}
}

// Load reads every rate table with its tiers and surcharges inside one
// transaction, so a reload sees a consistent view of the store.
func (s *GormRateSource) Load(ctx context.Context) ([]rates.RateTable, error) {
	var rows []models.RateTableModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("Tiers").
			Preload("Surcharges").
			Order("platform, service").
			Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load rate tables: %w", err)
	}

	tables := make([]rates.RateTable, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, toDomainRateTable(row))
	}
	return tables, nil
}

// toDomainRateTable converts a persistence row into the immutable domain shape
func toDomainRateTable(row models.RateTableModel) rates.RateTable {
	table := rates.RateTable{
		ID:                  row.ID.String(),
		Platform:            row.Platform,
		Carrier:             row.Carrier,
		Service:             row.Service,
		Default:             row.IsDefault,
		VolumetricDivisor:   row.VolumetricDivisor,
		MinCharge:           row.MinCharge,
		MaxWeightKg:         row.MaxWeightKg,
		MaxDimensionCm:      row.MaxDimensionCm,
		OversizeThresholdCm: row.OversizeThresholdCm,
		DeliveryDaysMin:     row.DeliveryDaysMin,
		DeliveryDaysMax:     row.DeliveryDaysMax,
	}
	for _, tier := range row.Tiers {
		table.Tiers = append(table.Tiers, rates.Tier{
			WeightFloorKg: tier.WeightFloorKg,
			WeightStepKg:  tier.WeightStepKg,
			BaseRate:      tier.BaseRate,
			WeightRate:    tier.WeightRate,
		})
	}
	for _, surcharge := range row.Surcharges {
		table.Surcharges = append(table.Surcharges, rates.SurchargeRule{
			Kind:       rates.SurchargeKind(surcharge.Kind),
			FlatAmount: surcharge.FlatAmount,
			Percent:    surcharge.Percent,
		})
	}
	return table
}
