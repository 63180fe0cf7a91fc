// Package models contains GORM-specific persistence models that map to
// database tables. Domain types stay free of ORM concerns; the rate source
// converts between the two.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateTableModel is one (platform, carrier service) rate card row
type RateTableModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	Platform            string          `gorm:"size:64;not null;uniqueIndex:idx_rate_platform_service,priority:1"`
	Carrier             string          `gorm:"size:128;not null"`
	Service             string          `gorm:"size:64;not null;uniqueIndex:idx_rate_platform_service,priority:2"`
	IsDefault           bool            `gorm:"not null;default:false"`
	VolumetricDivisor   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MinCharge           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaxWeightKg         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaxDimensionCm      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OversizeThresholdCm decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DeliveryDaysMin     int             `gorm:"not null;default:0"`
	DeliveryDaysMax     int             `gorm:"not null;default:0"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`

	Tiers      []RateTierModel      `gorm:"foreignKey:RateTableID"`
	Surcharges []RateSurchargeModel `gorm:"foreignKey:RateTableID"`
}

// TableName overrides the default table name
func (RateTableModel) TableName() string {
	return "rate_tables"
}

// RateTierModel is one weight band of a rate table
type RateTierModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	RateTableID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	WeightFloorKg decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WeightStepKg  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BaseRate      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WeightRate    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName overrides the default table name
func (RateTierModel) TableName() string {
	return "rate_tiers"
}

// RateSurchargeModel is one surcharge rule of a rate table
type RateSurchargeModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	RateTableID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"size:32;not null"`
	FlatAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Percent     decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
}

// TableName overrides the default table name
func (RateSurchargeModel) TableName() string {
	return "rate_surcharges"
}
