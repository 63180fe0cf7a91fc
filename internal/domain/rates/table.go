package rates

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SurchargeKind identifies a surcharge rule variant
type SurchargeKind string

// Supported surcharge kinds
const (
	SurchargeBattery   SurchargeKind = "battery"
	SurchargeFragile   SurchargeKind = "fragile"
	SurchargeLiquid    SurchargeKind = "liquid"
	SurchargeInsurance SurchargeKind = "insurance"
	SurchargeOversize  SurchargeKind = "oversize"
)

// SurchargeRule is a single surcharge entry of a rate table.
// Flat kinds (battery, liquid, oversize) carry FlatAmount; percentage kinds
// (fragile, insurance) carry Percent as a fraction of their basis.
type SurchargeRule struct {
	Kind       SurchargeKind
	FlatAmount decimal.Decimal
	Percent    decimal.Decimal
}

// Amount computes the surcharge amount. The basis depends on the kind:
// fragile applies Percent to the cost subtotal, insurance applies Percent to
// the package's declared value, all other kinds are flat fees.
func (r SurchargeRule) Amount(subtotal, declaredValue decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case SurchargeFragile:
		return subtotal.Mul(r.Percent)
	case SurchargeInsurance:
		return declaredValue.Mul(r.Percent)
	default:
		return r.FlatAmount
	}
}

// Tier is a weight-range-scoped pricing rule within a rate table.
// A tier covers [WeightFloorKg, next tier's floor).
type Tier struct {
	WeightFloorKg decimal.Decimal
	WeightStepKg  decimal.Decimal
	BaseRate      decimal.Decimal
	WeightRate    decimal.Decimal
}

// RateTable holds the pricing rules for one (platform, carrier service) pair.
// Tables are immutable once published as part of a snapshot.
type RateTable struct {
	ID                  string
	Platform            string
	Carrier             string
	Service             string
	Default             bool
	VolumetricDivisor   decimal.Decimal // cm^3 per kg
	MinCharge           decimal.Decimal
	MaxWeightKg         decimal.Decimal
	MaxDimensionCm      decimal.Decimal
	OversizeThresholdCm decimal.Decimal
	DeliveryDaysMin     int
	DeliveryDaysMax     int
	Tiers               []Tier
	Surcharges          []SurchargeRule
}

// sortTiers orders tiers by weight floor ascending for range lookup
func (t *RateTable) sortTiers() {
	sort.Slice(t.Tiers, func(i, j int) bool {
		return t.Tiers[i].WeightFloorKg.LessThan(t.Tiers[j].WeightFloorKg)
	})
}

// TierFor returns the tier whose weight range contains weightKg, i.e. the
// highest tier with WeightFloorKg <= weightKg. The boolean is false when the
// table has no tier covering the weight.
func (t *RateTable) TierFor(weightKg decimal.Decimal) (Tier, bool) {
	for i := len(t.Tiers) - 1; i >= 0; i-- {
		if weightKg.GreaterThanOrEqual(t.Tiers[i].WeightFloorKg) {
			return t.Tiers[i], true
		}
	}
	return Tier{}, false
}

// SurchargeFor returns the surcharge rule of the given kind, if the table
// defines one.
func (t *RateTable) SurchargeFor(kind SurchargeKind) (SurchargeRule, bool) {
	for _, r := range t.Surcharges {
		if r.Kind == kind {
			return r, true
		}
	}
	return SurchargeRule{}, false
}
