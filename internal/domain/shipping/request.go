package shipping

import (
	"github.com/shopspring/decimal"
	"github.com/xborder/finance-engine/internal/domain/shared"
)

// Request carries the package and option inputs for one shipping calculation.
// DeclaredValue is the customs-declared package value and the basis of the
// insurance percentage; InsuranceValue is the cover the seller requests and
// gates the insurance surcharge. SellingPrice is carried through for profit
// flows that reuse this shape and has no effect on the shipping cost.
type Request struct {
	Platform       string
	ServiceType    string
	WeightG        decimal.Decimal
	LengthCm       decimal.Decimal
	WidthCm        decimal.Decimal
	HeightCm       decimal.Decimal
	DeclaredValue  decimal.Decimal
	SellingPrice   decimal.Decimal
	Battery        bool
	Fragile        bool
	Liquid         bool
	Insurance      bool
	InsuranceValue *decimal.Decimal
}

// Validate checks the request invariants. Malformed input is rejected here,
// before any rate lookup.
func (r *Request) Validate() error {
	if r.Platform == "" {
		return shared.NewValidationError("platform", "is required")
	}
	if !r.WeightG.IsPositive() {
		return shared.NewValidationError("weight_g", "must be greater than zero")
	}
	for _, dim := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"length_cm", r.LengthCm},
		{"width_cm", r.WidthCm},
		{"height_cm", r.HeightCm},
	} {
		if !dim.value.IsPositive() {
			return shared.NewValidationError(dim.name, "must be greater than zero")
		}
	}
	if r.DeclaredValue.IsNegative() {
		return shared.NewValidationError("declared_value", "must not be negative")
	}
	if r.Insurance {
		if r.InsuranceValue == nil {
			return shared.NewValidationError("insurance_value", "is required when insurance is requested")
		}
		if !r.InsuranceValue.IsPositive() {
			return shared.NewValidationError("insurance_value", "must be greater than zero")
		}
	}
	return nil
}

// MaxDimensionCm returns the largest of the three package dimensions
func (r *Request) MaxDimensionCm() decimal.Decimal {
	max := r.LengthCm
	if r.WidthCm.GreaterThan(max) {
		max = r.WidthCm
	}
	if r.HeightCm.GreaterThan(max) {
		max = r.HeightCm
	}
	return max
}
