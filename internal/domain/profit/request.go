package profit

import (
	"github.com/shopspring/decimal"
	"github.com/xborder/finance-engine/internal/domain/shared"
)

// Request carries the inputs for one profit calculation
type Request struct {
	SKU              string
	Platform         string
	Cost             decimal.Decimal
	SellingPrice     decimal.Decimal
	WeightG          decimal.Decimal
	LengthCm         decimal.Decimal
	WidthCm          decimal.Decimal
	HeightCm         decimal.Decimal
	FulfillmentModel string
	CategoryCode     string
	PlatformFeeRate  *decimal.Decimal
	CompareShipping  bool
	PreferredService string
}

// Validate checks the request invariants before any calculation
func (r *Request) Validate() error {
	if r.Platform == "" {
		return shared.NewValidationError("platform", "is required")
	}
	if r.Cost.IsNegative() {
		return shared.NewValidationError("cost", "must not be negative")
	}
	if r.SellingPrice.IsNegative() {
		return shared.NewValidationError("selling_price", "must not be negative")
	}
	if !r.WeightG.IsPositive() {
		return shared.NewValidationError("weight_g", "must be greater than zero")
	}
	if !r.LengthCm.IsPositive() || !r.WidthCm.IsPositive() || !r.HeightCm.IsPositive() {
		return shared.NewValidationError("dimensions", "must be greater than zero")
	}
	if r.PlatformFeeRate != nil {
		rate := *r.PlatformFeeRate
		if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return shared.NewValidationError("platform_fee_rate", "must be in [0, 1)")
		}
	}
	return nil
}
