package shipping

import (
	"github.com/shopspring/decimal"
	"github.com/xborder/finance-engine/internal/domain/shared"
)

var gramsPerKg = decimal.NewFromInt(1000)

// Weights holds the normalized weight figures of a package
type Weights struct {
	ActualKg     decimal.Decimal
	VolumeKg     decimal.Decimal
	ChargeableKg decimal.Decimal
}

// NormalizeWeights computes actual, volumetric and chargeable weight.
// Chargeable weight is the greater of actual weight (weight_g / 1000) and
// volumetric weight (l*w*h / divisor, divisor in cm^3 per kg). Pure function.
func NormalizeWeights(weightG, lengthCm, widthCm, heightCm, divisor decimal.Decimal) (Weights, error) {
	if !weightG.IsPositive() {
		return Weights{}, shared.NewValidationError("weight_g", "must be greater than zero")
	}
	if !lengthCm.IsPositive() || !widthCm.IsPositive() || !heightCm.IsPositive() {
		return Weights{}, shared.NewValidationError("dimensions", "must be greater than zero")
	}
	if !divisor.IsPositive() {
		return Weights{}, shared.NewValidationError("volumetric_divisor", "must be greater than zero")
	}

	actual := weightG.Div(gramsPerKg)
	volume := lengthCm.Mul(widthCm).Mul(heightCm).Div(divisor)

	chargeable := actual
	if volume.GreaterThan(actual) {
		chargeable = volume
	}

	return Weights{
		ActualKg:     actual,
		VolumeKg:     volume,
		ChargeableKg: chargeable,
	}, nil
}

// RoundUpToStep rounds weightKg up to the next multiple of stepKg, the
// carrier's billing granularity. A non-positive step leaves the weight as-is.
func RoundUpToStep(weightKg, stepKg decimal.Decimal) decimal.Decimal {
	if !stepKg.IsPositive() {
		return weightKg
	}
	return weightKg.Div(stepKg).Ceil().Mul(stepKg)
}
