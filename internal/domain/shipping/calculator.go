package shipping

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xborder/finance-engine/internal/domain/rates"
	"github.com/xborder/finance-engine/internal/domain/shared"
)

// Rejection reasons for business rejections. A rejection is a successful
// calculation outcome, not an error: the carrier/service cannot handle the
// package.
const (
	ReasonWeightExceeded    = "WEIGHT_EXCEEDED"
	ReasonDimensionExceeded = "DIMENSION_EXCEEDED"
	ReasonRateNotFound      = "RATE_NOT_FOUND"
)

// Scenario tags explaining which pricing branch produced a result
const (
	ScenarioStandard    = "standard"
	ScenarioOversize    = "oversize"
	ScenarioMinCharge   = "min_charge"
	ScenarioRejected    = "rejected"
	ScenarioUnavailable = "unavailable"
)

// Result is a fully populated shipping cost calculation outcome.
// Rejected is true iff RejectionReason is set; TotalCost is zero and not
// meaningful in that case.
type Result struct {
	RequestID          string                     `json:"request_id"`
	Platform           string                     `json:"platform"`
	CarrierService     string                     `json:"carrier_service"`
	ServiceType        string                     `json:"service_type"`
	ActualWeightKg     decimal.Decimal            `json:"actual_weight_kg"`
	VolumeWeightKg     decimal.Decimal            `json:"volume_weight_kg"`
	ChargeableWeightKg decimal.Decimal            `json:"chargeable_weight_kg"`
	WeightStepKg       decimal.Decimal            `json:"weight_step_kg"`
	RoundedWeightKg    decimal.Decimal            `json:"rounded_weight_kg"`
	BaseRate           decimal.Decimal            `json:"base_rate"`
	WeightRate         decimal.Decimal            `json:"weight_rate"`
	Surcharges         map[string]decimal.Decimal `json:"surcharges,omitempty"`
	InsuranceBasis     *decimal.Decimal           `json:"insurance_basis,omitempty"`
	TotalCost          decimal.Decimal            `json:"total_cost"`
	DeliveryDaysMin    int                        `json:"delivery_days_min"`
	DeliveryDaysMax    int                        `json:"delivery_days_max"`
	MinChargeApplied   bool                       `json:"min_charge_applied"`
	OversizeApplied    bool                       `json:"oversize_applied"`
	Rejected           bool                       `json:"rejected"`
	RejectionReason    string                     `json:"rejection_reason,omitempty"`
	Scenario           string                     `json:"scenario"`
	Tags               []string                   `json:"tags,omitempty"`
	RateID             string                     `json:"rate_id"`
	RateVersion        string                     `json:"rate_version"`
	EffectiveFrom      time.Time                  `json:"effective_from"`
}

// Calculate produces a shipping cost result for one request against one rate
// table, pinned to the given version. It is a pure function: identical inputs
// against the same version yield an identical result.
//
// An error is returned only for data problems (no tier covers the weight);
// carrier limits produce a non-error result with Rejected=true.
func Calculate(req Request, table *rates.RateTable, version rates.VersionRef) (Result, error) {
	res := Result{
		Platform:       table.Platform,
		CarrierService: table.Carrier,
		ServiceType:    table.Service,
		RateID:         table.ID,
		RateVersion:    version.RateVersion,
		EffectiveFrom:  version.EffectiveFrom,
	}

	weights, err := NormalizeWeights(req.WeightG, req.LengthCm, req.WidthCm, req.HeightCm, table.VolumetricDivisor)
	if err != nil {
		return Result{}, err
	}
	res.ActualWeightKg = weights.ActualKg
	res.VolumeWeightKg = weights.VolumeKg
	res.ChargeableWeightKg = weights.ChargeableKg

	tier, ok := table.TierFor(weights.ChargeableKg)
	if !ok {
		return Result{}, shared.ErrRateNotFound
	}
	res.WeightStepKg = tier.WeightStepKg
	res.RoundedWeightKg = RoundUpToStep(weights.ChargeableKg, tier.WeightStepKg)

	// Carrier limits: reject before any cost is computed.
	if table.MaxWeightKg.IsPositive() && res.RoundedWeightKg.GreaterThan(table.MaxWeightKg) {
		res.Rejected = true
		res.RejectionReason = ReasonWeightExceeded
		res.Scenario = ScenarioRejected
		return res, nil
	}
	if table.MaxDimensionCm.IsPositive() && req.MaxDimensionCm().GreaterThan(table.MaxDimensionCm) {
		res.Rejected = true
		res.RejectionReason = ReasonDimensionExceeded
		res.Scenario = ScenarioRejected
		return res, nil
	}

	// Rounding can push the billed weight into the next tier; the billed tier
	// is the one containing the rounded weight.
	billedTier, ok := table.TierFor(res.RoundedWeightKg)
	if !ok {
		return Result{}, shared.ErrRateNotFound
	}
	res.BaseRate = billedTier.BaseRate
	res.WeightRate = billedTier.WeightRate

	weightRateCost := billedTier.WeightRate.Mul(res.RoundedWeightKg.Sub(billedTier.WeightFloorKg))
	subtotal := billedTier.BaseRate.Add(weightRateCost)

	surcharges := applySurcharges(&res, req, table, subtotal)

	total := subtotal.Add(surcharges)
	if table.MinCharge.GreaterThan(total) {
		total = table.MinCharge
		res.MinChargeApplied = true
	}
	res.TotalCost = total

	res.DeliveryDaysMin = table.DeliveryDaysMin
	res.DeliveryDaysMax = table.DeliveryDaysMax

	switch {
	case res.MinChargeApplied:
		res.Scenario = ScenarioMinCharge
	case res.OversizeApplied:
		res.Scenario = ScenarioOversize
	default:
		res.Scenario = ScenarioStandard
	}
	return res, nil
}

// applySurcharges evaluates the table's surcharge rules against the request
// flags and records every applied, non-zero surcharge on the result. The
// insurance percentage applies to the declared value; insurance_value is the
// requested cover and only gates the option. The returned value is the sum of
// all applied surcharges.
func applySurcharges(res *Result, req Request, table *rates.RateTable, subtotal decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	apply := func(kind rates.SurchargeKind, declaredValue decimal.Decimal) decimal.Decimal {
		rule, ok := table.SurchargeFor(kind)
		if !ok {
			return decimal.Zero
		}
		amount := rule.Amount(subtotal, declaredValue)
		if !amount.IsPositive() {
			return decimal.Zero
		}
		if res.Surcharges == nil {
			res.Surcharges = make(map[string]decimal.Decimal)
		}
		res.Surcharges[string(kind)] = amount
		return amount
	}

	if req.Battery {
		total = total.Add(apply(rates.SurchargeBattery, decimal.Zero))
	}
	if req.Fragile {
		total = total.Add(apply(rates.SurchargeFragile, decimal.Zero))
	}
	if req.Liquid {
		total = total.Add(apply(rates.SurchargeLiquid, decimal.Zero))
	}
	if req.Insurance && req.InsuranceValue != nil {
		amount := apply(rates.SurchargeInsurance, req.DeclaredValue)
		if amount.IsPositive() {
			basis := req.DeclaredValue
			res.InsuranceBasis = &basis
		}
		total = total.Add(amount)
	}
	if table.OversizeThresholdCm.IsPositive() && req.MaxDimensionCm().GreaterThan(table.OversizeThresholdCm) {
		res.OversizeApplied = true
		total = total.Add(apply(rates.SurchargeOversize, decimal.Zero))
	}
	return total
}
