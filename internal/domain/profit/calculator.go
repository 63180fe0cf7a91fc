package profit

import (
	"github.com/shopspring/decimal"
	"github.com/xborder/finance-engine/internal/domain/shipping"
)

// Warning codes emitted on profit results
const (
	WarnNegativeMargin      = "NEGATIVE_MARGIN"
	WarnUnshippable         = "UNSHIPPABLE"
	WarnCategoryFeeFallback = "CATEGORY_FEE_FALLBACK"
	WarnZeroSellingPrice    = "ZERO_SELLING_PRICE"
)

// ShippingQuote carries the shipping outcome feeding a profit calculation.
// SelectedCost is nil when no candidate service could ship the package; the
// calculator then flags the result instead of fabricating a zero cost.
type ShippingQuote struct {
	Options         map[string]shipping.Result
	Recommended     string
	SelectedService string
	SelectedCost    *decimal.Decimal
}

// CostComponent is one line of the margin cost breakdown
type CostComponent struct {
	Name         string           `json:"name"`
	Amount       decimal.Decimal  `json:"amount"`
	ShareOfPrice *decimal.Decimal `json:"share_of_price,omitempty"`
}

// MarginAnalysis details the gross margin figures of a profit result
type MarginAnalysis struct {
	GrossMargin     decimal.Decimal  `json:"gross_margin"`
	GrossMarginRate *decimal.Decimal `json:"gross_margin_rate,omitempty"`
	CostBreakdown   []CostComponent  `json:"cost_breakdown"`
	MarginLevel     string           `json:"margin_level"`
}

// Suggestion is one price optimization entry
type Suggestion struct {
	SuggestedPrice     decimal.Decimal  `json:"suggested_price"`
	ExpectedProfit     decimal.Decimal  `json:"expected_profit"`
	ExpectedProfitRate *decimal.Decimal `json:"expected_profit_rate,omitempty"`
	PriceAdjustment    decimal.Decimal  `json:"price_adjustment"`
	Reason             string           `json:"reason"`
}

// Result is a fully populated profit calculation outcome
type Result struct {
	RequestID            string                     `json:"request_id"`
	SKU                  string                     `json:"sku"`
	Platform             string                     `json:"platform"`
	Cost                 decimal.Decimal            `json:"cost"`
	SellingPrice         decimal.Decimal            `json:"selling_price"`
	PlatformFee          decimal.Decimal            `json:"platform_fee"`
	PlatformFeeRate      decimal.Decimal            `json:"platform_fee_rate"`
	ShippingOptions      map[string]shipping.Result `json:"shipping_options,omitempty"`
	RecommendedShipping  string                     `json:"recommended_shipping,omitempty"`
	SelectedShippingCost *decimal.Decimal           `json:"selected_shipping_cost"`
	ProfitAmount         *decimal.Decimal           `json:"profit_amount,omitempty"`
	ProfitRate           *decimal.Decimal           `json:"profit_rate,omitempty"`
	Scenario             string                     `json:"scenario"`
	MarginAnalysis       *MarginAnalysis            `json:"margin_analysis,omitempty"`
	Suggestions          []Suggestion               `json:"optimization_suggestions,omitempty"`
	Warnings             []string                   `json:"warnings,omitempty"`
}

// Calculator composes cost, platform fee and shipping cost into margin
// figures. All methods are pure over the calculator's configuration.
type Calculator struct {
	Fees       FeeSchedule
	Thresholds Thresholds
	Targets    []Target
}

// Calculate builds a profit result from a request and its shipping quote.
// Invariant: profit_amount = selling_price - cost - platform_fee -
// selected_shipping_cost whenever a shipping cost is available.
func (c Calculator) Calculate(req Request, quote ShippingQuote) Result {
	feeRate, feeSource := c.Fees.Resolve(req)
	platformFee := req.SellingPrice.Mul(feeRate)

	res := Result{
		SKU:                  req.SKU,
		Platform:             req.Platform,
		Cost:                 req.Cost,
		SellingPrice:         req.SellingPrice,
		PlatformFee:          platformFee,
		PlatformFeeRate:      feeRate,
		ShippingOptions:      quote.Options,
		RecommendedShipping:  quote.Recommended,
		SelectedShippingCost: quote.SelectedCost,
	}

	if req.CategoryCode != "" && feeSource != FeeSourceCategory && feeSource != FeeSourceOverride {
		res.Warnings = append(res.Warnings, WarnCategoryFeeFallback)
	}

	if quote.SelectedCost == nil {
		res.Scenario = "unshippable"
		res.Warnings = append(res.Warnings, WarnUnshippable)
		return res
	}

	shippingCost := *quote.SelectedCost
	profit := req.SellingPrice.Sub(req.Cost).Sub(platformFee).Sub(shippingCost)
	res.ProfitAmount = &profit

	var rate *decimal.Decimal
	if req.SellingPrice.IsPositive() {
		r := profit.Div(req.SellingPrice)
		rate = &r
	} else {
		res.Warnings = append(res.Warnings, WarnZeroSellingPrice)
	}
	res.ProfitRate = rate

	level := MarginUnknown
	if rate != nil {
		level = c.Thresholds.Classify(*rate)
	}
	res.Scenario = level
	if profit.IsNegative() {
		res.Warnings = append(res.Warnings, WarnNegativeMargin)
	}

	res.MarginAnalysis = &MarginAnalysis{
		GrossMargin:     profit,
		GrossMarginRate: rate,
		MarginLevel:     level,
		CostBreakdown: []CostComponent{
			breakdownLine("cost", req.Cost, req.SellingPrice),
			breakdownLine("platform_fee", platformFee, req.SellingPrice),
			breakdownLine("shipping", shippingCost, req.SellingPrice),
		},
	}

	res.Suggestions = Optimize(req, feeRate, shippingCost, req.SellingPrice, c.Targets)
	return res
}

func breakdownLine(name string, amount, sellingPrice decimal.Decimal) CostComponent {
	line := CostComponent{Name: name, Amount: amount}
	if sellingPrice.IsPositive() {
		share := amount.Div(sellingPrice)
		line.ShareOfPrice = &share
	}
	return line
}
