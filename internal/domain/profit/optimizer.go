package profit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Target is one price optimization goal: either a gross margin rate or an
// absolute profit amount.
type Target struct {
	Name         string
	MarginRate   *decimal.Decimal
	ProfitAmount *decimal.Decimal
}

// DefaultTargets returns the standard optimization tiers
func DefaultTargets() []Target {
	breakEven := decimal.Zero
	healthy := decimal.NewFromFloat(0.10)
	strong := decimal.NewFromFloat(0.25)
	return []Target{
		{Name: "break_even", ProfitAmount: &breakEven},
		{Name: "healthy_margin", MarginRate: &healthy},
		{Name: "strong_margin", MarginRate: &strong},
	}
}

// Optimize solves for the selling price reaching each target, holding cost,
// fee rate and shipping cost fixed. The platform fee is linear in price, so a
// closed form applies:
//
//	profit target:  price = (target + cost + shipping) / (1 - fee_rate)
//	margin target:  price = (cost + shipping) / (1 - fee_rate - margin_rate)
//
// Shipping cost is weight/dimension-driven and does not change with price.
// Targets that are unreachable (fee rate plus margin target at or above 1)
// produce no suggestion.
func Optimize(req Request, feeRate, shippingCost, currentPrice decimal.Decimal, targets []Target) []Suggestion {
	if feeRate.GreaterThanOrEqual(one) {
		return nil
	}

	var suggestions []Suggestion
	for _, target := range targets {
		var price decimal.Decimal
		var reason string

		switch {
		case target.ProfitAmount != nil:
			price = target.ProfitAmount.Add(req.Cost).Add(shippingCost).Div(one.Sub(feeRate))
			reason = fmt.Sprintf("target profit %s (%s)", target.ProfitAmount.StringFixed(2), target.Name)
		case target.MarginRate != nil:
			denom := one.Sub(feeRate).Sub(*target.MarginRate)
			if !denom.IsPositive() {
				continue
			}
			price = req.Cost.Add(shippingCost).Div(denom)
			reason = fmt.Sprintf("target margin rate %s%% (%s)", target.MarginRate.Mul(hundred).StringFixed(0), target.Name)
		default:
			continue
		}

		price = price.RoundCeil(2)
		profit := price.Sub(req.Cost).Sub(price.Mul(feeRate)).Sub(shippingCost)

		s := Suggestion{
			SuggestedPrice:  price,
			ExpectedProfit:  profit,
			PriceAdjustment: price.Sub(currentPrice),
			Reason:          reason,
		}
		if price.IsPositive() {
			rate := profit.Div(price)
			s.ExpectedProfitRate = &rate
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}
