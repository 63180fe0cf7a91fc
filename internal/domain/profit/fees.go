package profit

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Fee-rate resolution sources, recorded so callers can tell which rule fired
const (
	FeeSourceOverride = "override"
	FeeSourceCategory = "category"
	FeeSourcePlatform = "platform"
	FeeSourceDefault  = "default"
)

// FeeSchedule resolves the platform fee rate for a request. Rates are
// fractions of the selling price. Category rates are keyed
// "<platform>/<category_code>"; platform rates by platform.
type FeeSchedule struct {
	DefaultRate   decimal.Decimal
	PlatformRates map[string]decimal.Decimal
	CategoryRates map[string]decimal.Decimal
}

// Resolve returns the applicable fee rate and its source, in precedence
// order: request override, category-specific rate, platform rate, global
// default.
func (f FeeSchedule) Resolve(req Request) (decimal.Decimal, string) {
	if req.PlatformFeeRate != nil {
		return *req.PlatformFeeRate, FeeSourceOverride
	}
	platform := strings.ToLower(req.Platform)
	if req.CategoryCode != "" {
		if rate, ok := f.CategoryRates[platform+"/"+strings.ToLower(req.CategoryCode)]; ok {
			return rate, FeeSourceCategory
		}
	}
	if rate, ok := f.PlatformRates[platform]; ok {
		return rate, FeeSourcePlatform
	}
	return f.DefaultRate, FeeSourceDefault
}
