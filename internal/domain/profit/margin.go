package profit

import "github.com/shopspring/decimal"

// Margin levels derived from the gross margin rate
const (
	MarginLoss    = "loss"
	MarginThin    = "thin"
	MarginHealthy = "healthy"
	MarginStrong  = "strong"
	MarginUnknown = "unknown"
)

// Thresholds holds the configured margin-level boundaries: a rate below Thin
// is thin, up to Healthy is healthy, above it strong. Negative is always loss.
type Thresholds struct {
	Thin    decimal.Decimal
	Healthy decimal.Decimal
}

// DefaultThresholds returns the standard boundaries (10% / 25%)
func DefaultThresholds() Thresholds {
	return Thresholds{
		Thin:    decimal.NewFromFloat(0.10),
		Healthy: decimal.NewFromFloat(0.25),
	}
}

// Classify buckets a gross margin rate into a margin level. Both boundaries
// are inclusive on the upper bucket: a rate equal to Thin is healthy and a
// rate equal to Healthy is still healthy, not strong.
func (t Thresholds) Classify(rate decimal.Decimal) string {
	switch {
	case rate.IsNegative():
		return MarginLoss
	case rate.LessThan(t.Thin):
		return MarginThin
	case rate.LessThanOrEqual(t.Healthy):
		return MarginHealthy
	default:
		return MarginStrong
	}
}
