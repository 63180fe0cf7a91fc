package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholdsClassify(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		rate string
		want string
	}{
		{"-0.01", MarginLoss},
		{"0", MarginThin},
		{"0.0999", MarginThin},
		{"0.10", MarginHealthy},
		{"0.25", MarginHealthy},
		{"0.2501", MarginStrong},
		{"0.90", MarginStrong},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Classify(d(tt.rate)))
		})
	}
}

func TestThresholdsClassifyThinBoundaryInclusive(t *testing.T) {
	th := DefaultThresholds()

	// a rate exactly at the thin threshold lands in the healthy bucket
	assert.Equal(t, MarginHealthy, th.Classify(d("0.10")))
	assert.Equal(t, MarginThin, th.Classify(d("0.09999999")))
}

func TestThresholdsClassifyCustomBoundaries(t *testing.T) {
	th := Thresholds{Thin: d("0.05"), Healthy: d("0.15")}

	assert.Equal(t, MarginThin, th.Classify(d("0.04")))
	assert.Equal(t, MarginHealthy, th.Classify(d("0.05")))
	assert.Equal(t, MarginHealthy, th.Classify(d("0.15")))
	assert.Equal(t, MarginStrong, th.Classify(d("0.16")))
}
