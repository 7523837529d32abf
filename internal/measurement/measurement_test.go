package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightLossPercentage(t *testing.T) {
	assert.InDelta(t, 10.0, WeightLossPercentage(100, 90), 1e-9)
	assert.InDelta(t, 5.0, WeightLossPercentage(120, 114), 1e-9)
}

func TestWeightLossPercentageClampedAtZero(t *testing.T) {
	// gaining weight yields 0%, not a negative value
	assert.Equal(t, 0.0, WeightLossPercentage(100, 105))
	assert.Equal(t, 0.0, WeightLossPercentage(0, 90))
}

func TestWaistReductionPercentage(t *testing.T) {
	baseline := 100.0
	current := 95.0
	assert.InDelta(t, 5.0, WaistReductionPercentage(&baseline, &current), 1e-9)
}

func TestWaistReductionNoBaselineIsZero(t *testing.T) {
	current := 95.0
	assert.Equal(t, 0.0, WaistReductionPercentage(nil, &current))

	zero := 0.0
	assert.Equal(t, 0.0, WaistReductionPercentage(&zero, &current))

	baseline := 100.0
	assert.Equal(t, 0.0, WaistReductionPercentage(&baseline, nil))
}

func TestWaistReductionClampedAtZero(t *testing.T) {
	baseline := 90.0
	current := 95.0
	assert.Equal(t, 0.0, WaistReductionPercentage(&baseline, &current))
}
