package domain

import (
	"fmt"
	"math"
)

// renewableIndex is the RenewableEnergyPercent position in a FeatureVector.
const renewableIndex = 4

// DefaultForecastInput returns the projected indicators for 2026-2030.
func DefaultForecastInput() ForecastInput {
	return ForecastInput{
		NewFeatureVector(2026, 7.0, 1000, 7_800_000_000, 20, 30),
		NewFeatureVector(2027, 7.2, 1020, 7_900_000_000, 22, 29.5),
		NewFeatureVector(2028, 7.5, 1040, 8_000_000_000, 24, 29),
		NewFeatureVector(2029, 7.8, 1060, 8_100_000_000, 25, 28.5),
		NewFeatureVector(2030, 8.0, 1080, 8_200_000_000, 27, 28),
	}
}

// ValidateForecastInput checks that every projection has FeatureCount finite values.
func ValidateForecastInput(input ForecastInput) error {
	for i, v := range input {
		if len(v) != FeatureCount {
			return fmt.Errorf("%w: projection %d has %d features, want %d", ErrDimension, i, len(v), FeatureCount)
		}
		for j, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: projection %d feature %q is not finite", ErrConfig, i, NumericColumns[j])
			}
		}
	}
	return nil
}

// EnergyMix returns the mean projected renewable share and its fossil
// complement (100 - mean). Both are zero for an empty input.
func EnergyMix(input ForecastInput) (renewable, fossil float64) {
	if len(input) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range input {
		if len(v) > renewableIndex {
			sum += v[renewableIndex]
		}
	}
	renewable = sum / float64(len(input))
	return renewable, 100 - renewable
}
