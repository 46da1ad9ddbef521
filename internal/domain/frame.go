package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultSplitRatio and DefaultSeed reproduce an 80/20 split with seed 42.
const (
	DefaultSplitRatio = 0.2
	DefaultSeed       = 42
)

// splitEpsilon absorbs float noise in ratio*n so that, e.g., 0.7*10 yields 7 test rows.
const splitEpsilon = 1e-9

// Frame extracts samples from records and partitions them into training and
// test splits. splitRatio is the fraction reserved for testing and must lie
// in (0,1). The same records, ratio and seed always give the same partition.
func Frame(records []ClimateRecord, splitRatio float64, seed uint64) (TrainingSplit, error) {
	if math.IsNaN(splitRatio) || splitRatio <= 0 || splitRatio >= 1 {
		return TrainingSplit{}, fmt.Errorf("%w: split ratio %v outside (0,1)", ErrConfig, splitRatio)
	}
	n := len(records)
	if n < 2 {
		return TrainingSplit{}, fmt.Errorf("%w: need at least 2 records to split, got %d", ErrInsufficientData, n)
	}

	nTest := int(math.Ceil(splitRatio*float64(n) - splitEpsilon))
	nTest = max(1, min(nTest, n-1))

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	split := TrainingSplit{
		Train: make([]Sample, 0, n-nTest),
		Test:  make([]Sample, 0, nTest),
	}
	for i, idx := range perm {
		s := Sample{Features: records[idx].Features(), Target: records[idx].AvgTemperature}
		if i < nTest {
			split.Test = append(split.Test, s)
		} else {
			split.Train = append(split.Train, s)
		}
	}
	return split, nil
}
