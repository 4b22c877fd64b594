// Package prob holds the stateless probability primitives shared by every
// simulated decision: the centered sigmoid, attribute composites, the
// consistency variance and weighted random choice.
package prob

import (
	"math"
	"math/rand"
)

const (
	// DefaultK is the sigmoid slope used by the baseball resolver. A five
	// point edge moves a .080 walk rate to about .137.
	DefaultK = 0.025

	// MaxDiff caps attribute differences before they reach the sigmoid.
	MaxDiff = 40.0

	// MinProbability is the floor of any roll with a non-zero diff.
	MinProbability = 0.05
	// MaxProbability is the ceiling of any roll with a non-zero diff.
	MaxProbability = 0.95
)

// Sigmoid is the standard logistic function. It saturates outside ±100.
func Sigmoid(x float64) float64 {
	if x > 100 {
		return 1
	}
	if x < -100 {
		return 0
	}
	return 1 / (1 + math.Exp(-x))
}

// WeightedSigmoidProbability moves baseRate toward 1 when diff is positive
// and toward 0 when it is negative. A zero diff returns baseRate unchanged;
// any other diff is clamped to [MinProbability, MaxProbability].
func WeightedSigmoidProbability(baseRate, diff, k float64) float64 {
	if diff == 0 {
		return baseRate
	}
	diff = Clamp(diff, -MaxDiff, MaxDiff)
	centered := (Sigmoid(k*diff) - 0.5) * 2
	var p float64
	if centered >= 0 {
		p = baseRate + (1-baseRate)*centered
	} else {
		p = baseRate * (1 + centered)
	}
	return Clamp(p, MinProbability, MaxProbability)
}

// WSP is WeightedSigmoidProbability with DefaultK.
func WSP(baseRate, diff float64) float64 {
	return WeightedSigmoidProbability(baseRate, diff, DefaultK)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApplyConsistencyVariance perturbs p with uniform noise whose band grows
// with the distance of consistency from 50. Players above the midpoint get
// a band ten times tighter than players the same distance below it.
// Exactly one value is drawn from rng regardless of the inputs.
func ApplyConsistencyVariance(rng *rand.Rand, p, consistency float64) float64 {
	u := rng.Float64()*2 - 1
	band := VarianceBand(consistency)
	return Clamp(p+u*band, 0.01, 0.99)
}

// VarianceBand is the half-width of the noise ApplyConsistencyVariance adds.
func VarianceBand(consistency float64) float64 {
	c := Clamp(consistency, 0, 100)
	if c < 50 {
		return (50 - c) / 50 * 0.10
	}
	return (c - 50) / 50 * 0.01
}

// WeightedChoice picks one of items with probability proportional to its
// weight. Negative weights count as zero; with no positive weight the first
// item is returned.
func WeightedChoice[T any](rng *rand.Rand, items []T, weights []float64) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	total := 0.0
	for i := range items {
		if i < len(weights) && weights[i] > 0 {
			total += weights[i]
		}
	}
	if total <= 0 {
		return items[0]
	}
	r := rng.Float64() * total
	for i := range items {
		if i >= len(weights) || weights[i] <= 0 {
			continue
		}
		if r < weights[i] {
			return items[i]
		}
		r -= weights[i]
	}
	return items[len(items)-1]
}
