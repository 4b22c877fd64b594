package prob

import "math"

// Weight pairs an attribute key with its share of a composite.
type Weight[K comparable] struct {
	Key K
	W   float64
}

// Table is a weight table. Tables are fixture data and must sum to 1.0.
type Table[K comparable] []Weight[K]

// Sum returns the total weight of the table.
func (t Table[K]) Sum() float64 {
	s := 0.0
	for _, w := range t {
		s += w.W
	}
	return s
}

// Balanced reports whether the table sums to 1 within tolerance.
func (t Table[K]) Balanced() bool {
	return math.Abs(t.Sum()-1.0) < 1e-9
}

// Composite is the weighted sum of get over the table.
func Composite[K comparable](get func(K) float64, t Table[K]) float64 {
	v := 0.0
	for _, w := range t {
		v += get(w.Key) * w.W
	}
	return v
}
