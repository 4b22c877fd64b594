package util

import "math/rand"

// New returns the generator every simulation call is threaded with.
// Seed 0 is remapped so an unset seed still reproduces.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Derive returns the seed for job i of a batch run on the given worker.
func Derive(seed int64, workerID, i int) int64 {
	return seed + int64(workerID)*7919 + int64(i)
}
