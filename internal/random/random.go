// Package random provides a random number source that is sensitive to
// emulated time, so that two runs started from the same state and driven by
// the same cycle counter produce the same sequence of "random" numbers. This
// is required for deterministic snapshot round-trips: a hard reset in
// "randomize state" mode must be reproducible from a replayed cycle count.
package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers not tied to a rewindable cycle count
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().UnixNano())
}

// Random is a random number generator. When driven by a monotonic cycle
// count it is reproducible across runs (NoRewind is not, and is intended
// only for power-on jitter that must never be snapshotted).
type Random struct {
	// Cycle is consulted by Rewindable(); callers should point it at the
	// owning component's cycle counter so the sequence is reproducible from
	// a replay.
	Cycle func() uint64

	// ZeroSeed forces the base seed to zero, used by comparison/regression
	// harnesses that need byte-identical output across two emulator
	// instances.
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(cycle func() uint64) *Random {
	return &Random{Cycle: cycle}
}

func (rnd *Random) rand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Rewindable returns a random number derived from the current cycle count,
// so that replaying from a snapshot to the same cycle reproduces it.
func (rnd *Random) Rewindable(n int) int {
	var c int64
	if rnd.Cycle != nil {
		c = int64(rnd.Cycle())
	}
	seed := c
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	return rnd.rand(seed).Intn(n)
}

// NoRewind returns a random number with no guarantee of reproducibility.
func (rnd *Random) NoRewind(n int) int {
	return rnd.rand(time.Now().UnixNano()).Intn(n)
}
