package benchmark

import "time"

// Numerical Recipes LCG constants.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// Run performs exactly ops iterations of the integer-mixing recurrence
//
//	acc = (acc*1664525 + 1013904223) ^ i
//
// over a wrapping uint64 accumulator seeded with zero, and returns the final
// accumulator together with the wall time spent in the loop.
//
// Run holds no shared state and is safe to call from many goroutines. The loop
// does not observe cancellation.
func Run(ops uint64) (acc uint64, elapsed time.Duration) {
	start := time.Now()
	for i := uint64(0); i < ops; i++ {
		acc = (acc*lcgMultiplier + lcgIncrement) ^ i
		consume(acc)
	}
	return acc, time.Since(start)
}

// consume is an optimization barrier: the compiler cannot see through a
// non-inlined call, so every acc it is handed must be computed.
//
//go:noinline
func consume(uint64) {}

// Measure runs the kernel and packs its outcome into a Result.
func Measure(ops uint64) Result {
	acc, elapsed := Run(ops)
	return NewResult(ops, acc, elapsed)
}
