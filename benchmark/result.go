package benchmark

import (
	"math"
	"time"
)

// Result is the payload returned by the bench endpoint
type Result struct {
	Ops        uint64  `json:"ops"`
	Seconds    float64 `json:"seconds"`
	OpsPerSec  float64 `json:"ops_per_sec"`
	MOpsPerSec float64 `json:"mops_per_sec"`
	Acc        uint64  `json:"acc"` // keeps the loop observable
}

// NewResult derives the throughput figures for a finished run.
//
// A non-empty run that finished below clock resolution reports
// math.MaxFloat64 ops/sec, since JSON has no encoding for +Inf.
func NewResult(ops, acc uint64, elapsed time.Duration) Result {
	seconds := elapsed.Seconds()
	if seconds < 0 {
		seconds = 0
	}

	var opsPerSec float64
	switch {
	case seconds > 0:
		opsPerSec = float64(ops) / seconds
	case ops > 0:
		opsPerSec = math.MaxFloat64
	}

	return Result{
		Ops:        ops,
		Seconds:    seconds,
		OpsPerSec:  opsPerSec,
		MOpsPerSec: opsPerSec / 1_000_000,
		Acc:        acc,
	}
}
