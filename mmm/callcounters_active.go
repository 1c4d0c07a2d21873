//go:build callcounters

package mmm

import (
	"testing"

	"github.com/SharzyL/rvv-mmm/internal/callcounters"
)

// This file is only compiled if tags=callcounters is set, otherwise callcounters_inactive.go is used.
// The difference is just that the functions defined here are replaced by no-ops.

// CallCountersActive is a constant whose value depends on build flags;
// it is true if CallCounters are active, which means we count kernel calls and their internal steps.
const CallCountersActive = true

// IncrementCallCounter increments the given call counter if callcounters are active (via build tags).
// It is a NoOp if callcounters are inactive
func IncrementCallCounter(id callcounters.Id) {
	id.Increment()
}

// BenchmarkWithCallCounters stops the benchmark timing and includes callcounters in the report as custom fields.
// If callcounters are inactive, is a no-op.
func BenchmarkWithCallCounters(b *testing.B) {
	b.StopTimer()
	reports := callcounters.ReportCallCounters(true, false)
	for _, item := range reports {
		b.ReportMetric(float64(item.Calls)/float64(b.N), item.Tag+"/op")
	}
}
