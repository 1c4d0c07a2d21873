//go:build !callcounters

package mmm

import (
	"testing"

	"github.com/SharzyL/rvv-mmm/internal/callcounters"
)

// This file contains (dummy) implementations of the CallCounters functions.
// The idea is to avoid having any runtime impact.

// CallCountersActive is a constant whose value depends on build flags;
// it is true if CallCounters are active, which means we count kernel calls and their internal steps.
const CallCountersActive = false

// IncrementCallCounter increments the given call counter if callcounters are active (via build tags).
// It is a NoOp if callcounters are inactive
func IncrementCallCounter(id callcounters.Id) {
}

// BenchmarkWithCallCounters stops the benchmark timing and includes callcounters in the report as custom fields.
// If callcounters are inactive, is a no-op.
func BenchmarkWithCallCounters(b *testing.B) {
}
