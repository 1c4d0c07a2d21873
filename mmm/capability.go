package mmm

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// CPUFeatures describes the widest vector unit found on the current processor.
type CPUFeatures struct {
	Arch       string // runtime.GOARCH
	Extension  string // name of the vector extension, "" if none was found
	VectorBits int    // register width in bits, 0 if no vector unit was found
}

// DetectCPUFeatures reports the widest vector extension golang.org/x/sys/cpu knows about.
//
// RISC-V only tells us that V is present, not VLEN; we assume the minimum VLEN of 128 that the V extension mandates.
func DetectCPUFeatures() CPUFeatures {
	f := CPUFeatures{Arch: runtime.GOARCH}
	switch {
	case cpu.X86.HasAVX512F:
		f.Extension, f.VectorBits = "AVX-512", 512
	case cpu.X86.HasAVX2:
		f.Extension, f.VectorBits = "AVX2", 256
	case cpu.X86.HasSSE2:
		f.Extension, f.VectorBits = "SSE2", 128
	case cpu.ARM64.HasSVE:
		// SVE guarantees at least 128 bits, like NEON
		f.Extension, f.VectorBits = "SVE", 128
	case cpu.ARM64.HasASIMD:
		f.Extension, f.VectorBits = "ASIMD", 128
	case cpu.RISCV64.HasV:
		f.Extension, f.VectorBits = "RVV", 128
	}
	return f
}

// LaneWidth returns how many 64-bit accumulator lanes fit into one vector register, or [DefaultWay] if that is unknown.
func (f CPUFeatures) LaneWidth() int {
	if f.VectorBits < 64 {
		return DefaultWay
	}
	return f.VectorBits / 64
}

// DetectLaneWidth is shorthand for DetectCPUFeatures().LaneWidth().
// It is meant for choosing the Way of [NewParams]; any positive value is correct, this only affects speed.
func DetectLaneWidth() int {
	return DetectCPUFeatures().LaneWidth()
}
