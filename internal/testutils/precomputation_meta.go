package testutils

import (
	"math/rand"
	"sync"
)

// This file defines a PrecomputedCache used by tests and benchmarks.
//
// A PrecomputedCache behaves like a map[KeyType] -> []ElementType of pseudorandom samples.
// The key determines the rng seed (and whatever else the creation function needs, e.g. the limb count of an operand).
// Asking for the first n elements for a key and later for the first m elements for the same key
// gives lists where one is a prefix of the other, so tests using different amounts see consistent data.
//
// Sampling operands (and especially moduli together with their Montgomery constants) is not free,
// so we only extend the per-key list as needed. The cache is safe for concurrent use, because tests may run in parallel.

type cachePage[ElementType any] struct {
	mu       sync.Mutex
	rng      *rand.Rand
	elements []ElementType
}

// PrecomputedCache stores, for each key, a lazily extended list of pseudorandom elements.
type PrecomputedCache[KeyType comparable, ElementType any] struct {
	mu          sync.Mutex
	pages       map[KeyType]*cachePage[ElementType]
	seed        func(KeyType) int64
	creationFun func(*rand.Rand, KeyType) ElementType
	copyFun     func(ElementType) ElementType
}

// MakePrecomputedCache creates a ready-to-use [PrecomputedCache].
//
// seed maps the key to an rng seed; creationFun samples one new element.
// copyFun is used to hand out copies (so callers cannot modify the cache); a nil copyFun performs a plain assignment,
// which is only appropriate if ElementType holds no slices or pointers.
func MakePrecomputedCache[KeyType comparable, ElementType any](seed func(KeyType) int64, creationFun func(*rand.Rand, KeyType) ElementType, copyFun func(ElementType) ElementType) *PrecomputedCache[KeyType, ElementType] {
	if seed == nil || creationFun == nil {
		panic("rvv-mmm / testutils: MakePrecomputedCache needs a seed and a creation function")
	}
	if copyFun == nil {
		copyFun = func(in ElementType) ElementType { return in }
	}
	return &PrecomputedCache[KeyType, ElementType]{
		pages:       make(map[KeyType]*cachePage[ElementType]),
		seed:        seed,
		creationFun: creationFun,
		copyFun:     copyFun,
	}
}

// GetElements returns (copies of) the first amount many elements stored under key, extending the cache if needed.
func (pc *PrecomputedCache[KeyType, ElementType]) GetElements(key KeyType, amount int) []ElementType {
	ret := make([]ElementType, amount)
	if amount == 0 {
		return ret
	}

	pc.mu.Lock()
	page, ok := pc.pages[key]
	if !ok {
		page = &cachePage[ElementType]{rng: rand.New(rand.NewSource(pc.seed(key)))}
		pc.pages[key] = page
	}
	pc.mu.Unlock()

	page.mu.Lock()
	defer page.mu.Unlock()
	for len(page.elements) < amount {
		page.elements = append(page.elements, pc.creationFun(page.rng, key))
	}
	for i := 0; i < amount; i++ {
		ret[i] = pc.copyFun(page.elements[i])
	}
	return ret
}
