package callcounters

// This package contains code for call counters.
// Call counters are benchmarking counters that count how often certain internal steps
// (kernel invocations, carry propagation passes, Montgomery shifts) happen, and display the output
// as custom metrics in Go's benchmarking framework.

/*
Usage example:
var _ = CreateCallCounter("Mul", "", "")
var _ = CreateCallCounter("Propagate", "Carry propagation", "Mul")
func propagate() {
	IncrementCallCounter("Propagate")
	...
}

The calls to CreateCallCounter(id, display name, parent) can be in any order; a parent may be referred to before it is created.
*/

// Counters are organized in a tree for display purposes only: incrementing a child does *not* add to its parent.
// (The kernel's steps are nested in a fixed way, so we found per-step counts more useful than aggregated ones.)
//
// Ids should contain no whitespace due to limitations of Go's benchmarking framework.

import (
	"sort"
	"sync"
	"sync/atomic"
)

type Id string

type CallCounter struct {
	id          Id     // string id used to refer to this CallCounter. Never ""
	displayName string // Defaults to id if set to the empty string.
	parent      Id     // display parent; "" for roots
	initialized bool   // false for counters that were only referred to as a parent, never created
	count       atomic.Int64
}

var (
	callCountersMutex sync.Mutex
	callCounters      = make(map[Id]*CallCounter)
)

// getCounter translates from id to *CallCounter, creating an uninitialized entry if needed.
// The caller must hold callCountersMutex.
func getCounter(id Id) *CallCounter {
	if id == "" {
		panic("callCounters: called getCounter with empty id")
	}
	cc, ok := callCounters[id]
	if !ok {
		cc = &CallCounter{id: id}
		callCounters[id] = cc
	}
	return cc
}

// CreateCallCounter(id, displayName, parentId) creates a new call counter with the given id and displayName and returns a pointer to it.
// If parentId is not the empty string, the counter is displayed below that parent.
func CreateCallCounter(id Id, displayName string, parentId Id) *CallCounter {
	callCountersMutex.Lock()
	defer callCountersMutex.Unlock()
	cc := getCounter(id)
	if cc.initialized {
		panic("callCounters: Trying to create call counter " + string(id) + " twice")
	}
	cc.initialized = true
	cc.displayName = displayName
	if cc.displayName == "" {
		cc.displayName = string(id)
	}
	cc.parent = parentId
	if parentId != "" {
		getCounter(parentId)
	}
	return cc
}

// Exists checks whether a call counter with the given id exists and was initialized.
func (id Id) Exists() bool {
	callCountersMutex.Lock()
	defer callCountersMutex.Unlock()
	cc, ok := callCounters[id]
	return ok && cc.initialized
}

// Increment increments the counter. It panics for counters that were never created.
func (id Id) Increment() {
	callCountersMutex.Lock()
	cc := callCounters[id]
	callCountersMutex.Unlock()
	if cc == nil || !cc.initialized {
		panic("callCounters: Trying to increment non-existent call counter " + string(id))
	}
	cc.count.Add(1)
}

// Get returns the current count; ok is false if the counter does not exist.
func (id Id) Get() (ret int, ok bool) {
	callCountersMutex.Lock()
	cc, ok := callCounters[id]
	callCountersMutex.Unlock()
	if !ok {
		return 0, false
	}
	return int(cc.count.Load()), cc.initialized
}

// Reset resets the counter to 0
func (id Id) Reset() {
	callCountersMutex.Lock()
	cc, ok := callCounters[id]
	callCountersMutex.Unlock()
	if ok {
		cc.count.Store(0)
	}
}

// ResetAllCounters resets all callCounters to 0
func ResetAllCounters() {
	callCountersMutex.Lock()
	defer callCountersMutex.Unlock()
	for _, cc := range callCounters {
		cc.count.Store(0)
	}
}

// CCReport is one line of output of [ReportCallCounters].
type CCReport struct {
	Tag   string // either the id or the display name
	Calls int
	Depth int // depth in the display tree
}

// ReportCallCounters lists the counters in display order (depth-first, siblings sorted by id).
// If onlyPositive is set, counters that are 0 are omitted (their children are still listed).
func ReportCallCounters(onlyPositive bool, useDisplayName bool) (ret []CCReport) {
	callCountersMutex.Lock()
	defer callCountersMutex.Unlock()

	children := make(map[Id][]Id)
	var roots []Id
	for id, cc := range callCounters {
		if cc.parent == "" {
			roots = append(roots, id)
		} else {
			children[cc.parent] = append(children[cc.parent], id)
		}
	}
	sortIds := func(ids []Id) { sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] }) }
	sortIds(roots)

	var walk func(id Id, depth int)
	walk = func(id Id, depth int) {
		cc := callCounters[id]
		calls := int(cc.count.Load())
		if cc.initialized && (calls != 0 || !onlyPositive) {
			report := CCReport{Tag: string(cc.id), Calls: calls, Depth: depth}
			if useDisplayName {
				report.Tag = cc.displayName
			}
			ret = append(ret, report)
		}
		kids := children[id]
		sortIds(kids)
		for _, kid := range kids {
			walk(kid, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return
}
