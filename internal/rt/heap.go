package rt

import (
	"fmt"
	"sort"
	"strings"

	"kei/internal/trace"
)

// refCell is the shared ownership counter behind an owned string. It is a
// plain non-atomic counter: the runtime is single-threaded and concurrent
// copy/destroy on aliases of one allocation is undefined.
type refCell struct {
	refs    int
	freed   bool
	allocID uint64
	byteLen int
}

// heapState tracks allocation identity for tracing, plus the optional
// debug ledger of live cells. Alloc IDs are monotonically increasing and
// never reused within a run.
var heapState = struct {
	nextAllocID uint64
	debug       bool
	live        map[uint64]*refCell
}{nextAllocID: 1}

func newRefCell(byteLen int) *refCell {
	cell := &refCell{
		refs:    1,
		allocID: heapState.nextAllocID,
		byteLen: byteLen,
	}
	heapState.nextAllocID++
	if heapState.debug {
		heapState.live[cell.allocID] = cell
	}
	if tracer.Enabled() {
		tracer.Emit(&trace.Event{Kind: trace.KindAlloc, AllocID: cell.allocID, Refs: 1, Len: byteLen})
	}
	return cell
}

func (c *refCell) retain() {
	c.refs++
	if tracer.Enabled() {
		tracer.Emit(&trace.Event{Kind: trace.KindRetain, AllocID: c.allocID, Refs: c.refs, Len: c.byteLen})
	}
}

// release decrements the counter and reports whether the backing buffer
// must be freed.
func (c *refCell) release() bool {
	c.refs--
	if tracer.Enabled() {
		tracer.Emit(&trace.Event{Kind: trace.KindRelease, AllocID: c.allocID, Refs: c.refs, Len: c.byteLen})
	}
	if c.refs > 0 {
		return false
	}
	c.freed = true
	if heapState.debug {
		delete(heapState.live, c.allocID)
	}
	if tracer.Enabled() {
		tracer.Emit(&trace.Event{Kind: trace.KindFree, AllocID: c.allocID, Refs: 0, Len: c.byteLen})
	}
	return true
}

// EnableHeapDebug turns the live-allocation ledger on or off. Enabling
// resets the ledger; allocations made while disabled are not tracked.
func EnableHeapDebug(on bool) {
	heapState.debug = on
	if on {
		heapState.live = make(map[uint64]*refCell, 64)
	} else {
		heapState.live = nil
	}
}

// LiveAllocs returns the number of tracked live allocations. Always zero
// when heap debugging is off.
func LiveAllocs() int {
	return len(heapState.live)
}

// CheckLeaks reports tracked allocations still alive, or nil if the
// ledger is empty or heap debugging is off.
func CheckLeaks() *Fault {
	if !heapState.debug || len(heapState.live) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(heapState.live))
	for id := range heapState.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	const maxList = 8
	list := make([]string, 0, maxList)
	for _, id := range ids {
		if len(list) == maxList {
			break
		}
		cell := heapState.live[id]
		list = append(list, fmt.Sprintf("string#%d(rc=%d,len=%d)", id, cell.refs, cell.byteLen))
	}
	msg := fmt.Sprintf("heap leak detected: %d strings still alive", len(ids))
	if len(list) > 0 {
		msg += ": " + strings.Join(list, ", ")
	}
	return &Fault{Code: FaultHeapLeak, Message: msg}
}
