package rt

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

// Str is the value-level string handle passed across the ABI. Two
// variants share one representation:
//
//   - unowned: cap 0, no ownership cell; the bytes live outside the
//     runtime (compiled-in literals) and are never freed;
//   - owned: cap = len+1 (one reserved terminator slot for interop
//     printing), own points at the shared counter.
//
// Buffers are immutable after construction. Copy aliases, it never
// duplicates bytes; Concat and Substring always allocate fresh buffers.
type Str struct {
	bytes []byte
	n     int
	c     int
	own   *refCell
}

// Empty is the canonical unowned empty string.
var Empty = Str{}

// Literal wraps externally-owned, statically-lived bytes in an unowned
// handle. The span must outlive every handle derived from it. No
// allocation, no failure mode.
func Literal(b []byte) Str {
	return Str{bytes: b, n: len(b)}
}

// allocOwned allocates a zeroed buffer of n bytes plus the terminator
// slot and a fresh counter cell at 1. The caller fills the bytes before
// the handle escapes.
func allocOwned(n int) Str {
	buf := make([]byte, n+1)
	return Str{
		bytes: buf[:n],
		n:     n,
		c:     n + 1,
		own:   newRefCell(n),
	}
}

// Alloc allocates an owned buffer of length bytes with counter 1. The
// content is caller-defined immediately after allocation. A length the
// allocator cannot represent is a fatal fault, not a reportable error.
func Alloc(length int64) Str {
	n, err := safecast.Conv[int](length)
	if err != nil || length < 0 {
		fail(&Fault{
			Code:    FaultAllocFailed,
			Message: fmt.Sprintf("string allocation of %d bytes failed", length),
		})
		return Empty
	}
	return allocOwned(n)
}

// Copy returns an aliased handle. For an owned string the shared counter
// is incremented; the increment is visible to every other live alias.
// For an unowned string this returns s unchanged.
func Copy(s Str) Str {
	if s.own == nil {
		return s
	}
	if s.own.freed {
		fail(useAfterFreeFault(s.own.allocID))
		return Empty
	}
	s.own.retain()
	return s
}

// Destroy releases one alias. Unowned handles are a no-op regardless of
// call count. For an owned handle the counter is decremented; when it
// reaches zero the buffer and counter cell are freed. The handle's byte
// fields are cleared either way, but it keeps pointing at the dead cell
// so a second Destroy is an observable double-release fault.
func Destroy(s *Str) {
	if s == nil || s.own == nil {
		return
	}
	cell := s.own
	if cell.freed {
		fail(doubleFreeFault(cell.allocID))
		return
	}
	cell.release()
	s.bytes = nil
	s.n = 0
	s.c = 0
}

// Concat allocates a new owned string holding a's bytes followed by b's.
// It does not consume or release its inputs, whatever their ownership.
func Concat(a, b Str) Str {
	out := allocOwned(a.n + b.n)
	copy(out.bytes, a.bytes[:a.n])
	copy(out.bytes[a.n:], b.bytes[:b.n])
	return out
}

// Len returns the byte count, excluding the terminator slot.
func Len(s Str) int64 {
	return int64(s.n)
}

// Equals compares byte-wise, with a storage-identity fast path.
func Equals(a, b Str) bool {
	if a.n != b.n {
		return false
	}
	if a.n == 0 {
		return true
	}
	if &a.bytes[0] == &b.bytes[0] {
		return true
	}
	return bytes.Equal(a.bytes[:a.n], b.bytes[:b.n])
}

// Substring returns the half-open range [start, end) of s as a new owned
// string. Both bounds are clamped to [0, len]; a clamped start >= end
// yields the canonical unowned empty string instead of an allocation.
func Substring(s Str, start, end int64) Str {
	length := int64(s.n)
	if start < 0 {
		start = 0
	} else if start > length {
		start = length
	}
	if end < 0 {
		end = 0
	} else if end > length {
		end = length
	}
	if start >= end {
		return Empty
	}
	// Clamped to [0, len], so the conversions cannot fail.
	lo, _ := safecast.Conv[int](start)
	hi, _ := safecast.Conv[int](end)
	out := allocOwned(hi - lo)
	copy(out.bytes, s.bytes[lo:hi])
	return out
}

// Bytes returns the live byte window, excluding the terminator slot.
// Callers fill a fresh Alloc result through it; after that the buffer is
// treated as immutable.
func (s Str) Bytes() []byte {
	return s.bytes[:s.n]
}

// String returns a copy of the bytes as a Go string.
func (s Str) String() string {
	return string(s.bytes[:s.n])
}

// Cap returns the buffer capacity: 0 for unowned handles, length plus the
// terminator slot for owned ones.
func (s Str) Cap() int {
	return s.c
}

// Owned reports whether the handle carries a shared counter.
func (s Str) Owned() bool {
	return s.own != nil
}

// Refs returns the current counter value, or 0 for unowned handles.
func (s Str) Refs() int {
	if s.own == nil {
		return 0
	}
	return s.own.refs
}
