// Package rt implements the runtime linked into compiled Kei programs:
// shared-ownership string values, fatal fault reporting, and the
// per-primitive print shims the code generator emits calls to.
package rt

import "fmt"

// FaultCode identifies the kind of a fatal runtime fault.
type FaultCode int

// Stable fault codes - do not change values.
const (
	FaultPanic         FaultCode = 1001 // RT1001: explicit panic
	FaultOutOfBounds   FaultCode = 1002 // RT1002: index out of bounds
	FaultNullDeref     FaultCode = 1003 // RT1003: null dereference
	FaultAssertFailed  FaultCode = 1004 // RT1004: failed assertion
	FaultRequireFailed FaultCode = 1005 // RT1005: failed requirement
	FaultAllocFailed   FaultCode = 1006 // RT1006: allocation failure
	FaultDoubleFree    FaultCode = 1007 // RT1007: double release of an owned string
	FaultHeapLeak      FaultCode = 1008 // RT1008: live allocations at leak check
	FaultUseAfterFree  FaultCode = 1009 // RT1009: owned string used after free
)

// String returns the code as "RT1001" format.
func (c FaultCode) String() string {
	return fmt.Sprintf("RT%d", c)
}

// Fault represents a fatal runtime fault. Faults are never recoverable:
// the ABI entry points render the diagnostic and terminate the process,
// but the checks themselves build Fault values so the arithmetic stays
// testable in-process.
type Fault struct {
	Code    FaultCode
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault %s: %s", f.Code, f.Message)
}

// Prefix returns the diagnostic label for the fault kind.
func (f *Fault) Prefix() string {
	switch f.Code {
	case FaultAssertFailed:
		return "assertion failed"
	case FaultRequireFailed:
		return "requirement failed"
	default:
		return "panic"
	}
}

// Diagnostic returns the single line written to the error stream,
// without trailing newline.
func (f *Fault) Diagnostic() string {
	return f.Prefix() + ": " + f.Message
}

func panicFault(msg string) *Fault {
	return &Fault{Code: FaultPanic, Message: msg}
}

func outOfBoundsFault(index, length int64) *Fault {
	return &Fault{
		Code:    FaultOutOfBounds,
		Message: fmt.Sprintf("index out of bounds: index %d, length %d", index, length),
	}
}

func nullDerefFault() *Fault {
	return &Fault{Code: FaultNullDeref, Message: "null pointer dereference"}
}

func assertFault(msg string) *Fault {
	return &Fault{Code: FaultAssertFailed, Message: msg}
}

func requireFault(msg string) *Fault {
	return &Fault{Code: FaultRequireFailed, Message: msg}
}

func doubleFreeFault(allocID uint64) *Fault {
	return &Fault{
		Code:    FaultDoubleFree,
		Message: fmt.Sprintf("double free: string alloc=%d", allocID),
	}
}

func useAfterFreeFault(allocID uint64) *Fault {
	return &Fault{
		Code:    FaultUseAfterFree,
		Message: fmt.Sprintf("use after free: string alloc=%d", allocID),
	}
}
