package rt

import "kei/internal/diag"

// fail renders the fault diagnostic on the host error stream and
// terminates with status 1. Under the OS host this never returns; the
// test host records the exit and returns so checks stay testable.
func fail(f *Fault) {
	diag.Fault(host.Stderr(), f.Prefix(), f.Message)
	host.Exit(1)
}

// checkBounds is the pure core of BoundsCheck: nil means the index is
// within [0, length).
func checkBounds(index, length int64) *Fault {
	if index < 0 || index >= length {
		return outOfBoundsFault(index, length)
	}
	return nil
}

func checkAssert(cond bool, msg string) *Fault {
	if cond {
		return nil
	}
	return assertFault(msg)
}

func checkRequire(cond bool, msg string) *Fault {
	if cond {
		return nil
	}
	return requireFault(msg)
}

// Panic reports msg on the error stream and terminates with status 1.
func Panic(msg string) {
	fail(panicFault(msg))
}

// BoundsCheck terminates the program when index is outside [0, length).
// The diagnostic carries both operands.
func BoundsCheck(index, length int64) {
	if f := checkBounds(index, length); f != nil {
		fail(f)
	}
}

// NullCheck terminates the program when ref is null.
func NullCheck[T any](ref *T) {
	if ref == nil {
		fail(nullDerefFault())
	}
}

// AssertCheck terminates the program under the "assertion failed" label
// when cond is false. Generated code uses it for internal invariants.
func AssertCheck(cond bool, msg string) {
	if f := checkAssert(cond, msg); f != nil {
		fail(f)
	}
}

// RequireCheck terminates the program under the "requirement failed" label
// when cond is false. Generated code uses it for caller-facing preconditions.
func RequireCheck(cond bool, msg string) {
	if f := checkRequire(cond, msg); f != nil {
		fail(f)
	}
}
