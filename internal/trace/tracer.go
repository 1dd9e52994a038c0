package trace

// Tracer receives heap lifecycle events. The runtime is single-threaded,
// so implementations do not need to be goroutine-safe.
type Tracer interface {
	// Emit records a heap event.
	Emit(ev *Event)

	// Close flushes and releases resources.
	Close() error

	// Enabled returns true if tracing is active.
	Enabled() bool
}

var seq uint64

// NextSeq returns the next event sequence number.
func NextSeq() uint64 {
	seq++
	return seq
}
