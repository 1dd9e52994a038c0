package rt

import (
	"bytes"
	"io"
	"os"

	"kei/internal/trace"
)

// Host provides the interface between the runtime and the outside world.
// The OS host terminates the process on Exit; the test host records the
// exit so fault paths can be exercised in-process.
type Host interface {
	// Stdout returns the stream print shims write to.
	Stdout() io.Writer

	// Stderr returns the stream fault diagnostics are written to.
	Stderr() io.Writer

	// Exit terminates the program with the given exit code.
	Exit(code int)
}

// OSHost implements Host using OS facilities. Exit never returns.
type OSHost struct{}

// NewOSHost creates a host backed by the real process streams.
func NewOSHost() *OSHost {
	return &OSHost{}
}

func (*OSHost) Stdout() io.Writer { return os.Stdout }

func (*OSHost) Stderr() io.Writer { return os.Stderr }

func (*OSHost) Exit(code int) {
	os.Exit(code)
}

// TestHost implements Host with captured streams and a recorded exit code.
type TestHost struct {
	out      bytes.Buffer
	errOut   bytes.Buffer
	exitCode int
	exited   bool
}

// NewTestHost creates a test host with empty streams and no exit recorded.
func NewTestHost() *TestHost {
	return &TestHost{exitCode: -1}
}

func (h *TestHost) Stdout() io.Writer { return &h.out }

func (h *TestHost) Stderr() io.Writer { return &h.errOut }

func (h *TestHost) Exit(code int) {
	// First exit wins; a fault path may be followed by unreachable code in
	// tests because the test host returns instead of terminating.
	if h.exited {
		return
	}
	h.exitCode = code
	h.exited = true
}

// ExitCode returns the exit code set by Exit, or -1 if not set.
func (h *TestHost) ExitCode() int { return h.exitCode }

// Exited returns true if Exit was called.
func (h *TestHost) Exited() bool { return h.exited }

// StdoutString returns everything written to the captured stdout.
func (h *TestHost) StdoutString() string { return h.out.String() }

// StderrString returns everything written to the captured stderr.
func (h *TestHost) StderrString() string { return h.errOut.String() }

var (
	host   Host         = NewOSHost()
	tracer trace.Tracer = trace.Nop
)

// SetHost installs a host and returns the previous one.
func SetHost(h Host) Host {
	prev := host
	if h == nil {
		h = NewOSHost()
	}
	host = h
	return prev
}

// SetTracer installs a heap tracer and returns the previous one.
func SetTracer(t trace.Tracer) trace.Tracer {
	prev := tracer
	if t == nil {
		t = trace.Nop
	}
	tracer = t
	return prev
}
