package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kei/internal/trace"
)

func writeSampleTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heap.trace")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create trace file: %v", err)
	}
	st := trace.NewStreamTracer(f)
	st.Emit(&trace.Event{Kind: trace.KindAlloc, AllocID: 1, Refs: 1, Len: 6})
	st.Emit(&trace.Event{Kind: trace.KindRetain, AllocID: 1, Refs: 2, Len: 6})
	st.Emit(&trace.Event{Kind: trace.KindRelease, AllocID: 1, Refs: 1, Len: 6})
	st.Emit(&trace.Event{Kind: trace.KindRelease, AllocID: 1, Refs: 0, Len: 6})
	st.Emit(&trace.Event{Kind: trace.KindFree, AllocID: 1, Refs: 0, Len: 6})
	if err := st.Close(); err != nil {
		t.Fatalf("failed to close trace file: %v", err)
	}
	return path
}

func TestTraceCommandPrintsEvents(t *testing.T) {
	path := writeSampleTrace(t)

	var buf bytes.Buffer
	traceCmd.SetOut(&buf)
	defer traceCmd.SetOut(nil)

	if err := runTrace(traceCmd, []string{path}); err != nil {
		t.Fatalf("trace command failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"alloc", "retain", "release", "free", "#1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "5 events, 1 allocations, 1 freed, 0 leaked") {
		t.Errorf("unexpected summary in output:\n%s", out)
	}
}

func TestTraceCommandEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.trace")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var buf bytes.Buffer
	traceCmd.SetOut(&buf)
	defer traceCmd.SetOut(nil)

	if err := runTrace(traceCmd, []string{path}); err != nil {
		t.Fatalf("trace command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "trace is empty") {
		t.Errorf("expected empty-trace notice, got %q", buf.String())
	}
}

func TestTraceCommandMissingFile(t *testing.T) {
	if err := runTrace(traceCmd, []string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
