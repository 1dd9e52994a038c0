package rt_test

import (
	"strconv"
	"strings"
	"testing"

	"kei/internal/rt"
)

func TestPanicDiagnosticAndStatus(t *testing.T) {
	h := withTestHost(t)
	rt.Panic("boom")
	if !h.Exited() {
		t.Fatal("expected panic to exit")
	}
	if h.ExitCode() != 1 {
		t.Errorf("expected exit code 1, got %d", h.ExitCode())
	}
	if h.StderrString() != "panic: boom\n" {
		t.Errorf("expected %q, got %q", "panic: boom\n", h.StderrString())
	}
}

func TestBoundsCheckInRange(t *testing.T) {
	h := withTestHost(t)
	for i := int64(0); i < 5; i++ {
		rt.BoundsCheck(i, 5)
	}
	if h.Exited() {
		t.Fatalf("in-range index should not exit: %s", h.StderrString())
	}
	if h.StderrString() != "" {
		t.Errorf("expected no output, got %q", h.StderrString())
	}
}

func TestBoundsCheckOutOfRange(t *testing.T) {
	cases := []struct {
		index, length int64
	}{
		{5, 5},
		{-1, 5},
		{100, 5},
		{0, 0},
	}
	for _, tc := range cases {
		h := rt.NewTestHost()
		prev := rt.SetHost(h)
		rt.BoundsCheck(tc.index, tc.length)
		rt.SetHost(prev)

		if !h.Exited() {
			t.Errorf("boundsCheck(%d, %d): expected exit", tc.index, tc.length)
			continue
		}
		if h.ExitCode() != 1 {
			t.Errorf("boundsCheck(%d, %d): expected exit code 1, got %d", tc.index, tc.length, h.ExitCode())
		}
		out := h.StderrString()
		if !strings.HasPrefix(out, "panic: index out of bounds") {
			t.Errorf("boundsCheck(%d, %d): unexpected diagnostic %q", tc.index, tc.length, out)
		}
		wantIndex := "index " + strconv.FormatInt(tc.index, 10)
		wantLength := "length " + strconv.FormatInt(tc.length, 10)
		if !strings.Contains(out, wantIndex) || !strings.Contains(out, wantLength) {
			t.Errorf("boundsCheck(%d, %d): diagnostic should carry both operands, got %q", tc.index, tc.length, out)
		}
	}
}

func TestNullCheck(t *testing.T) {
	h := withTestHost(t)
	v := 7
	rt.NullCheck(&v)
	if h.Exited() {
		t.Fatalf("non-null ref should pass: %s", h.StderrString())
	}

	var p *int
	rt.NullCheck(p)
	if !h.Exited() {
		t.Fatal("expected null deref to exit")
	}
	if h.StderrString() != "panic: null pointer dereference\n" {
		t.Errorf("unexpected diagnostic %q", h.StderrString())
	}
}

func TestAssertCheckLabel(t *testing.T) {
	h := withTestHost(t)
	rt.AssertCheck(true, "never shown")
	if h.Exited() {
		t.Fatalf("true assertion should pass: %s", h.StderrString())
	}

	rt.AssertCheck(false, "list is sorted")
	if !h.Exited() {
		t.Fatal("expected failed assertion to exit")
	}
	if h.StderrString() != "assertion failed: list is sorted\n" {
		t.Errorf("unexpected diagnostic %q", h.StderrString())
	}
}

func TestRequireCheckLabel(t *testing.T) {
	h := withTestHost(t)
	rt.RequireCheck(true, "never shown")
	if h.Exited() {
		t.Fatalf("true requirement should pass: %s", h.StderrString())
	}

	rt.RequireCheck(false, "n must be positive")
	if !h.Exited() {
		t.Fatal("expected failed requirement to exit")
	}
	if h.StderrString() != "requirement failed: n must be positive\n" {
		t.Errorf("unexpected diagnostic %q", h.StderrString())
	}
}
