package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"kei/internal/config"
	"kei/internal/diag"
	"kei/internal/rt"
	"kei/internal/trace"
)

var (
	doctorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	doctorOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	doctorFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [path]",
	Short: "Run runtime self-checks",
	Long:  "Exercise the string, fault and print primitives in-process and report the results.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDoctor,
}

type doctorCheck struct {
	name string
	run  func() error
}

func runDoctor(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) > 0 && args[0] != "" {
		startDir = args[0]
	}
	cfg, err := config.Discover(startDir)
	if err != nil {
		return err
	}
	if err := applyRuntimeConfig(cmd, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, doctorTitleStyle.Render("kei runtime self-checks"))

	checks := []doctorCheck{
		{"refcount balance", checkRefcountBalance},
		{"unowned destroy", checkUnownedDestroy},
		{"concat semantics", checkConcat},
		{"substring clamping", checkSubstringClamps},
		{"equals fast path", checkEquals},
		{"bounds arithmetic", checkBounds},
		{"double-free detection", checkDoubleFree},
	}

	nameWidth := 0
	for _, c := range checks {
		if w := runewidth.StringWidth(c.name); w > nameWidth {
			nameWidth = w
		}
	}

	failed := 0
	for _, c := range checks {
		err := c.run()
		status := doctorOKStyle.Render("ok")
		if err != nil {
			status = doctorFailStyle.Render("FAIL") + "  " + err.Error()
			failed++
		}
		fmt.Fprintf(out, "  %s  %s\n", runewidth.FillRight(c.name, nameWidth), status)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	fmt.Fprintf(out, "all %d checks passed\n", len(checks))
	return nil
}

// applyRuntimeConfig wires kei.toml and the --color flag into the runtime:
// diagnostic color mode, heap debug ledger and the optional heap trace.
func applyRuntimeConfig(cmd *cobra.Command, cfg *config.File) error {
	colorValue := cfg.Runtime.Color
	if flag := cmd.Flags().Lookup("color"); flag != nil && flag.Changed {
		colorValue = flag.Value.String()
	} else if root := cmd.Root(); root != nil {
		if flag := root.PersistentFlags().Lookup("color"); flag != nil && flag.Changed {
			colorValue = flag.Value.String()
		}
	}
	mode, err := diag.ParseMode(colorValue)
	if err != nil {
		return err
	}
	diag.SetMode(mode)

	rt.EnableHeapDebug(cfg.Runtime.HeapDebug)

	if cfg.Runtime.Trace != "" {
		f, err := os.Create(cfg.Runtime.Trace)
		if err != nil {
			return fmt.Errorf("failed to open trace output: %w", err)
		}
		rt.SetTracer(trace.NewStreamTracer(f))
	}
	return nil
}

// withCapturedRuntime runs fn against a test host so runtime faults are
// recorded instead of terminating the tool, and reports whether a fault
// fired.
func withCapturedRuntime(fn func()) *rt.TestHost {
	h := rt.NewTestHost()
	prev := rt.SetHost(h)
	defer rt.SetHost(prev)
	fn()
	return h
}

func checkRefcountBalance() error {
	var refsAfterCopy int
	h := withCapturedRuntime(func() {
		s := rt.Concat(rt.Literal([]byte("kei")), rt.Literal([]byte("rt")))
		aliases := [3]rt.Str{rt.Copy(s), rt.Copy(s), rt.Copy(s)}
		refsAfterCopy = s.Refs()
		for i := range aliases {
			rt.Destroy(&aliases[i])
		}
		rt.Destroy(&s)
	})
	if h.Exited() {
		return fmt.Errorf("unexpected fault: %s", h.StderrString())
	}
	if refsAfterCopy != 4 {
		return fmt.Errorf("expected counter 4 after three copies, got %d", refsAfterCopy)
	}
	return nil
}

func checkUnownedDestroy() error {
	h := withCapturedRuntime(func() {
		s := rt.Literal([]byte("static"))
		rt.Destroy(&s)
		rt.Destroy(&s)
	})
	if h.Exited() {
		return fmt.Errorf("destroy of an unowned string faulted: %s", h.StderrString())
	}
	return nil
}

func checkConcat() error {
	var got string
	var n int64
	h := withCapturedRuntime(func() {
		s := rt.Concat(rt.Literal([]byte("foo")), rt.Literal([]byte("bar")))
		got = s.String()
		n = rt.Len(s)
		rt.Destroy(&s)
	})
	if h.Exited() {
		return fmt.Errorf("unexpected fault: %s", h.StderrString())
	}
	if got != "foobar" || n != 6 {
		return fmt.Errorf("concat produced %q (len %d)", got, n)
	}
	return nil
}

func checkSubstringClamps() error {
	var hell, ello, empty string
	var emptyOwned bool
	h := withCapturedRuntime(func() {
		s := rt.Literal([]byte("hello"))
		a := rt.Substring(s, -3, 4)
		b := rt.Substring(s, 1, 100)
		c := rt.Substring(s, 3, 3)
		hell, ello, empty = a.String(), b.String(), c.String()
		emptyOwned = c.Owned()
		rt.Destroy(&a)
		rt.Destroy(&b)
	})
	if h.Exited() {
		return fmt.Errorf("unexpected fault: %s", h.StderrString())
	}
	if hell != "hell" || ello != "ello" || empty != "" {
		return fmt.Errorf("clamping produced %q, %q, %q", hell, ello, empty)
	}
	if emptyOwned {
		return fmt.Errorf("empty substring should be unowned")
	}
	return nil
}

func checkEquals() error {
	var viaAlias, viaBytes, diff bool
	h := withCapturedRuntime(func() {
		s := rt.Concat(rt.Literal([]byte("abc")), rt.Empty)
		alias := rt.Copy(s)
		viaAlias = rt.Equals(s, alias)
		viaBytes = rt.Equals(s, rt.Literal([]byte("abc")))
		diff = rt.Equals(s, rt.Literal([]byte("abd")))
		rt.Destroy(&alias)
		rt.Destroy(&s)
	})
	if h.Exited() {
		return fmt.Errorf("unexpected fault: %s", h.StderrString())
	}
	if !viaAlias || !viaBytes || diff {
		return fmt.Errorf("equals mismatch: alias=%v bytes=%v diff=%v", viaAlias, viaBytes, diff)
	}
	return nil
}

func checkBounds() error {
	pass := withCapturedRuntime(func() { rt.BoundsCheck(4, 5) })
	if pass.Exited() {
		return fmt.Errorf("in-range index faulted: %s", pass.StderrString())
	}
	fail := withCapturedRuntime(func() { rt.BoundsCheck(5, 5) })
	if !fail.Exited() || fail.ExitCode() != 1 {
		return fmt.Errorf("out-of-range index did not fault with status 1")
	}
	return nil
}

func checkDoubleFree() error {
	h := withCapturedRuntime(func() {
		s := rt.Alloc(1)
		rt.Destroy(&s)
		rt.Destroy(&s)
	})
	if !h.Exited() || h.ExitCode() != 1 {
		return fmt.Errorf("double destroy was not detected")
	}
	return nil
}
