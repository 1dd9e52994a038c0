package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"kei/internal/trace"
)

var traceHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Decode and print a heap trace",
	Long:  "Decode a msgpack heap trace produced by a traced Kei program and print the event table.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func runTrace(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to close trace: %v\n", closeErr)
		}
	}()

	events, err := trace.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to decode trace: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "trace is empty")
		return nil
	}

	headers := []string{"seq", "event", "alloc", "refs", "len"}
	rows := make([][]string, 0, len(events))
	allocs, frees := 0, 0
	for _, ev := range events {
		switch ev.Kind {
		case trace.KindAlloc:
			allocs++
		case trace.KindFree:
			frees++
		}
		rows = append(rows, []string{
			strconv.FormatUint(ev.Seq, 10),
			ev.Kind.String(),
			"#" + strconv.FormatUint(ev.AllocID, 10),
			strconv.Itoa(ev.Refs),
			strconv.Itoa(ev.Len),
		})
	}

	widths := make([]int, len(headers))
	for i, hdr := range headers {
		widths[i] = runewidth.StringWidth(hdr)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i, hdr := range headers {
		fmt.Fprint(out, traceHeaderStyle.Render(runewidth.FillRight(hdr, widths[i])))
		if i < len(headers)-1 {
			fmt.Fprint(out, "  ")
		}
	}
	fmt.Fprintln(out)
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(out, runewidth.FillRight(cell, widths[i]))
			if i < len(row)-1 {
				fmt.Fprint(out, "  ")
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "\n%d events, %d allocations, %d freed, %d leaked\n",
		len(events), allocs, frees, allocs-frees)
	return nil
}
