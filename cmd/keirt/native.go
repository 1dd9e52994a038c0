package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	runtimeembed "kei/runtime"
)

var nativeCmd = &cobra.Command{
	Use:   "native [dir]",
	Short: "Export the native C runtime sources",
	Long:  "Write the embedded C runtime header linked into native Kei builds to a directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNative,
}

func runNative(cmd *cobra.Command, args []string) error {
	outDir := "."
	if len(args) > 0 && args[0] != "" {
		outDir = args[0]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", outDir, err)
	}

	nativeFS := runtimeembed.NativeRuntimeFS()
	entries, err := fs.ReadDir(nativeFS, "native")
	if err != nil {
		return fmt.Errorf("failed to read embedded runtime: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(nativeFS, "native/"+entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", entry.Name(), err)
		}
		dst := filepath.Join(outDir, entry.Name())
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", dst, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dst)
	}
	return nil
}
