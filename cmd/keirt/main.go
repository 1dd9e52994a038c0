package main

import (
	"os"

	"github.com/spf13/cobra"

	"kei/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "keirt",
	Short: "Kei runtime support tool",
	Long:  `keirt inspects and exercises the runtime linked into compiled Kei programs`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(nativeCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
