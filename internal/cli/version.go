package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set via -ldflags "-X intervalcoach/internal/cli.version=...".
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "intervalcoach %s\n", version)
		fmt.Fprintf(out, "  commit:     %s\n", commit)
		fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
	},
}
