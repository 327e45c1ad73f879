// Package version prints build information for the binary.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// These are set via ldflags at build time.
// Example: go build -ldflags "-X hyeonwoo/receipt-ledger/cmd/version.Version=1.0.0"
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Cmd represents the version command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   versionFunc,
}

func versionFunc(cmd *cobra.Command, args []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "receipt-ledger %s (commit %s, built %s)\n",
		Version, GitCommit, BuildTime)
}
