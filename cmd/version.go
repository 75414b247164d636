package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkpatch/forkpatch/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "forkpatch %s\n", buildinfo.String())
	},
}
