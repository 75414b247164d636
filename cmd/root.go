// Package cmd defines the forkpatch command line surface. The bare command
// runs the full synchronization; subcommands cover status inspection and
// version reporting.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/forkpatch/forkpatch/internal/git/backend"
	"github.com/forkpatch/forkpatch/internal/sync"
)

var (
	rootRepoPath string
	rootRemote   string
	rootURL      string
	rootBranch   string
	rootVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "forkpatch",
	Short: "Sync a fork with its upstream and tag the result as a patch snapshot",
	Long: `forkpatch keeps a fork's local branch aligned with an upstream repository.

It fetches the upstream remote (adding it first when missing), resolves the
latest release tag reachable from the upstream branch and then either tags
HEAD as the next <version>-p<N> patch snapshot, or rebases onto a newer
upstream release and restarts the patch series at <version>-p1.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if rootVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := backend.OpenCLI(rootRepoPath)
		if err != nil {
			return err
		}
		syncer := sync.New(b, sync.Options{
			RemoteName: rootRemote,
			RemoteURL:  rootURL,
			Branch:     rootBranch,
			Progress:   cmd.OutOrStdout(),
		})
		_, err = syncer.Run()
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootRepoPath, "repo", "C", ".", "path to the fork's working tree")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().StringVar(&rootRemote, "remote", sync.DefaultRemoteName, "reserved name of the upstream remote")
	rootCmd.Flags().StringVar(&rootURL, "url", sync.DefaultRemoteURL, "upstream repository URL, used when the remote is added")
	rootCmd.Flags().StringVar(&rootBranch, "branch", sync.DefaultBranch, "upstream branch to track")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(versionCmd)
}
