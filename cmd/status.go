package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkpatch/forkpatch/internal/git"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show HEAD, its tags and the local patch series without mutating anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := git.Open(rootRepoPath)
			if err != nil {
				return err
			}
			st, err := svc.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if st.Branch != "" {
				fmt.Fprintf(out, "HEAD: %s (%s)\n", st.Head, st.Branch)
			} else {
				fmt.Fprintf(out, "HEAD: %s (detached)\n", st.Head)
			}
			if len(st.HeadTags) == 0 {
				fmt.Fprintln(out, "Tags at HEAD: none")
			} else {
				for _, tag := range st.HeadTags {
					fmt.Fprintf(out, "Tag at HEAD: %s\n", tag)
				}
			}
			if len(st.Series) == 0 {
				fmt.Fprintln(out, "Patch series: none")
				return nil
			}
			for _, series := range st.Series {
				fmt.Fprintf(out, "Patch series %s: highest p%d\n", series.Base, series.Highest)
			}
			return nil
		},
	}
}
