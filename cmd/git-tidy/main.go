package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bral/git-tidy/internal/cleanup"
	"github.com/bral/git-tidy/internal/prompt"
)

var rootCmd = &cobra.Command{
	Use:     "git-tidy",
	Version: "0.1.0",
	Short:   "git-tidy interactively deletes local branches whose upstream is gone",
	Long: `git-tidy looks for local branches that have no upstream, or whose
upstream has been deleted on the remote, and walks you through removing
them. The default branch (main or master) is protected, the currently
checked-out branch is never deleted, and a refused safe deletion can be
escalated to a forced one after an explicit confirmation.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var opts cleanup.Options
		opts.Remote, _ = cmd.Flags().GetString("remote")
		opts.NoFetch, _ = cmd.Flags().GetBool("no-fetch")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		opts.Candidates = [2]string{"main", "master"}
		protected, _ := cmd.Flags().GetStringSlice("protected")
		for i := 0; i < len(protected) && i < len(opts.Candidates); i++ {
			if name := strings.TrimSpace(protected[i]); name != "" {
				opts.Candidates[i] = name
			}
		}

		p := prompt.New(os.Stdin, os.Stdout)
		return cleanup.Run(context.Background(), opts, p, os.Stdout)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("dry-run", false, "Show the deletion plan without deleting anything.")
	rootCmd.Flags().Bool("no-fetch", false, "Skip the 'git fetch --prune' before listing branches.")
	rootCmd.Flags().StringP("remote", "r", "origin", "Remote to fetch from before classifying branches.")
	rootCmd.Flags().StringSlice("protected", nil, "Override the default-branch candidate names (at most two; default main,master).")
	rootCmd.Flags().Bool("debug", false, "Enable debug output.")
}
