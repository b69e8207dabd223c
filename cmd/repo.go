package cmd

import (
	"os"

	"github.com/naka-gawa/repo-insights/internal/render"
	"github.com/naka-gawa/repo-insights/internal/usecase"
	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo <owner/repo | url>",
	Short: "Analyzes a repository and outputs its scores and statistics",
	Long: `Fetches repository metadata, a sample of contributors, commits, releases, tags
and branches, and their inferred totals, then computes age, language distribution,
commit trend, release frequency, a category, and health/activity/community scores.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, repo, err := usecase.ParseRepositoryRef(args[0])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		details, err := a.snapshotFetcher().Fetch(cmd.Context(), owner, repo)
		if err != nil {
			return err
		}
		return render.Repository(os.Stdout, details, a.renderOptions())
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity <owner/repo | url>",
	Short: "Outputs recent issue, pull request and event activity of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, repo, err := usecase.ParseRepositoryRef(args[0])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		window := a.activityFetcher().Fetch(cmd.Context(), owner, repo)
		return render.Activity(os.Stdout, window, a.renderOptions())
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(activityCmd)
}
