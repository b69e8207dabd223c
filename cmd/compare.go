package cmd

import (
	"os"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/render"
	"github.com/naka-gawa/repo-insights/internal/usecase"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var compareCmd = &cobra.Command{
	Use:   "compare <first> <second>",
	Short: "Compares two repositories side by side",
	Long: `Analyzes both repositories and outputs a metric table, radar chart values,
the strengths of each side and a weighted overall winner.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		type ref struct{ owner, repo string }
		refs := make([]ref, len(args))
		for i, arg := range args {
			owner, repo, err := usecase.ParseRepositoryRef(arg)
			if err != nil {
				return err
			}
			refs[i] = ref{owner, repo}
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		fetcher := a.snapshotFetcher()

		results := make([]*domain.RepositoryDetails, len(refs))
		eg, egCtx := errgroup.WithContext(cmd.Context())
		for i, r := range refs {
			eg.Go(func() error {
				var err error
				results[i], err = fetcher.Fetch(egCtx, r.owner, r.repo)
				return err
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		comparison := usecase.Compare(results[0], results[1])
		return render.Comparison(os.Stdout, &comparison, a.renderOptions())
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
