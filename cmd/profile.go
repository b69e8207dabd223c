package cmd

import (
	"os"

	"github.com/naka-gawa/repo-insights/internal/render"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <login>",
	Short: "Outputs a user's profile, top repositories and a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		profile, err := a.profileFetcher().Fetch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render.Profile(os.Stdout, profile, a.renderOptions())
	},
}

var developersCmd = &cobra.Command{
	Use:   "developers <login>...",
	Short: "Enriches a list of developers with stars, languages and a badge",
	Long: `Looks up each developer and their top repositories in small batches with a
short pause in between, retrying failed requests. Developers that cannot be
looked up are still listed with the default badge.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		developers, err := a.developerEnricher().Enrich(cmd.Context(), args)
		if err != nil {
			return err
		}
		return render.Developers(os.Stdout, developers, a.renderOptions())
	},
}

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Outputs the remaining GitHub API quota",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		limit, err := a.gateway.GetRateLimit(cmd.Context())
		if err != nil {
			return err
		}
		return render.RateLimit(os.Stdout, limit, a.renderOptions())
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(developersCmd)
	rootCmd.AddCommand(rateLimitCmd)
}
