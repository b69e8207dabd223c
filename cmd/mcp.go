package cmd

import (
	"github.com/naka-gawa/repo-insights/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serves the analyses as Model Context Protocol tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(cmd.Context(), mcp.Services{
			Snapshots: a.snapshotFetcher(),
			Activity:  a.activityFetcher(),
			Profiles:  a.profileFetcher(),
		}, version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
