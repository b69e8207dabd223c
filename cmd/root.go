// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/naka-gawa/repo-insights/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "repo-insights",
	Short: "A CLI tool to analyze GitHub repositories and developers.",
	Long: `repo-insights fetches a GitHub repository's metadata, contributors, commits,
releases and issue counts, and derives health, activity and community scores,
language distribution and commit trends from them. Repositories can be compared
side by side, and user profiles summarized.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(viper.GetViper())

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./.repo-insights.yaml or $HOME/.repo-insights.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", config.JSONOut, "Output format (json or table)")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (defaults to $GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("base-url", config.DefaultBaseURL, "GitHub REST API base URL")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Timeout of each GitHub request")
	rootCmd.PersistentFlags().Bool("color", true, "Colorize table output")
	rootCmd.PersistentFlags().Bool("graphql-counts", false, "Read issue and pull request totals with one GraphQL query first")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}
}
