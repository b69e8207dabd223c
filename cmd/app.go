package cmd

import (
	"io"
	"log"
	"os"

	"github.com/naka-gawa/repo-insights/internal/config"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"github.com/naka-gawa/repo-insights/internal/render"
	"github.com/naka-gawa/repo-insights/internal/usecase"
	"github.com/spf13/viper"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	gateway *gateway.GitHubGateway
}

// newApp loads the configuration and injects dependencies.
func newApp() (*app, error) {
	cfg, err := config.Load(viper.GetViper(), viper.GetString("config"))
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if cfg.Verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg.Gateway(), logger)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, gateway: githubGateway}, nil
}

func (a *app) renderOptions() render.Options {
	return render.Options{Format: render.Format(a.cfg.Output), Color: a.cfg.Color}
}

func (a *app) snapshotFetcher() *usecase.SnapshotFetcher {
	return usecase.NewSnapshotFetcher(a.gateway, a.logger, usecase.SnapshotOptions{GraphQLCounts: a.cfg.GraphQLCounts})
}

func (a *app) activityFetcher() *usecase.ActivityFetcher {
	return usecase.NewActivityFetcher(a.gateway, a.logger, nil)
}

func (a *app) profileFetcher() *usecase.ProfileFetcher {
	return usecase.NewProfileFetcher(a.gateway, a.logger, a.cfg.ProfileRepos)
}

func (a *app) developerEnricher() *usecase.DeveloperEnricher {
	return usecase.NewDeveloperEnricher(a.gateway, a.logger, usecase.EnrichOptions{
		BatchSize:     a.cfg.BatchSize,
		BatchDelay:    a.cfg.BatchDelay,
		RetryAttempts: a.cfg.RetryAttempts,
		RetryWait:     a.cfg.RetryWait,
		RateLimitWait: a.cfg.RateLimitWait,
	})
}
