// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/naka-gawa/repo-insights/internal/domain"
)

// RepositoryAnalyzer fetches a repository snapshot with its analytics.
type RepositoryAnalyzer interface {
	Fetch(ctx context.Context, owner, repo string) (*domain.RepositoryDetails, error)
}

// ActivityReader fetches the activity window of a repository.
type ActivityReader interface {
	Fetch(ctx context.Context, owner, repo string) *domain.ActivityWindow
}

// ProfileReader fetches a user profile.
type ProfileReader interface {
	Fetch(ctx context.Context, login string) (*domain.Profile, error)
}

// Services are the use cases exposed as tools.
type Services struct {
	Snapshots RepositoryAnalyzer
	Activity  ActivityReader
	Profiles  ProfileReader
}

// NewMCPServer initializes and configures the MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(svc Services, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Repository Insights Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{svc: svc}

	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Fetch a GitHub repository and compute its health, activity and community scores, language distribution, commit trend and category."),
		mcp.WithString("repository", mcp.Description("Repository as owner/repo or a GitHub URL."), mcp.Required()),
	), h.handleAnalyzeRepository)

	s.AddTool(mcp.NewTool("repository_activity",
		mcp.WithDescription("Summarize recent issues, pull requests and events of a GitHub repository as a 12 month heatmap."),
		mcp.WithString("repository", mcp.Description("Repository as owner/repo or a GitHub URL."), mcp.Required()),
	), h.handleRepositoryActivity)

	s.AddTool(mcp.NewTool("compare_repositories",
		mcp.WithDescription("Compare two GitHub repositories side by side and pick a weighted winner."),
		mcp.WithString("first", mcp.Description("First repository as owner/repo or a GitHub URL."), mcp.Required()),
		mcp.WithString("second", mcp.Description("Second repository as owner/repo or a GitHub URL."), mcp.Required()),
	), h.handleCompareRepositories)

	s.AddTool(mcp.NewTool("user_profile",
		mcp.WithDescription("Fetch a GitHub user with their most starred repositories and a short summary."),
		mcp.WithString("login", mcp.Description("GitHub login."), mcp.Required()),
	), h.handleUserProfile)

	return s
}

// StartMCPServer serves the tools over stdio until the input closes.
func StartMCPServer(_ context.Context, svc Services, version string) error {
	s := NewMCPServer(svc, version)
	return server.ServeStdio(s)
}
