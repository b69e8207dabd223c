package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/naka-gawa/repo-insights/internal/domain"
	mcp_internal "github.com/naka-gawa/repo-insights/internal/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnapshots map[string]*domain.RepositoryDetails

func (s stubSnapshots) Fetch(_ context.Context, owner, repo string) (*domain.RepositoryDetails, error) {
	if d, ok := s[owner+"/"+repo]; ok {
		return d, nil
	}
	return nil, &domain.NotFoundError{Owner: owner, Repo: repo}
}

type stubActivity struct{}

func (stubActivity) Fetch(_ context.Context, _, _ string) *domain.ActivityWindow {
	return &domain.ActivityWindow{TopContributors: []domain.ActorActivity{{Login: "bob", Activity: 3}}}
}

type stubProfiles struct{}

func (stubProfiles) Fetch(_ context.Context, login string) (*domain.Profile, error) {
	if login != "octo" {
		return nil, &domain.UserNotFoundError{Login: login}
	}
	return &domain.Profile{User: domain.User{Login: "octo"}, Summary: "octo is a developer."}, nil
}

func newTestServices() mcp_internal.Services {
	repo := func(name string, stars int) *domain.RepositoryDetails {
		return &domain.RepositoryDetails{
			Snapshot:  domain.RepositorySnapshot{Repository: domain.Repository{FullName: name, Stars: stars}},
			Analytics: domain.RepositoryAnalytics{Scores: domain.Scores{Health: 50}},
		}
	}
	return mcp_internal.Services{
		Snapshots: stubSnapshots{"octo/hello": repo("octo/hello", 10), "octo/world": repo("octo/world", 99)},
		Activity:  stubActivity{},
		Profiles:  stubProfiles{},
	}
}

func call(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(newTestServices(), "test")
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_Errors(t *testing.T) {
	testCases := []struct {
		tool     string
		args     map[string]any
		expected string
	}{
		{tool: "analyze_repository", args: map[string]any{}, expected: "repository is required"},
		{tool: "analyze_repository", args: map[string]any{"repository": "not a repo"}, expected: "Invalid GitHub repository URL or format"},
		{tool: "analyze_repository", args: map[string]any{"repository": "octo/missing"}, expected: `Repository "octo/missing" not found`},
		{tool: "repository_activity", args: map[string]any{"repository": "nope"}, expected: "Invalid GitHub repository URL"},
		{tool: "compare_repositories", args: map[string]any{"first": "octo/hello"}, expected: "second is required"},
		{tool: "compare_repositories", args: map[string]any{"first": "octo/hello", "second": "octo/gone"}, expected: `Repository "octo/gone" not found`},
		{tool: "user_profile", args: map[string]any{"login": "ghost"}, expected: `User "ghost" not found`},
	}
	for _, tc := range testCases {
		t.Run(tc.tool+" "+tc.expected, func(t *testing.T) {
			res := call(t, tc.tool, tc.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, text(res), tc.expected)
		})
	}
}

func TestMCPServerHandlers_Results(t *testing.T) {
	t.Run("analyze_repository accepts URLs", func(t *testing.T) {
		res := call(t, "analyze_repository", map[string]any{"repository": "https://github.com/octo/hello.git"})
		require.False(t, res.IsError)

		var details domain.RepositoryDetails
		require.NoError(t, json.Unmarshal([]byte(text(res)), &details))
		assert.Equal(t, "octo/hello", details.Snapshot.Repository.FullName)
	})

	t.Run("repository_activity", func(t *testing.T) {
		res := call(t, "repository_activity", map[string]any{"repository": "octo/hello"})
		require.False(t, res.IsError)
		assert.Contains(t, text(res), `"login": "bob"`)
	})

	t.Run("compare_repositories", func(t *testing.T) {
		res := call(t, "compare_repositories", map[string]any{"first": "octo/hello", "second": "octo/world"})
		require.False(t, res.IsError)

		var comparison domain.Comparison
		require.NoError(t, json.Unmarshal([]byte(text(res)), &comparison))
		assert.Equal(t, domain.SideSecond, comparison.Verdict.Winner)
		assert.Equal(t, "octo/world (Score: 3.0)", comparison.Verdict.Summary)
	})

	t.Run("user_profile", func(t *testing.T) {
		res := call(t, "user_profile", map[string]any{"login": "octo"})
		require.False(t, res.IsError)
		assert.Contains(t, text(res), "octo is a developer.")
	})
}
