package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/usecase"
	"golang.org/x/sync/errgroup"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	svc Services
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func parseRef(request mcp.CallToolRequest, key string) (owner, repo string, errResult *mcp.CallToolResult) {
	ref := request.GetString(key, "")
	if ref == "" {
		return "", "", mcp.NewToolResultError(fmt.Sprintf("%s is required", key))
	}
	owner, repo, err := usecase.ParseRepositoryRef(ref)
	if err != nil {
		return "", "", mcp.NewToolResultError(err.Error())
	}
	return owner, repo, nil
}

func (h *toolHandler) handleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, errResult := parseRef(request, "repository")
	if errResult != nil {
		return errResult, nil
	}
	details, err := h.svc.Snapshots.Fetch(ctx, owner, repo)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(details)
}

func (h *toolHandler) handleRepositoryActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, errResult := parseRef(request, "repository")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(h.svc.Activity.Fetch(ctx, owner, repo))
}

func (h *toolHandler) handleCompareRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner1, repo1, errResult := parseRef(request, "first")
	if errResult != nil {
		return errResult, nil
	}
	owner2, repo2, errResult := parseRef(request, "second")
	if errResult != nil {
		return errResult, nil
	}

	var first, second *domain.RepositoryDetails
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		first, err = h.svc.Snapshots.Fetch(egCtx, owner1, repo1)
		return err
	})
	eg.Go(func() error {
		var err error
		second, err = h.svc.Snapshots.Fetch(egCtx, owner2, repo2)
		return err
	})
	if err := eg.Wait(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(usecase.Compare(first, second))
}

func (h *toolHandler) handleUserProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	login := request.GetString("login", "")
	if login == "" {
		return mcp.NewToolResultError("login is required"), nil
	}
	profile, err := h.svc.Profiles.Fetch(ctx, login)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(profile)
}
