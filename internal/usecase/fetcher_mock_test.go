package usecase

import (
	"context"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) GetRepository(ctx context.Context, owner, repo string) (*domain.Repository, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repository), args.Error(1)
}

func (m *mockFetcher) ListContributors(ctx context.Context, owner, repo string, opts gateway.ContributorListOptions) ([]domain.Contributor, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Contributor)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) GetLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	args := m.Called(ctx, owner, repo)
	langs, _ := args.Get(0).(map[string]int)
	return langs, args.Error(1)
}

func (m *mockFetcher) ListCommits(ctx context.Context, owner, repo string, opts gateway.ListOptions) ([]domain.Commit, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Commit)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) ListReleases(ctx context.Context, owner, repo string, opts gateway.ListOptions) ([]domain.Release, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Release)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) ListTags(ctx context.Context, owner, repo string, opts gateway.ListOptions) ([]domain.Tag, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Tag)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) ListBranches(ctx context.Context, owner, repo string, opts gateway.ListOptions) ([]domain.Branch, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Branch)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) ListIssues(ctx context.Context, owner, repo string, opts gateway.IssueListOptions) ([]domain.Issue, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Issue)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) ListPullRequests(ctx context.Context, owner, repo string, opts gateway.IssueListOptions) ([]domain.PullRequest, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.PullRequest)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) ListForks(ctx context.Context, owner, repo string, opts gateway.ListOptions) ([]domain.Fork, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Fork)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) ListEvents(ctx context.Context, owner, repo string, opts gateway.ListOptions) ([]domain.Event, gateway.PageInfo, error) {
	args := m.Called(ctx, owner, repo, opts)
	items, _ := args.Get(0).([]domain.Event)
	return items, args.Get(1).(gateway.PageInfo), args.Error(2)
}

func (m *mockFetcher) SearchIssuesCount(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

func (m *mockFetcher) CountIssuesAndPullRequests(ctx context.Context, owner, repo string) (gateway.IssueCounts, error) {
	args := m.Called(ctx, owner, repo)
	return args.Get(0).(gateway.IssueCounts), args.Error(1)
}

func (m *mockFetcher) GetRateLimit(ctx context.Context) (*domain.RateLimit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateLimit), args.Error(1)
}

func (m *mockFetcher) GetUser(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockFetcher) ListUserRepositories(ctx context.Context, login string, opts gateway.ListOptions) ([]domain.Repository, error) {
	args := m.Called(ctx, login, opts)
	items, _ := args.Get(0).([]domain.Repository)
	return items, args.Error(1)
}

var _ gateway.Fetcher = (*mockFetcher)(nil)
