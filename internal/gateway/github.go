// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

const userAgent = "repo-insights"

// Config is the only input needed to build a GitHubGateway.
type Config struct {
	// BaseURL of a GitHub-compatible REST API. Empty means api.github.com.
	BaseURL string
	// GraphQLURL of the GraphQL endpoint. Empty means api.github.com/graphql.
	GraphQLURL string
	// Token is attached as a bearer token when set. Without it requests are
	// anonymous and subject to a lower rate ceiling.
	Token string
	// Timeout bounds the connection handshake and the wait for response
	// headers of each attempt.
	Timeout time.Duration
	// SecondarySleepLimit caps how long a single secondary rate limit wait may last.
	SecondarySleepLimit time.Duration
}

// ListOptions are the pagination parameters shared by all list operations.
type ListOptions struct {
	Page    int
	PerPage int
}

// ContributorListOptions adds anonymous contributor inclusion.
type ContributorListOptions struct {
	Anon bool
	ListOptions
}

// IssueListOptions filters issue and pull request listings.
type IssueListOptions struct {
	State     string
	Sort      string
	Direction string
	ListOptions
}

// PageInfo carries the pagination metadata of a list response.
// LastPage is 0 when the response had no last-page link.
type PageInfo struct {
	NextPage int
	LastPage int
}

// IssueCounts holds open and closed totals for issues and pull requests.
type IssueCounts struct {
	IssuesOpen   int
	IssuesClosed int
	PRsOpen      int
	PRsClosed    int
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	GetRepository(ctx context.Context, owner, repo string) (*domain.Repository, error)
	ListContributors(ctx context.Context, owner, repo string, opts ContributorListOptions) ([]domain.Contributor, PageInfo, error)
	GetLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	ListCommits(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Commit, PageInfo, error)
	ListReleases(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Release, PageInfo, error)
	ListTags(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Tag, PageInfo, error)
	ListBranches(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Branch, PageInfo, error)
	ListIssues(ctx context.Context, owner, repo string, opts IssueListOptions) ([]domain.Issue, PageInfo, error)
	ListPullRequests(ctx context.Context, owner, repo string, opts IssueListOptions) ([]domain.PullRequest, PageInfo, error)
	ListForks(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Fork, PageInfo, error)
	ListEvents(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Event, PageInfo, error)
	SearchIssuesCount(ctx context.Context, query string) (int, error)
	// CountIssuesAndPullRequests reads all four issue/PR totals in one GraphQL query.
	CountIssuesAndPullRequests(ctx context.Context, owner, repo string) (IssueCounts, error)
	GetRateLimit(ctx context.Context) (*domain.RateLimit, error)
	GetUser(ctx context.Context, login string) (*domain.User, error)
	ListUserRepositories(ctx context.Context, login string, opts ListOptions) ([]domain.Repository, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

var _ Fetcher = (*GitHubGateway)(nil)

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(cfg Config, logger *log.Logger) (*GitHubGateway, error) {
	var sleepOpts []github_ratelimit.Option
	if cfg.SecondarySleepLimit > 0 {
		sleepOpts = append(sleepOpts, github_ratelimit.WithSingleSleepLimit(cfg.SecondarySleepLimit, nil))
	}
	// Timeout applies per attempt, below the waiter's sleep.
	base := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Timeout > 0 {
		base.TLSHandshakeTimeout = cfg.Timeout
		base.ResponseHeaderTimeout = cfg.Timeout
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(base, sleepOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}
	httpClient := &http.Client{Transport: transport}

	restClient := github.NewClient(httpClient)
	restClient.UserAgent = userAgent
	if cfg.BaseURL != "" {
		baseURL, err := parseBaseURL(cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		restClient.BaseURL = baseURL
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if cfg.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(cfg.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", raw)
	}
	return u, nil
}

func pageInfo(resp *github.Response) PageInfo {
	if resp == nil {
		return PageInfo{}
	}
	return PageInfo{NextPage: resp.NextPage, LastPage: resp.LastPage}
}

func listOptions(opts ListOptions) github.ListOptions {
	return github.ListOptions{Page: opts.Page, PerPage: opts.PerPage}
}

func (g *GitHubGateway) GetRepository(ctx context.Context, owner, repo string) (*domain.Repository, error) {
	g.logger.Printf("Fetching repository %s/%s...", owner, repo)
	r, resp, err := g.restClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, wrapError("get repository", resp, err)
	}
	out := toRepository(r)
	return &out, nil
}

func (g *GitHubGateway) ListContributors(ctx context.Context, owner, repo string, opts ContributorListOptions) ([]domain.Contributor, PageInfo, error) {
	ghOpts := &github.ListContributorsOptions{ListOptions: listOptions(opts.ListOptions)}
	if opts.Anon {
		ghOpts.Anon = "true"
	}
	contributors, resp, err := g.restClient.Repositories.ListContributors(ctx, owner, repo, ghOpts)
	if err != nil {
		return nil, pageInfo(resp), wrapError("list contributors", resp, err)
	}
	out := make([]domain.Contributor, 0, len(contributors))
	for _, c := range contributors {
		out = append(out, domain.Contributor{
			Login:         c.GetLogin(),
			AvatarURL:     c.GetAvatarURL(),
			Contributions: c.GetContributions(),
		})
	}
	return out, pageInfo(resp), nil
}

func (g *GitHubGateway) GetLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, resp, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, wrapError("list languages", resp, err)
	}
	return languages, nil
}

func (g *GitHubGateway) ListCommits(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Commit, PageInfo, error) {
	commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{ListOptions: listOptions(opts)})
	if err != nil {
		return nil, pageInfo(resp), wrapError("list commits", resp, err)
	}
	out := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		out = append(out, toCommit(c))
	}
	return out, pageInfo(resp), nil
}

func (g *GitHubGateway) ListReleases(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Release, PageInfo, error) {
	ghOpts := listOptions(opts)
	releases, resp, err := g.restClient.Repositories.ListReleases(ctx, owner, repo, &ghOpts)
	if err != nil {
		return nil, pageInfo(resp), wrapError("list releases", resp, err)
	}
	out := make([]domain.Release, 0, len(releases))
	for _, r := range releases {
		out = append(out, domain.Release{
			TagName:     r.GetTagName(),
			Name:        r.GetName(),
			HTMLURL:     r.GetHTMLURL(),
			Prerelease:  r.GetPrerelease(),
			CreatedAt:   r.GetCreatedAt().Time,
			PublishedAt: r.GetPublishedAt().Time,
		})
	}
	return out, pageInfo(resp), nil
}

func (g *GitHubGateway) ListTags(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Tag, PageInfo, error) {
	ghOpts := listOptions(opts)
	tags, resp, err := g.restClient.Repositories.ListTags(ctx, owner, repo, &ghOpts)
	if err != nil {
		return nil, pageInfo(resp), wrapError("list tags", resp, err)
	}
	out := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, domain.Tag{Name: t.GetName(), SHA: t.GetCommit().GetSHA()})
	}
	return out, pageInfo(resp), nil
}

func (g *GitHubGateway) ListBranches(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Branch, PageInfo, error) {
	branches, resp, err := g.restClient.Repositories.ListBranches(ctx, owner, repo, &github.BranchListOptions{ListOptions: listOptions(opts)})
	if err != nil {
		return nil, pageInfo(resp), wrapError("list branches", resp, err)
	}
	out := make([]domain.Branch, 0, len(branches))
	for _, b := range branches {
		out = append(out, domain.Branch{Name: b.GetName(), Protected: b.GetProtected()})
	}
	return out, pageInfo(resp), nil
}

// ListIssues returns the issues listing as GitHub serves it, which includes
// pull requests flagged with IsPullRequest.
func (g *GitHubGateway) ListIssues(ctx context.Context, owner, repo string, opts IssueListOptions) ([]domain.Issue, PageInfo, error) {
	issues, resp, err := g.restClient.Issues.ListByRepo(ctx, owner, repo, &github.IssueListByRepoOptions{
		State:       opts.State,
		Sort:        opts.Sort,
		Direction:   opts.Direction,
		ListOptions: listOptions(opts.ListOptions),
	})
	if err != nil {
		return nil, pageInfo(resp), wrapError("list issues", resp, err)
	}
	out := make([]domain.Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, domain.Issue{
			Number:        i.GetNumber(),
			Title:         i.GetTitle(),
			State:         i.GetState(),
			Author:        i.GetUser().GetLogin(),
			IsPullRequest: i.IsPullRequest(),
			CreatedAt:     i.GetCreatedAt().Time,
			ClosedAt:      i.GetClosedAt().Time,
		})
	}
	return out, pageInfo(resp), nil
}

func (g *GitHubGateway) ListPullRequests(ctx context.Context, owner, repo string, opts IssueListOptions) ([]domain.PullRequest, PageInfo, error) {
	pulls, resp, err := g.restClient.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State:       opts.State,
		Sort:        opts.Sort,
		Direction:   opts.Direction,
		ListOptions: listOptions(opts.ListOptions),
	})
	if err != nil {
		return nil, pageInfo(resp), wrapError("list pull requests", resp, err)
	}
	out := make([]domain.PullRequest, 0, len(pulls))
	for _, p := range pulls {
		out = append(out, domain.PullRequest{
			Number:    p.GetNumber(),
			Title:     p.GetTitle(),
			State:     p.GetState(),
			Author:    p.GetUser().GetLogin(),
			CreatedAt: p.GetCreatedAt().Time,
			MergedAt:  p.GetMergedAt().Time,
			ClosedAt:  p.GetClosedAt().Time,
		})
	}
	return out, pageInfo(resp), nil
}

func (g *GitHubGateway) ListForks(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Fork, PageInfo, error) {
	forks, resp, err := g.restClient.Repositories.ListForks(ctx, owner, repo, &github.RepositoryListForksOptions{
		Sort:        "newest",
		ListOptions: listOptions(opts),
	})
	if err != nil {
		return nil, pageInfo(resp), wrapError("list forks", resp, err)
	}
	out := make([]domain.Fork, 0, len(forks))
	for _, f := range forks {
		out = append(out, domain.Fork{
			FullName:  f.GetFullName(),
			Owner:     f.GetOwner().GetLogin(),
			Stars:     f.GetStargazersCount(),
			CreatedAt: f.GetCreatedAt().Time,
		})
	}
	return out, pageInfo(resp), nil
}

func (g *GitHubGateway) ListEvents(ctx context.Context, owner, repo string, opts ListOptions) ([]domain.Event, PageInfo, error) {
	ghOpts := listOptions(opts)
	events, resp, err := g.restClient.Activity.ListRepositoryEvents(ctx, owner, repo, &ghOpts)
	if err != nil {
		return nil, pageInfo(resp), wrapError("list events", resp, err)
	}
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, domain.Event{
			Type:      e.GetType(),
			Actor:     e.GetActor().GetLogin(),
			CreatedAt: e.GetCreatedAt().Time,
		})
	}
	return out, pageInfo(resp), nil
}

// SearchIssuesCount returns the total_count of an issue search without
// fetching more than a single result.
func (g *GitHubGateway) SearchIssuesCount(ctx context.Context, query string) (int, error) {
	g.logger.Printf("Searching with query: %s", query)
	result, resp, err := g.restClient.Search.Issues(ctx, query, &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}})
	if err != nil {
		return 0, wrapError("search issues", resp, err)
	}
	return result.GetTotal(), nil
}

func (g *GitHubGateway) GetRateLimit(ctx context.Context) (*domain.RateLimit, error) {
	limits, resp, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return nil, wrapError("get rate limit", resp, err)
	}
	core := limits.GetCore()
	if core == nil {
		return &domain.RateLimit{}, nil
	}
	return &domain.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}

func (g *GitHubGateway) GetUser(ctx context.Context, login string) (*domain.User, error) {
	u, resp, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		return nil, wrapError("get user", resp, err)
	}
	out := toUser(u)
	return &out, nil
}

// ListUserRepositories lists the public repositories owned by a user.
func (g *GitHubGateway) ListUserRepositories(ctx context.Context, login string, opts ListOptions) ([]domain.Repository, error) {
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, login, &github.RepositoryListByUserOptions{
		ListOptions: listOptions(opts),
	})
	if err != nil {
		return nil, wrapError("list user repositories", resp, err)
	}
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, toRepository(r))
	}
	return out, nil
}
