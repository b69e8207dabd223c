package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
)

// countStrategy is one way of inferring a total. ok is false when the
// strategy failed and the next one should be tried.
type countStrategy struct {
	source domain.CountSource
	count  func(ctx context.Context) (n int, ok bool)
}

// firstCount runs strategies in order and keeps the first success.
// When all fail the count is zero with SourceNone.
func firstCount(ctx context.Context, strategies []countStrategy) domain.InferredCount {
	for _, s := range strategies {
		if n, ok := s.count(ctx); ok {
			return domain.InferredCount{Value: n, Source: s.source}
		}
	}
	return domain.InferredCount{Source: domain.SourceNone}
}

type issueCountKind int

const (
	issuesOpen issueCountKind = iota
	issuesClosed
	prsOpen
	prsClosed
)

func (k issueCountKind) isPR() bool { return k == prsOpen || k == prsClosed }

func (k issueCountKind) state() string {
	if k == issuesOpen || k == prsOpen {
		return "open"
	}
	return "closed"
}

func (k issueCountKind) String() string {
	if k.isPR() {
		return k.state() + " pull request count"
	}
	return k.state() + " issue count"
}

// issueCountChains holds the strategies for the four issue and PR totals of
// one repository. The GraphQL query answers all four at once, so it runs at
// most once per chain set.
type issueCountChains struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	owner, repo string
	useGraphQL  bool

	once      sync.Once
	graphQL   gateway.IssueCounts
	graphQLOK bool
}

func newIssueCountChains(fetcher gateway.Fetcher, logger *log.Logger, owner, repo string, useGraphQL bool) *issueCountChains {
	return &issueCountChains{
		fetcher:    fetcher,
		logger:     logger,
		owner:      owner,
		repo:       repo,
		useGraphQL: useGraphQL,
	}
}

func (c *issueCountChains) strategies(kind issueCountKind) []countStrategy {
	var out []countStrategy
	if c.useGraphQL {
		out = append(out, countStrategy{domain.SourceGraphQL, func(ctx context.Context) (int, bool) {
			return c.fromGraphQL(ctx, kind)
		}})
	}
	return append(out,
		countStrategy{domain.SourceSearch, func(ctx context.Context) (int, bool) {
			return c.fromSearch(ctx, kind)
		}},
		countStrategy{domain.SourceList, func(ctx context.Context) (int, bool) {
			return c.fromList(ctx, kind)
		}},
	)
}

func (c *issueCountChains) fromGraphQL(ctx context.Context, kind issueCountKind) (int, bool) {
	c.once.Do(func() {
		counts, err := c.fetcher.CountIssuesAndPullRequests(ctx, c.owner, c.repo)
		if err != nil {
			c.logger.Printf("graphql issue counts failed for %s/%s: %v", c.owner, c.repo, err)
			return
		}
		c.graphQL, c.graphQLOK = counts, true
	})
	if !c.graphQLOK {
		return 0, false
	}
	switch kind {
	case issuesOpen:
		return c.graphQL.IssuesOpen, true
	case issuesClosed:
		return c.graphQL.IssuesClosed, true
	case prsOpen:
		return c.graphQL.PRsOpen, true
	default:
		return c.graphQL.PRsClosed, true
	}
}

// SearchQuery is the issue search used to count one kind of tracker item.
func SearchQuery(owner, repo string, pullRequests bool, state string) string {
	itemType := "issue"
	if pullRequests {
		itemType = "pr"
	}
	return fmt.Sprintf("repo:%s/%s type:%s state:%s", owner, repo, itemType, state)
}

func (c *issueCountChains) fromSearch(ctx context.Context, kind issueCountKind) (int, bool) {
	n, err := c.fetcher.SearchIssuesCount(ctx, SearchQuery(c.owner, c.repo, kind.isPR(), kind.state()))
	if err != nil {
		c.logger.Printf("search %s failed for %s/%s: %v", kind, c.owner, c.repo, err)
		return 0, false
	}
	return n, true
}

// fromList counts through the list endpoints with a single-item page, reading
// the last-page link or, without one, the page length.
func (c *issueCountChains) fromList(ctx context.Context, kind issueCountKind) (int, bool) {
	opts := gateway.IssueListOptions{State: kind.state(), ListOptions: gateway.ListOptions{PerPage: 1}}
	var (
		n    int
		page gateway.PageInfo
		err  error
	)
	if kind.isPR() {
		var items []domain.PullRequest
		items, page, err = c.fetcher.ListPullRequests(ctx, c.owner, c.repo, opts)
		n = len(items)
	} else {
		var items []domain.Issue
		items, page, err = c.fetcher.ListIssues(ctx, c.owner, c.repo, opts)
		n = len(items)
	}
	if err != nil {
		c.logger.Printf("list %s failed for %s/%s: %v", kind, c.owner, c.repo, err)
		return 0, false
	}
	if page.LastPage > 0 {
		return page.LastPage, true
	}
	return n, true
}
