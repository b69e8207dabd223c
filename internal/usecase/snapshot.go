// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// SamplePageSize bounds every sampled collection.
const SamplePageSize = 100

// SnapshotOptions tunes a SnapshotFetcher.
type SnapshotOptions struct {
	// GraphQLCounts tries a single GraphQL query for issue and PR totals
	// before falling back to search and list pagination.
	GraphQLCounts bool
	// Now is the reference clock for analytics. Defaults to time.Now.
	Now func() time.Time
}

// SnapshotFetcher builds a RepositorySnapshot and its analytics.
// Only the repository metadata lookup is fatal; every other request degrades
// to an empty collection or a zero count.
type SnapshotFetcher struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	opts    SnapshotOptions
}

// NewSnapshotFetcher creates a new SnapshotFetcher instance.
func NewSnapshotFetcher(fetcher gateway.Fetcher, logger *log.Logger, opts SnapshotOptions) *SnapshotFetcher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SnapshotFetcher{
		fetcher: fetcher,
		logger:  logger,
		opts:    opts,
	}
}

// Fetch retrieves owner/repo and computes its analytics.
func (s *SnapshotFetcher) Fetch(ctx context.Context, owner, repo string) (*domain.RepositoryDetails, error) {
	s.logger.Printf("Usecase: Fetching snapshot of %s/%s...", owner, repo)

	meta, err := s.fetcher.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, classifyRepositoryError(owner, repo, err)
	}

	snapshot := domain.RepositorySnapshot{
		Repository:   *meta,
		Contributors: []domain.Contributor{},
		Languages:    map[string]int{},
		Commits:      []domain.Commit{},
		Releases:     []domain.Release{},
		Tags:         []domain.Tag{},
		Branches:     []domain.Branch{},
	}
	sample := gateway.ListOptions{PerPage: SamplePageSize}
	one := gateway.ListOptions{PerPage: 1}
	counts := &snapshot.TotalCounts

	// Every goroutine swallows its own failure, so Wait never reports one.
	// Each writes to a distinct field.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		items, _, err := s.fetcher.ListContributors(egCtx, owner, repo, gateway.ContributorListOptions{ListOptions: sample})
		if s.degraded("contributors", owner, repo, err) {
			return nil
		}
		snapshot.Contributors = items
		return nil
	})
	eg.Go(func() error {
		languages, err := s.fetcher.GetLanguages(egCtx, owner, repo)
		if s.degraded("languages", owner, repo, err) || languages == nil {
			return nil
		}
		snapshot.Languages = languages
		return nil
	})
	eg.Go(func() error {
		items, _, err := s.fetcher.ListCommits(egCtx, owner, repo, sample)
		if s.degraded("commits", owner, repo, err) {
			return nil
		}
		snapshot.Commits = items
		return nil
	})
	eg.Go(func() error {
		items, _, err := s.fetcher.ListReleases(egCtx, owner, repo, sample)
		if s.degraded("releases", owner, repo, err) {
			return nil
		}
		snapshot.Releases = items
		return nil
	})
	eg.Go(func() error {
		items, _, err := s.fetcher.ListTags(egCtx, owner, repo, sample)
		if s.degraded("tags", owner, repo, err) {
			return nil
		}
		snapshot.Tags = items
		return nil
	})
	eg.Go(func() error {
		items, _, err := s.fetcher.ListBranches(egCtx, owner, repo, sample)
		if s.degraded("branches", owner, repo, err) {
			return nil
		}
		snapshot.Branches = items
		return nil
	})

	eg.Go(func() error {
		counts.Contributors = s.pageCount("contributor count", owner, repo, func() (int, gateway.PageInfo, error) {
			items, page, err := s.fetcher.ListContributors(egCtx, owner, repo, gateway.ContributorListOptions{Anon: true, ListOptions: one})
			return len(items), page, err
		})
		return nil
	})
	eg.Go(func() error {
		counts.Commits = s.pageCount("commit count", owner, repo, func() (int, gateway.PageInfo, error) {
			items, page, err := s.fetcher.ListCommits(egCtx, owner, repo, one)
			return len(items), page, err
		})
		return nil
	})
	eg.Go(func() error {
		counts.Releases = s.pageCount("release count", owner, repo, func() (int, gateway.PageInfo, error) {
			items, page, err := s.fetcher.ListReleases(egCtx, owner, repo, one)
			return len(items), page, err
		})
		return nil
	})
	eg.Go(func() error {
		counts.Branches = s.pageCount("branch count", owner, repo, func() (int, gateway.PageInfo, error) {
			items, page, err := s.fetcher.ListBranches(egCtx, owner, repo, one)
			return len(items), page, err
		})
		return nil
	})
	eg.Go(func() error {
		counts.Tags = s.pageCount("tag count", owner, repo, func() (int, gateway.PageInfo, error) {
			items, page, err := s.fetcher.ListTags(egCtx, owner, repo, one)
			return len(items), page, err
		})
		return nil
	})

	chains := newIssueCountChains(s.fetcher, s.logger, owner, repo, s.opts.GraphQLCounts)
	targets := []struct {
		kind issueCountKind
		dest *domain.InferredCount
	}{
		{issuesOpen, &counts.IssuesOpen},
		{issuesClosed, &counts.IssuesClosed},
		{prsOpen, &counts.PRsOpen},
		{prsClosed, &counts.PRsClosed},
	}
	for _, target := range targets {
		eg.Go(func() error {
			*target.dest = firstCount(egCtx, chains.strategies(target.kind))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	now := s.opts.Now()
	snapshot.FetchedAt = now
	s.logger.Printf("Usecase: Snapshot of %s/%s complete.", owner, repo)
	return &domain.RepositoryDetails{
		Snapshot:  snapshot,
		Analytics: Aggregate(snapshot, now),
	}, nil
}

// degraded logs a swallowed auxiliary failure and reports whether there was one.
func (s *SnapshotFetcher) degraded(what, owner, repo string, err error) bool {
	if err == nil {
		return false
	}
	s.logger.Printf("%s fetch failed for %s/%s: %v", what, owner, repo, err)
	return true
}

// pageCount infers a total from a single-item page. Without a last-page link
// the page length is used, which undercounts collections of more than one item.
func (s *SnapshotFetcher) pageCount(what, owner, repo string, list func() (int, gateway.PageInfo, error)) domain.InferredCount {
	n, page, err := list()
	if s.degraded(what, owner, repo, err) {
		return domain.InferredCount{Source: domain.SourceNone}
	}
	if page.LastPage > 0 {
		return domain.InferredCount{Value: page.LastPage, Source: domain.SourcePagination}
	}
	return domain.InferredCount{Value: n, Source: domain.SourcePageLength}
}

// classifyRepositoryError maps a metadata lookup failure to the fatal error kinds.
func classifyRepositoryError(owner, repo string, err error) error {
	switch {
	case gateway.IsNotFound(err):
		return &domain.NotFoundError{Owner: owner, Repo: repo}
	case gateway.IsRateLimited(err):
		return &domain.RateLimitError{Err: err}
	default:
		return &domain.TransientFetchError{Err: fmt.Errorf("failed to fetch repository %s/%s: %w", owner, repo, err)}
	}
}
