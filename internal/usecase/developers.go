package usecase

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"golang.org/x/sync/errgroup"
)

const (
	developerRepos     = 10
	developerLanguages = 5
	// DefaultBadge is given to developers who match no other badge and to
	// those whose details could not be fetched.
	DefaultBadge = "Developer"
)

// EnrichOptions controls batching and retries of a DeveloperEnricher.
type EnrichOptions struct {
	BatchSize  int
	BatchDelay time.Duration
	// RetryAttempts is the total number of attempts per request.
	RetryAttempts int
	RetryWait     time.Duration
	// RateLimitWait replaces RetryWait after a rate-limited attempt.
	RateLimitWait time.Duration
}

// DeveloperEnricher turns logins into DeveloperProfiles in small batches
// so that a long list does not exhaust the rate limit at once.
type DeveloperEnricher struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	opts    EnrichOptions
}

// NewDeveloperEnricher creates a new DeveloperEnricher instance.
func NewDeveloperEnricher(fetcher gateway.Fetcher, logger *log.Logger, opts EnrichOptions) *DeveloperEnricher {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 1
	}
	return &DeveloperEnricher{
		fetcher: fetcher,
		logger:  logger,
		opts:    opts,
	}
}

// Enrich returns one profile per login, in input order. Lookup failures
// produce a basic profile; only context cancellation is an error.
func (e *DeveloperEnricher) Enrich(ctx context.Context, logins []string) ([]domain.DeveloperProfile, error) {
	results := make([]domain.DeveloperProfile, len(logins))
	for start := 0; start < len(logins); start += e.opts.BatchSize {
		if start > 0 {
			if err := sleep(ctx, e.opts.BatchDelay); err != nil {
				return nil, err
			}
		}
		end := min(start+e.opts.BatchSize, len(logins))
		e.logger.Printf("Usecase: Enriching developers %d-%d of %d...", start+1, end, len(logins))

		eg, egCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			eg.Go(func() error {
				results[i] = e.enrich(egCtx, logins[i])
				return nil
			})
		}
		_ = eg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (e *DeveloperEnricher) enrich(ctx context.Context, login string) domain.DeveloperProfile {
	var user *domain.User
	err := e.retry(ctx, "user "+login, func() error {
		var err error
		user, err = e.fetcher.GetUser(ctx, login)
		return err
	})
	if err != nil {
		e.logger.Printf("details fetch failed for developer %s: %v", login, err)
		return basicProfile(login)
	}

	var repos []domain.Repository
	err = e.retry(ctx, "repositories of "+login, func() error {
		var err error
		repos, err = e.fetcher.ListUserRepositories(ctx, login, gateway.ListOptions{PerPage: developerRepos})
		return err
	})
	if err != nil {
		e.logger.Printf("repositories fetch failed for developer %s: %v", login, err)
		return basicProfile(login)
	}
	return BuildDeveloperProfile(*user, repos)
}

// retry runs op until it succeeds, fails permanently or attempts run out.
func (e *DeveloperEnricher) retry(ctx context.Context, what string, op func() error) error {
	var last error
	b := &rateLimitAwareBackOff{
		wait:          e.opts.RetryWait,
		rateLimitWait: e.opts.RateLimitWait,
		last:          &last,
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(e.opts.RetryAttempts-1)), ctx)
	return backoff.RetryNotify(func() error {
		last = op()
		if gateway.IsNotFound(last) {
			return backoff.Permanent(last)
		}
		return last
	}, policy, func(err error, d time.Duration) {
		e.logger.Printf("retrying %s in %s: %v", what, d, err)
	})
}

// rateLimitAwareBackOff waits longer after a rate-limited failure.
type rateLimitAwareBackOff struct {
	wait          time.Duration
	rateLimitWait time.Duration
	last          *error
}

func (b *rateLimitAwareBackOff) NextBackOff() time.Duration {
	if gateway.IsRateLimited(*b.last) {
		return b.rateLimitWait
	}
	return b.wait
}

func (b *rateLimitAwareBackOff) Reset() {}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func basicProfile(login string) domain.DeveloperProfile {
	return domain.DeveloperProfile{
		Login:     login,
		Name:      login,
		HTMLURL:   "https://github.com/" + login,
		Languages: []string{},
		Badge:     DefaultBadge,
	}
}

// BuildDeveloperProfile combines a user with their top repositories.
func BuildDeveloperProfile(user domain.User, repos []domain.Repository) domain.DeveloperProfile {
	repos = sortByStars(repos)
	profile := domain.DeveloperProfile{
		Login:        user.Login,
		Name:         user.Name,
		AvatarURL:    user.AvatarURL,
		HTMLURL:      user.HTMLURL,
		Followers:    user.Followers,
		Following:    user.Following,
		PublicRepos:  user.PublicRepos,
		Bio:          user.Bio,
		Location:     user.Location,
		Company:      user.Company,
		TotalStars:   totalStars(repos),
		Languages:    distinctLanguages(repos, developerLanguages),
		Repositories: repos,
		Detailed:     true,
	}
	if profile.Name == "" {
		profile.Name = user.Login
	}
	if len(repos) > 0 {
		profile.TopRepo = repos[0].Name
	}
	profile.Badge = Badge(user, profile.TotalStars)
	return profile
}

func totalStars(repos []domain.Repository) int {
	data := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		data = append(data, float64(r.Stars))
	}
	sum, err := stats.Sum(data)
	if err != nil {
		return 0
	}
	return int(sum)
}

func distinctLanguages(repos []domain.Repository, limit int) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range repos {
		if r.Language == "" || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		out = append(out, r.Language)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Badge picks the first matching recognition tier.
func Badge(user domain.User, stars int) string {
	switch {
	case stars > 50000:
		return "Legendary"
	case stars > 20000:
		return "Influential"
	case stars > 10000:
		return "Popular"
	case user.PublicRepos > 100:
		return "Prolific"
	case user.Followers > 10000:
		return "Well-Known"
	case stars > 1000:
		return "Rising Star"
	default:
		return DefaultBadge
	}
}
