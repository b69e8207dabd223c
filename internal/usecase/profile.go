package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"golang.org/x/sync/errgroup"
)

const topLanguageLimit = 6

// ProfileFetcher loads a user together with their most starred repositories.
type ProfileFetcher struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	perPage int
}

// NewProfileFetcher creates a new ProfileFetcher that samples perPage repositories.
func NewProfileFetcher(fetcher gateway.Fetcher, logger *log.Logger, perPage int) *ProfileFetcher {
	return &ProfileFetcher{
		fetcher: fetcher,
		logger:  logger,
		perPage: perPage,
	}
}

// Fetch returns the profile of login. Both lookups are required.
func (p *ProfileFetcher) Fetch(ctx context.Context, login string) (*domain.Profile, error) {
	p.logger.Printf("Usecase: Fetching profile of %s...", login)

	var (
		user  *domain.User
		repos []domain.Repository
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		user, err = p.fetcher.GetUser(egCtx, login)
		return err
	})
	eg.Go(func() error {
		var err error
		repos, err = p.fetcher.ListUserRepositories(egCtx, login, gateway.ListOptions{PerPage: p.perPage})
		return err
	})
	if err := eg.Wait(); err != nil {
		switch {
		case gateway.IsNotFound(err):
			return nil, &domain.UserNotFoundError{Login: login}
		case gateway.IsRateLimited(err):
			return nil, &domain.RateLimitError{Err: err}
		default:
			return nil, fmt.Errorf("failed to fetch profile of %s: %w", login, err)
		}
	}

	repos = sortByStars(repos)
	profile := &domain.Profile{
		User:         *user,
		Repositories: repos,
		TopLanguages: TopLanguages(repos),
		Summary:      Summarize(*user, repos),
	}
	for _, r := range repos {
		profile.TotalStars += r.Stars
		profile.TotalForks += r.Forks
	}
	return profile, nil
}

func sortByStars(repos []domain.Repository) []domain.Repository {
	out := append([]domain.Repository{}, repos...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stars > out[j].Stars })
	return out
}

// TopLanguages counts repositories per primary language, most used first.
func TopLanguages(repos []domain.Repository) []domain.LanguageUsage {
	counts := make(map[string]int)
	for _, r := range repos {
		if r.Language != "" {
			counts[r.Language]++
		}
	}
	out := make([]domain.LanguageUsage, 0, len(counts))
	for lang, n := range counts {
		out = append(out, domain.LanguageUsage{Language: lang, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	if len(out) > topLanguageLimit {
		out = out[:topLanguageLimit]
	}
	return out
}

// Summarize writes a one-sentence description of a developer.
func Summarize(user domain.User, repos []domain.Repository) string {
	languages := TopLanguages(repos)
	stars := 0
	for _, r := range repos {
		stars += r.Stars
	}
	name := user.Name
	if name == "" {
		name = user.Login
	}

	var b strings.Builder
	b.WriteString(name + " is a developer")
	if len(languages) > 0 {
		fmt.Fprintf(&b, " primarily working with %s", languages[0].Language)
	}
	if user.PublicRepos > 10 {
		fmt.Fprintf(&b, " with %d public repositories", user.PublicRepos)
	}
	if stars > 50 {
		fmt.Fprintf(&b, " and %d total stars across their projects", stars)
	}
	if user.Followers > 100 {
		fmt.Fprintf(&b, ". They have built a strong community with %d followers", user.Followers)
	}
	if len(languages) > 3 {
		b.WriteString(" and demonstrate versatility across multiple programming languages")
	}
	b.WriteString(".")
	return b.String()
}
