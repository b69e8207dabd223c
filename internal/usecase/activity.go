package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"golang.org/x/sync/errgroup"
)

const (
	forksPageSize = 50
	heatmapMonths = 12
)

// ActivityFetcher collects the supplementary activity of a repository.
// It never fails: each collection that cannot be fetched is left empty.
type ActivityFetcher struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	now     func() time.Time
}

// NewActivityFetcher creates a new ActivityFetcher. A nil now uses time.Now.
func NewActivityFetcher(fetcher gateway.Fetcher, logger *log.Logger, now func() time.Time) *ActivityFetcher {
	if now == nil {
		now = time.Now
	}
	return &ActivityFetcher{
		fetcher: fetcher,
		logger:  logger,
		now:     now,
	}
}

// Fetch gathers issues, pull requests, forks and events concurrently and
// derives trends from them.
func (a *ActivityFetcher) Fetch(ctx context.Context, owner, repo string) *domain.ActivityWindow {
	a.logger.Printf("Usecase: Fetching activity of %s/%s...", owner, repo)

	var (
		issues []domain.Issue
		pulls  []domain.PullRequest
		forks  []domain.Fork
		events []domain.Event
	)
	tracker := gateway.IssueListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: gateway.ListOptions{PerPage: SamplePageSize},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		items, _, err := a.fetcher.ListIssues(egCtx, owner, repo, tracker)
		if err != nil {
			a.logger.Printf("issues fetch failed for %s/%s: %v", owner, repo, err)
			return nil
		}
		issues = items
		return nil
	})
	eg.Go(func() error {
		items, _, err := a.fetcher.ListPullRequests(egCtx, owner, repo, tracker)
		if err != nil {
			a.logger.Printf("pull requests fetch failed for %s/%s: %v", owner, repo, err)
			return nil
		}
		pulls = items
		return nil
	})
	eg.Go(func() error {
		items, _, err := a.fetcher.ListForks(egCtx, owner, repo, gateway.ListOptions{PerPage: forksPageSize})
		if err != nil {
			a.logger.Printf("forks fetch failed for %s/%s: %v", owner, repo, err)
			return nil
		}
		forks = items
		return nil
	})
	eg.Go(func() error {
		items, _, err := a.fetcher.ListEvents(egCtx, owner, repo, gateway.ListOptions{PerPage: SamplePageSize})
		if err != nil {
			a.logger.Printf("events fetch failed for %s/%s: %v", owner, repo, err)
			return nil
		}
		events = items
		return nil
	})
	// None of the goroutines report an error.
	_ = eg.Wait()

	window := SummarizeActivity(issues, pulls, forks, events, a.now())
	return &window
}

// SummarizeActivity builds an ActivityWindow from raw samples. Tracker items
// marked as pull requests are dropped from issues.
func SummarizeActivity(issues []domain.Issue, pulls []domain.PullRequest, forks []domain.Fork, events []domain.Event, now time.Time) domain.ActivityWindow {
	window := domain.ActivityWindow{
		Issues:       make([]domain.Issue, 0, len(issues)),
		PullRequests: append([]domain.PullRequest{}, pulls...),
		Forks:        append([]domain.Fork{}, forks...),
		Events:       append([]domain.Event{}, events...),
	}
	for _, issue := range issues {
		if !issue.IsPullRequest {
			window.Issues = append(window.Issues, issue)
		}
	}

	issuesByMonth := make(map[string]int)
	for _, issue := range window.Issues {
		issuesByMonth[monthKey(issue.CreatedAt)]++
	}
	prsByMonth := make(map[string]int)
	for _, pr := range window.PullRequests {
		prsByMonth[monthKey(pr.CreatedAt)]++
	}

	window.IssuesTrend = sortedMonthCounts(issuesByMonth)
	window.PRsTrend = sortedMonthCounts(prsByMonth)
	window.ActivityHeatmap = heatmap(issuesByMonth, prsByMonth, now)
	window.TopContributors = topActors(window.Events)
	return window
}

// heatmap returns exactly heatmapMonths buckets ending at the month of now.
func heatmap(issuesByMonth, prsByMonth map[string]int, now time.Time) []domain.MonthlyActivity {
	current := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.MonthlyActivity, 0, heatmapMonths)
	for i := heatmapMonths - 1; i >= 0; i-- {
		key := monthKey(current.AddDate(0, -i, 0))
		out = append(out, domain.MonthlyActivity{
			Month:      key,
			IssueCount: issuesByMonth[key],
			PRCount:    prsByMonth[key],
			Total:      issuesByMonth[key] + prsByMonth[key],
		})
	}
	return out
}

func topActors(events []domain.Event) []domain.ActorActivity {
	tally := make(map[string]int)
	for _, e := range events {
		if e.Actor != "" {
			tally[e.Actor]++
		}
	}
	out := make([]domain.ActorActivity, 0, len(tally))
	for login, n := range tally {
		out = append(out, domain.ActorActivity{Login: login, Activity: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Activity != out[j].Activity {
			return out[i].Activity > out[j].Activity
		}
		return out[i].Login < out[j].Login
	})
	if len(out) > topContributor {
		out = out[:topContributor]
	}
	return out
}
