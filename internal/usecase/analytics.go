package usecase

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/repo-insights/internal/domain"
)

const (
	day = 24 * time.Hour
	// daysPerMonth is the month length used for all age bucketing.
	daysPerMonth = 30
	// trendMonths is how many monthly buckets a trend keeps.
	trendMonths    = 12
	recentWindow   = 30 * day
	topContributor = 10
	// percentTenths is 100% expressed in tenths of a percent.
	percentTenths = 1000
)

// Aggregate derives the analytics of a snapshot relative to now.
// It performs no I/O and is deterministic for a fixed now.
func Aggregate(snapshot domain.RepositorySnapshot, now time.Time) domain.RepositoryAnalytics {
	repo := snapshot.Repository
	counts := snapshot.TotalCounts
	age := ageStats(repo, now)

	analytics := domain.RepositoryAnalytics{
		Age:          age,
		Languages:    languageStats(snapshot.Languages),
		Contributors: contributorStats(snapshot.Contributors, counts.Contributors),
		Commits:      commitStats(snapshot.Commits, counts.Commits, age, now),
		Releases:     releaseStats(snapshot.Releases, counts.Releases, age),
		Branches:     totalOf(counts.Branches, len(snapshot.Branches)),
		Tags:         totalOf(counts.Tags, len(snapshot.Tags)),
		Issues:       openClosed(counts.IssuesOpen, counts.IssuesClosed),
		PullRequests: openClosed(counts.PRsOpen, counts.PRsClosed),
		Metrics:      metrics(repo, age),
		Category:     Categorize(repo),
	}

	analytics.Scores = domain.Scores{
		Health:    HealthScore(repo, age, len(snapshot.Contributors), len(snapshot.Releases)),
		Activity:  ActivityScore(repo, age, len(snapshot.Commits)),
		Community: CommunityScore(repo, len(snapshot.Contributors)),
	}
	analytics.Scores.Overall = overallScore(analytics.Scores)
	return analytics
}

// totalOf prefers the inferred total and falls back to the sample length
// when inference produced nothing.
func totalOf(count domain.InferredCount, sampled int) int {
	if count.Value > 0 {
		return count.Value
	}
	return sampled
}

func daysBetween(from, to time.Time) int {
	if from.IsZero() || to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / day)
}

func ageStats(repo domain.Repository, now time.Time) domain.AgeStats {
	days := daysBetween(repo.CreatedAt, now)
	months := days / daysPerMonth
	return domain.AgeStats{
		Days:            days,
		Months:          months,
		Years:           months / 12,
		DaysSinceUpdate: daysBetween(repo.UpdatedAt, now),
	}
}

// languageStats splits the byte total into one-decimal percentages summing to
// exactly 100 by largest remainder.
func languageStats(languages map[string]int) domain.LanguageStats {
	result := domain.LanguageStats{Primary: "Unknown", Distribution: []domain.LanguageShare{}}
	for _, bytes := range languages {
		result.Total += bytes
	}
	if result.Total == 0 {
		return result
	}

	type share struct {
		name      string
		bytes     int
		tenths    int64
		remainder int64
	}
	total := int64(result.Total)
	shares := make([]share, 0, len(languages))
	assigned := int64(0)
	for name, bytes := range languages {
		scaled := int64(bytes) * percentTenths
		s := share{name: name, bytes: bytes, tenths: scaled / total, remainder: scaled % total}
		assigned += s.tenths
		shares = append(shares, s)
	}
	sort.Slice(shares, func(i, j int) bool {
		a, b := shares[i], shares[j]
		if a.remainder != b.remainder {
			return a.remainder > b.remainder
		}
		if a.bytes != b.bytes {
			return a.bytes > b.bytes
		}
		return a.name < b.name
	})
	for i := int64(0); i < percentTenths-assigned; i++ {
		shares[i].tenths++
	}

	for _, s := range shares {
		result.Distribution = append(result.Distribution, domain.LanguageShare{
			Language:   s.name,
			Bytes:      s.bytes,
			Percentage: float64(s.tenths) / 10,
		})
	}
	sort.Slice(result.Distribution, func(i, j int) bool {
		a, b := result.Distribution[i], result.Distribution[j]
		if a.Bytes != b.Bytes {
			return a.Bytes > b.Bytes
		}
		return a.Language < b.Language
	})
	result.Primary = result.Distribution[0].Language
	return result
}

func contributorStats(sample []domain.Contributor, inferred domain.InferredCount) domain.ContributorStats {
	total := totalOf(inferred, len(sample))
	sum := 0
	for _, c := range sample {
		sum += c.Contributions
	}
	top := sample
	if len(top) > topContributor {
		top = top[:topContributor]
	}
	return domain.ContributorStats{
		Total:                total,
		TotalContributions:   sum,
		AverageContributions: roundInt(float64(sum) / float64(max(total, 1))),
		Top:                  append([]domain.Contributor{}, top...),
	}
}

func commitStats(sample []domain.Commit, inferred domain.InferredCount, age domain.AgeStats, now time.Time) domain.CommitStats {
	total := totalOf(inferred, len(sample))
	byMonth := make(map[string]int)
	recent := 0
	for _, c := range sample {
		if c.AuthoredAt.IsZero() {
			continue
		}
		byMonth[monthKey(c.AuthoredAt)]++
		if !c.AuthoredAt.After(now) && now.Sub(c.AuthoredAt) <= recentWindow {
			recent++
		}
	}

	counts := sortedMonthCounts(byMonth)
	if len(counts) > trendMonths {
		counts = counts[len(counts)-trendMonths:]
	}
	trend := make([]domain.MonthlyCommits, 0, len(counts))
	for _, mc := range counts {
		trend = append(trend, domain.MonthlyCommits{Month: mc.Month, Commits: mc.Count})
	}

	return domain.CommitStats{
		Total:           total,
		Trend:           trend,
		AveragePerMonth: roundInt(float64(total) / float64(max(age.Months, 1))),
		RecentActivity:  recent,
	}
}

func releaseStats(sample []domain.Release, inferred domain.InferredCount, age domain.AgeStats) domain.ReleaseStats {
	result := domain.ReleaseStats{Total: totalOf(inferred, len(sample))}
	if len(sample) > 0 {
		latest := sample[0]
		result.Latest = &latest
	}
	if result.Total > 0 {
		result.FrequencyMonths = roundInt(float64(age.Months) / float64(result.Total))
	}
	return result
}

func openClosed(open, closed domain.InferredCount) domain.OpenClosed {
	return domain.OpenClosed{
		Open:   open.Value,
		Closed: closed.Value,
		Total:  open.Value + closed.Value,
	}
}

func metrics(repo domain.Repository, age domain.AgeStats) domain.Metrics {
	m := domain.Metrics{
		StarsPerDay: float64(repo.Stars) / float64(max(age.Days, 1)),
		IssuesRatio: float64(repo.OpenIssuesCount) / float64(max(repo.Stars, 1)),
		SizePerStar: float64(repo.SizeKB),
	}
	if repo.Stars > 0 {
		m.ForksPerStar = float64(repo.Forks) / float64(repo.Stars)
		m.SizePerStar = float64(repo.SizeKB) / float64(repo.Stars)
	}
	return m
}

func overallScore(s domain.Scores) int {
	mean, err := stats.Mean(stats.Float64Data{float64(s.Health), float64(s.Activity), float64(s.Community)})
	if err != nil {
		return 0
	}
	return roundInt(mean)
}

// roundInt rounds half away from zero.
func roundInt(v float64) int {
	r, err := stats.Round(v, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func sortedMonthCounts(byMonth map[string]int) []domain.MonthCount {
	out := make([]domain.MonthCount, 0, len(byMonth))
	for month, count := range byMonth {
		out = append(out, domain.MonthCount{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
