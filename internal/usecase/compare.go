package usecase

import (
	"fmt"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/repo-insights/internal/domain"
)

const (
	radarFullMark = 100
	maxStrengths  = 5

	starsWeight        = 3
	contributorsWeight = 2.5
	healthWeight       = 2
	activityWeight     = 1.5
	openIssuesWeight   = 1
)

// NoStrengthsMessage is used when a side leads in no metric.
const NoStrengthsMessage = "Competitive performance across all metrics"

// Compare reduces two analysed repositories into chart data and a verdict.
// It is symmetric: swapping the inputs swaps the sides of every result.
func Compare(first, second *domain.RepositoryDetails) domain.Comparison {
	return domain.Comparison{
		First:           first.Snapshot.Repository.FullName,
		Second:          second.Snapshot.Repository.FullName,
		Radar:           radar(first, second),
		Metrics:         metricTable(first, second),
		FirstStrengths:  strengths(first, second),
		SecondStrengths: strengths(second, first),
		Verdict:         verdict(first, second),
	}
}

func radarValues(d *domain.RepositoryDetails) []float64 {
	repo := d.Snapshot.Repository
	scores := d.Analytics.Scores
	return []float64{
		math.Log10(float64(repo.Stars)+1) * 20,
		math.Log10(float64(repo.Forks)+1) * 25,
		float64(len(d.Snapshot.Contributors) * 2),
		float64(scores.Health),
		float64(scores.Activity),
		float64(scores.Community),
	}
}

var radarSubjects = []string{"Stars", "Forks", "Contributors", "Health", "Activity", "Community"}

func radar(first, second *domain.RepositoryDetails) []domain.RadarAxis {
	a, b := radarValues(first), radarValues(second)
	axes := make([]domain.RadarAxis, 0, len(radarSubjects))
	for i, subject := range radarSubjects {
		axes = append(axes, domain.RadarAxis{
			Subject:  subject,
			First:    clampAxis(a[i]),
			Second:   clampAxis(b[i]),
			FullMark: radarFullMark,
		})
	}
	return axes
}

func clampAxis(v float64) float64 {
	v = math.Max(0, math.Min(v, radarFullMark))
	rounded, err := stats.Round(v, 1)
	if err != nil {
		return 0
	}
	return rounded
}

// higher reports which side has the larger value; equal values tie.
func higher(a, b float64) domain.Side {
	switch {
	case a > b:
		return domain.SideFirst
	case b > a:
		return domain.SideSecond
	default:
		return domain.SideTie
	}
}

func metricTable(first, second *domain.RepositoryDetails) []domain.MetricComparison {
	r1, r2 := first.Snapshot.Repository, second.Snapshot.Repository
	a1, a2 := first.Analytics, second.Analytics

	count := func(name string, v1, v2 int) domain.MetricComparison {
		return domain.MetricComparison{
			Name:   name,
			First:  strconv.Itoa(v1),
			Second: strconv.Itoa(v2),
			Winner: higher(float64(v1), float64(v2)),
		}
	}
	score := func(name string, v1, v2 int) domain.MetricComparison {
		m := count(name, v1, v2)
		m.First, m.Second = m.First+"%", m.Second+"%"
		return m
	}

	openIssues := count("Open Issues", r1.OpenIssuesCount, r2.OpenIssuesCount)
	// Fewer open issues is better.
	openIssues.Winner = higher(float64(r2.OpenIssuesCount), float64(r1.OpenIssuesCount))

	return []domain.MetricComparison{
		count("Stars", r1.Stars, r2.Stars),
		count("Forks", r1.Forks, r2.Forks),
		count("Watchers", r1.Watchers, r2.Watchers),
		count("Contributors", len(first.Snapshot.Contributors), len(second.Snapshot.Contributors)),
		openIssues,
		{
			Name:   "Repository Size",
			First:  fmt.Sprintf("%d KB", r1.SizeKB),
			Second: fmt.Sprintf("%d KB", r2.SizeKB),
			Winner: domain.SideTie,
		},
		count("Languages", len(first.Snapshot.Languages), len(second.Snapshot.Languages)),
		score("Health Score", a1.Scores.Health, a2.Scores.Health),
		score("Activity Score", a1.Scores.Activity, a2.Scores.Activity),
		score("Community Score", a1.Scores.Community, a2.Scores.Community),
	}
}

// strengths lists where self leads other, at most maxStrengths entries.
func strengths(self, other *domain.RepositoryDetails) []string {
	r, o := self.Snapshot.Repository, other.Snapshot.Repository
	a, b := self.Analytics, other.Analytics

	var out []string
	add := func(ok bool, format string, v int) {
		if ok {
			out = append(out, fmt.Sprintf(format, v))
		}
	}
	add(r.Stars > o.Stars, "Higher popularity with %d stars", r.Stars)
	add(r.Forks > o.Forks, "More community engagement with %d forks", r.Forks)
	add(len(self.Snapshot.Contributors) > len(other.Snapshot.Contributors), "Larger contributor base with %d contributors", len(self.Snapshot.Contributors))
	add(a.Scores.Health > b.Scores.Health, "Better repository health score (%d%%)", a.Scores.Health)
	add(a.Scores.Activity > b.Scores.Activity, "Higher activity level (%d%%)", a.Scores.Activity)
	add(a.Scores.Community > b.Scores.Community, "Stronger community engagement (%d%%)", a.Scores.Community)
	add(r.OpenIssuesCount < o.OpenIssuesCount, "Better issue management with %d open issues", r.OpenIssuesCount)
	add(len(self.Snapshot.Languages) > len(other.Snapshot.Languages), "More diverse technology stack with %d languages", len(self.Snapshot.Languages))

	if len(out) == 0 {
		return []string{NoStrengthsMessage}
	}
	if len(out) > maxStrengths {
		out = out[:maxStrengths]
	}
	return out
}

func verdict(first, second *domain.RepositoryDetails) domain.Verdict {
	r1, r2 := first.Snapshot.Repository, second.Snapshot.Repository
	a1, a2 := first.Analytics.Scores, second.Analytics.Scores

	var v domain.Verdict
	award := func(side domain.Side, weight float64) {
		switch side {
		case domain.SideFirst:
			v.FirstScore += weight
		case domain.SideSecond:
			v.SecondScore += weight
		}
	}
	award(higher(float64(r1.Stars), float64(r2.Stars)), starsWeight)
	award(higher(float64(len(first.Snapshot.Contributors)), float64(len(second.Snapshot.Contributors))), contributorsWeight)
	award(higher(float64(a1.Health), float64(a2.Health)), healthWeight)
	award(higher(float64(a1.Activity), float64(a2.Activity)), activityWeight)
	award(higher(float64(r2.OpenIssuesCount), float64(r1.OpenIssuesCount)), openIssuesWeight)

	v.Winner = higher(v.FirstScore, v.SecondScore)
	switch v.Winner {
	case domain.SideFirst:
		v.WinnerName = r1.FullName
		v.Summary = fmt.Sprintf("%s (Score: %.1f)", r1.FullName, v.FirstScore)
	case domain.SideSecond:
		v.WinnerName = r2.FullName
		v.Summary = fmt.Sprintf("%s (Score: %.1f)", r2.FullName, v.SecondScore)
	default:
		v.Summary = "Tie - Both repositories are equally strong"
	}
	return v
}
