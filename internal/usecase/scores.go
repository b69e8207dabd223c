package usecase

import "github.com/naka-gawa/repo-insights/internal/domain"

const maxScore = 100

// HealthScore rates repository upkeep. Each tier group awards only its
// highest matching tier. contributors and releases are sample lengths.
func HealthScore(repo domain.Repository, age domain.AgeStats, contributors, releases int) int {
	score := 0
	if repo.Description != "" {
		score += 15
	}
	if repo.Homepage != "" {
		score += 10
	}

	switch {
	case age.Days < 30:
		score += 20
	case age.Days < 90:
		score += 15
	case age.Days < 365:
		score += 10
	}

	switch {
	case repo.Stars > 100:
		score += 15
	case repo.Stars > 10:
		score += 10
	case repo.Stars > 0:
		score += 5
	}

	switch {
	case contributors > 5:
		score += 10
	case contributors > 1:
		score += 5
	}

	if releases > 0 {
		score += 10
	}
	if repo.HasLicense {
		score += 10
	}
	if repo.HasIssues && float64(repo.OpenIssuesCount) < float64(repo.Stars)*0.1 {
		score += 10
	}
	return min(score, maxScore)
}

// ActivityScore rates how alive a repository is. commits is the sample length,
// spread over the repository age in whole months.
func ActivityScore(repo domain.Repository, age domain.AgeStats, commits int) int {
	score := 0
	switch {
	case age.DaysSinceUpdate < 7:
		score += 30
	case age.DaysSinceUpdate < 30:
		score += 20
	case age.DaysSinceUpdate < 90:
		score += 10
	}

	perMonth := float64(commits) / float64(max(age.Days/daysPerMonth, 1))
	switch {
	case perMonth > 10:
		score += 25
	case perMonth > 5:
		score += 20
	case perMonth > 1:
		score += 15
	case perMonth > 0:
		score += 10
	}

	if repo.HasIssues {
		score += 10
	}
	if repo.HasProjects {
		score += 5
	}
	if repo.HasWiki {
		score += 5
	}
	if repo.HasPages {
		score += 5
	}
	if repo.SizeKB > 1000 {
		score += 10
	}
	return min(score, maxScore)
}

// CommunityScore rates audience and openness. contributors is the sample length.
func CommunityScore(repo domain.Repository, contributors int) int {
	score := 0
	switch {
	case repo.Stars > 1000:
		score += 25
	case repo.Stars > 100:
		score += 20
	case repo.Stars > 10:
		score += 15
	case repo.Stars > 0:
		score += 10
	}

	switch {
	case repo.Forks > 100:
		score += 20
	case repo.Forks > 10:
		score += 15
	case repo.Forks > 0:
		score += 10
	}

	switch {
	case contributors > 20:
		score += 20
	case contributors > 10:
		score += 15
	case contributors > 5:
		score += 10
	case contributors > 1:
		score += 5
	}

	switch {
	case repo.Watchers > 50:
		score += 15
	case repo.Watchers > 10:
		score += 10
	case repo.Watchers > 0:
		score += 5
	}

	if repo.HasLicense {
		score += 10
	}
	if repo.HasIssues {
		score += 5
	}
	if !repo.Private {
		score += 5
	}
	return min(score, maxScore)
}
