package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// Repository writes the analytics of one repository.
func Repository(w io.Writer, details *domain.RepositoryDetails, opts Options) error {
	if opts.Format == JSON {
		return writeJSON(w, details)
	}
	p := opts.palette()
	repo := details.Snapshot.Repository
	a := details.Analytics

	if _, err := fmt.Fprintf(w, "%s  [%s]\n", p.title(repo.FullName), a.Category); err != nil {
		return err
	}
	if repo.Description != "" {
		if _, err := fmt.Fprintln(w, repo.Description); err != nil {
			return err
		}
	}

	if err := writeSection(w, p, "Scores"); err != nil {
		return err
	}
	err := writeTable(w, []string{"Health", "Activity", "Community", "Overall"}, [][]string{{
		p.score(a.Scores.Health), p.score(a.Scores.Activity), p.score(a.Scores.Community), p.score(a.Scores.Overall),
	}}, true)
	if err != nil {
		return err
	}

	counts := details.Snapshot.TotalCounts
	if err := writeSection(w, p, "Overview"); err != nil {
		return err
	}
	rows := [][]string{
		{"Stars", strconv.Itoa(repo.Stars)},
		{"Forks", strconv.Itoa(repo.Forks)},
		{"Watchers", strconv.Itoa(repo.Watchers)},
		{"Contributors", countCell(a.Contributors.Total, counts.Contributors)},
		{"Commits", countCell(a.Commits.Total, counts.Commits)},
		{"Releases", countCell(a.Releases.Total, counts.Releases)},
		{"Branches", countCell(a.Branches, counts.Branches)},
		{"Tags", countCell(a.Tags, counts.Tags)},
		{"Issues (open/closed)", fmt.Sprintf("%d / %d", a.Issues.Open, a.Issues.Closed)},
		{"Pull requests (open/closed)", fmt.Sprintf("%d / %d", a.PullRequests.Open, a.PullRequests.Closed)},
		{"Age", fmt.Sprintf("%d days (%d years)", a.Age.Days, a.Age.Years)},
		{"Last update", fmt.Sprintf("%d days ago", a.Age.DaysSinceUpdate)},
		{"Commits per month", strconv.Itoa(a.Commits.AveragePerMonth)},
		{"Commits in last 30 days", strconv.Itoa(a.Commits.RecentActivity)},
		{"Stars per day", fmt.Sprintf("%.2f", a.Metrics.StarsPerDay)},
	}
	if a.Releases.Latest != nil {
		rows = append(rows, []string{"Latest release", a.Releases.Latest.TagName})
	}
	if err := writeTable(w, []string{"Metric", "Value"}, rows, false); err != nil {
		return err
	}

	if len(a.Languages.Distribution) > 0 {
		if err := writeSection(w, p, "Languages"); err != nil {
			return err
		}
		var langRows [][]string
		for _, l := range a.Languages.Distribution {
			langRows = append(langRows, []string{l.Language, strconv.Itoa(l.Bytes), fmt.Sprintf("%.1f%%", l.Percentage)})
		}
		if err := writeTable(w, []string{"Language", "Bytes", "Share"}, langRows, false); err != nil {
			return err
		}
	}

	if len(a.Contributors.Top) > 0 {
		if err := writeSection(w, p, "Top contributors"); err != nil {
			return err
		}
		var contribRows [][]string
		for i, c := range a.Contributors.Top {
			contribRows = append(contribRows, []string{strconv.Itoa(i + 1), c.Login, strconv.Itoa(c.Contributions)})
		}
		if err := writeTable(w, []string{"Rank", "Login", "Contributions"}, contribRows, false); err != nil {
			return err
		}
	}
	return nil
}

// countCell marks totals that may undercount.
func countCell(total int, inferred domain.InferredCount) string {
	switch inferred.Source {
	case domain.SourcePageLength, domain.SourceNone:
		return fmt.Sprintf("%d (%s)", total, strings.ReplaceAll(string(inferred.Source), "-", " "))
	default:
		return strconv.Itoa(total)
	}
}
