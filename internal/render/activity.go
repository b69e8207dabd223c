package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// Activity writes the activity window of one repository.
func Activity(w io.Writer, window *domain.ActivityWindow, opts Options) error {
	if opts.Format == JSON {
		return writeJSON(w, window)
	}
	p := opts.palette()

	if _, err := fmt.Fprintf(w, "Sampled %d issues, %d pull requests, %d forks, %d events\n",
		len(window.Issues), len(window.PullRequests), len(window.Forks), len(window.Events)); err != nil {
		return err
	}

	if err := writeSection(w, p, "Last 12 months"); err != nil {
		return err
	}
	var rows [][]string
	for _, m := range window.ActivityHeatmap {
		rows = append(rows, []string{m.Month, strconv.Itoa(m.IssueCount), strconv.Itoa(m.PRCount), strconv.Itoa(m.Total)})
	}
	if err := writeTable(w, []string{"Month", "Issues", "PRs", "Total"}, rows, true); err != nil {
		return err
	}

	if len(window.TopContributors) == 0 {
		return nil
	}
	if err := writeSection(w, p, "Most active"); err != nil {
		return err
	}
	var actors [][]string
	for i, a := range window.TopContributors {
		actors = append(actors, []string{strconv.Itoa(i + 1), a.Login, strconv.Itoa(a.Activity)})
	}
	return writeTable(w, []string{"Rank", "Login", "Events"}, actors, false)
}
