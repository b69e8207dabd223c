package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// Comparison writes a side-by-side comparison of two repositories.
func Comparison(w io.Writer, c *domain.Comparison, opts Options) error {
	if opts.Format == JSON {
		return writeJSON(w, c)
	}
	p := opts.palette()

	mark := func(value string, won bool) string {
		if won {
			return p.good(value)
		}
		return value
	}
	var rows [][]string
	for _, m := range c.Metrics {
		winner := "-"
		switch m.Winner {
		case domain.SideFirst:
			winner = c.First
		case domain.SideSecond:
			winner = c.Second
		}
		rows = append(rows, []string{
			m.Name,
			mark(m.First, m.Winner == domain.SideFirst),
			mark(m.Second, m.Winner == domain.SideSecond),
			winner,
		})
	}
	if err := writeTable(w, []string{"Metric", c.First, c.Second, "Winner"}, rows, false); err != nil {
		return err
	}

	if err := writeSection(w, p, "Radar"); err != nil {
		return err
	}
	var radar [][]string
	for _, axis := range c.Radar {
		radar = append(radar, []string{axis.Subject, fmt.Sprintf("%.1f", axis.First), fmt.Sprintf("%.1f", axis.Second)})
	}
	if err := writeTable(w, []string{"Axis", c.First, c.Second}, radar, true); err != nil {
		return err
	}

	for _, side := range []struct {
		name      string
		strengths []string
	}{{c.First, c.FirstStrengths}, {c.Second, c.SecondStrengths}} {
		if err := writeSection(w, p, side.name+" strengths"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  - %s\n", strings.Join(side.strengths, "\n  - ")); err != nil {
			return err
		}
	}

	summary := c.Verdict.Summary
	if c.Verdict.Winner == domain.SideTie {
		summary = p.warn(summary)
	} else {
		summary = p.good(summary)
	}
	_, err := fmt.Fprintf(w, "\nWinner: %s\n", summary)
	return err
}
