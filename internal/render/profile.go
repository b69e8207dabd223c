package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// Profile writes a user profile with their top repositories.
func Profile(w io.Writer, profile *domain.Profile, opts Options) error {
	if opts.Format == JSON {
		return writeJSON(w, profile)
	}
	p := opts.palette()
	u := profile.User

	if _, err := fmt.Fprintf(w, "%s (%s)\n%s\n", p.title(u.Login), u.HTMLURL, profile.Summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Followers: %d  Following: %d  Public repos: %d  Stars: %d  Forks: %d\n",
		u.Followers, u.Following, u.PublicRepos, profile.TotalStars, profile.TotalForks); err != nil {
		return err
	}

	if len(profile.TopLanguages) > 0 {
		var langs []string
		for _, l := range profile.TopLanguages {
			langs = append(langs, fmt.Sprintf("%s (%d)", l.Language, l.Count))
		}
		if _, err := fmt.Fprintf(w, "Languages: %s\n", strings.Join(langs, ", ")); err != nil {
			return err
		}
	}

	if len(profile.Repositories) == 0 {
		return nil
	}
	if err := writeSection(w, p, "Repositories"); err != nil {
		return err
	}
	var rows [][]string
	for _, r := range profile.Repositories {
		rows = append(rows, []string{r.Name, r.Language, strconv.Itoa(r.Stars), strconv.Itoa(r.Forks)})
	}
	return writeTable(w, []string{"Name", "Language", "Stars", "Forks"}, rows, false)
}

// Developers writes enriched developer profiles, one row each.
func Developers(w io.Writer, developers []domain.DeveloperProfile, opts Options) error {
	if opts.Format == JSON {
		return writeJSON(w, developers)
	}
	p := opts.palette()
	var rows [][]string
	for _, d := range developers {
		badge := d.Badge
		if !d.Detailed {
			badge = p.warn(badge)
		}
		rows = append(rows, []string{
			d.Login,
			d.Name,
			strconv.Itoa(d.Followers),
			strconv.Itoa(d.TotalStars),
			d.TopRepo,
			strings.Join(d.Languages, ", "),
			badge,
		})
	}
	return writeTable(w, []string{"Login", "Name", "Followers", "Stars", "Top repo", "Languages", "Badge"}, rows, false)
}

// RateLimit writes the current API quota.
func RateLimit(w io.Writer, limit *domain.RateLimit, opts Options) error {
	if opts.Format == JSON {
		return writeJSON(w, limit)
	}
	p := opts.palette()
	remaining := strconv.Itoa(limit.Remaining)
	if limit.Limit > 0 && limit.Remaining*10 < limit.Limit {
		remaining = p.bad(remaining)
	}
	return writeTable(w, []string{"Limit", "Remaining", "Resets at"}, [][]string{{
		strconv.Itoa(limit.Limit), remaining, limit.Reset.UTC().Format("2006-01-02 15:04:05 MST"),
	}}, false)
}
