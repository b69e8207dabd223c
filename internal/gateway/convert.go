package gateway

import (
	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/repo-insights/internal/domain"
)

func toRepository(r *github.Repository) domain.Repository {
	out := domain.Repository{
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Owner:           r.GetOwner().GetLogin(),
		Description:     r.GetDescription(),
		Homepage:        r.GetHomepage(),
		HTMLURL:         r.GetHTMLURL(),
		Language:        r.GetLanguage(),
		Topics:          r.Topics,
		DefaultBranch:   r.GetDefaultBranch(),
		Stars:           r.GetStargazersCount(),
		Forks:           r.GetForksCount(),
		Watchers:        r.GetWatchersCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		SizeKB:          r.GetSize(),
		HasIssues:       r.GetHasIssues(),
		HasWiki:         r.GetHasWiki(),
		HasPages:        r.GetHasPages(),
		HasProjects:     r.GetHasProjects(),
		Private:         r.GetPrivate(),
		Fork:            r.GetFork(),
		Archived:        r.GetArchived(),
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		PushedAt:        r.GetPushedAt().Time,
	}
	if license := r.GetLicense(); license != nil {
		out.HasLicense = true
		out.LicenseName = license.GetName()
	}
	return out
}

func toCommit(c *github.RepositoryCommit) domain.Commit {
	author := c.GetAuthor().GetLogin()
	if author == "" {
		author = c.GetCommit().GetAuthor().GetName()
	}
	return domain.Commit{
		SHA:        c.GetSHA(),
		Message:    c.GetCommit().GetMessage(),
		Author:     author,
		AuthoredAt: c.GetCommit().GetAuthor().GetDate().Time,
	}
}

func toUser(u *github.User) domain.User {
	return domain.User{
		Login:       u.GetLogin(),
		ID:          u.GetID(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Type:        u.GetType(),
		Bio:         u.GetBio(),
		Location:    u.GetLocation(),
		Company:     u.GetCompany(),
		Blog:        u.GetBlog(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		PublicRepos: u.GetPublicRepos(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}
