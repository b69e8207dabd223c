// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Repository holds the repository metadata returned by the GitHub API.
// Optional upstream fields are flattened to their zero values.
type Repository struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Owner           string    `json:"owner"`
	Description     string    `json:"description"`
	Homepage        string    `json:"homepage"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language"`
	Topics          []string  `json:"topics"`
	DefaultBranch   string    `json:"default_branch"`
	Stars           int       `json:"stargazers_count"`
	Forks           int       `json:"forks_count"`
	Watchers        int       `json:"watchers_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	SizeKB          int       `json:"size"`
	HasLicense      bool      `json:"has_license"`
	LicenseName     string    `json:"license_name,omitempty"`
	HasIssues       bool      `json:"has_issues"`
	HasWiki         bool      `json:"has_wiki"`
	HasPages        bool      `json:"has_pages"`
	HasProjects     bool      `json:"has_projects"`
	Private         bool      `json:"private"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
}

// Contributor is a single entry of the contributors listing.
type Contributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
}

// Commit is a sampled commit. Only the author date is used for analytics.
type Commit struct {
	SHA        string    `json:"sha"`
	Message    string    `json:"message"`
	Author     string    `json:"author"`
	AuthoredAt time.Time `json:"authored_at"`
}

type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	CreatedAt   time.Time `json:"created_at"`
	PublishedAt time.Time `json:"published_at"`
}

type Tag struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
}

type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
}

// Issue is an entry of the issues listing. IsPullRequest is set when the
// tracker item carries pull request markers.
type Issue struct {
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	State         string    `json:"state"`
	Author        string    `json:"author"`
	IsPullRequest bool      `json:"is_pull_request"`
	CreatedAt     time.Time `json:"created_at"`
	ClosedAt      time.Time `json:"closed_at"`
}

type PullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	MergedAt  time.Time `json:"merged_at"`
	ClosedAt  time.Time `json:"closed_at"`
}

type Fork struct {
	FullName  string    `json:"full_name"`
	Owner     string    `json:"owner"`
	Stars     int       `json:"stargazers_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is a repository event; only the actor is used for ranking.
type Event struct {
	Type      string    `json:"type"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// User holds a GitHub user profile.
type User struct {
	Login       string    `json:"login"`
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Type        string    `json:"type"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Company     string    `json:"company"`
	Blog        string    `json:"blog"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
}

// RateLimit is the core REST quota of the current credentials.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}
