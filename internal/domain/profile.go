package domain

// LanguageUsage counts how many repositories use a primary language.
type LanguageUsage struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Profile is a user with their top repositories and a derived summary.
type Profile struct {
	User         User            `json:"user"`
	Repositories []Repository    `json:"repositories"`
	TopLanguages []LanguageUsage `json:"top_languages"`
	TotalStars   int             `json:"total_stars"`
	TotalForks   int             `json:"total_forks"`
	Summary      string          `json:"summary"`
}

// DeveloperProfile is a user enriched with repository-derived figures.
// Detailed is false when the lookup failed and only the login is known.
type DeveloperProfile struct {
	Login        string       `json:"login"`
	Name         string       `json:"name"`
	AvatarURL    string       `json:"avatar_url"`
	HTMLURL      string       `json:"html_url"`
	Followers    int          `json:"followers"`
	Following    int          `json:"following"`
	PublicRepos  int          `json:"public_repos"`
	Bio          string       `json:"bio,omitempty"`
	Location     string       `json:"location,omitempty"`
	Company      string       `json:"company,omitempty"`
	TotalStars   int          `json:"total_stars"`
	TopRepo      string       `json:"top_repo"`
	Languages    []string     `json:"languages"`
	Badge        string       `json:"badge"`
	Repositories []Repository `json:"repositories,omitempty"`
	Detailed     bool         `json:"detailed"`
}
