package domain

// AgeStats describes how old a repository is. A month is 30 days.
type AgeStats struct {
	Days            int `json:"days"`
	Months          int `json:"months"`
	Years           int `json:"years"`
	DaysSinceUpdate int `json:"days_since_update"`
}

type LanguageShare struct {
	Language   string  `json:"language"`
	Bytes      int     `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

type LanguageStats struct {
	Total        int             `json:"total"`
	Primary      string          `json:"primary"`
	Distribution []LanguageShare `json:"distribution"`
}

// ContributorStats summarizes contributors. TotalContributions only sums the
// sampled contributors.
type ContributorStats struct {
	Total                int           `json:"total"`
	TotalContributions   int           `json:"total_contributions"`
	AverageContributions int           `json:"average_contributions"`
	Top                  []Contributor `json:"top"`
}

type MonthlyCommits struct {
	Month   string `json:"month"`
	Commits int    `json:"commits"`
}

type CommitStats struct {
	Total           int              `json:"total"`
	Trend           []MonthlyCommits `json:"trend"`
	AveragePerMonth int              `json:"average_per_month"`
	RecentActivity  int              `json:"recent_activity"`
}

type ReleaseStats struct {
	Total  int      `json:"total"`
	Latest *Release `json:"latest"`
	// FrequencyMonths is the average number of months between releases.
	FrequencyMonths int `json:"frequency_months"`
}

// OpenClosed is an open/closed tally taken from the inferred totals.
type OpenClosed struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
	Total  int `json:"total"`
}

// Scores are integers in [0,100].
type Scores struct {
	Health    int `json:"health"`
	Activity  int `json:"activity"`
	Community int `json:"community"`
	Overall   int `json:"overall"`
}

type Metrics struct {
	StarsPerDay  float64 `json:"stars_per_day"`
	ForksPerStar float64 `json:"forks_per_star"`
	IssuesRatio  float64 `json:"issues_ratio"`
	SizePerStar  float64 `json:"size_per_star"`
}

// RepositoryAnalytics is derived from a RepositorySnapshot and a reference time.
// It is recomputed on every fetch and never stored.
type RepositoryAnalytics struct {
	Age          AgeStats         `json:"age"`
	Languages    LanguageStats    `json:"languages"`
	Contributors ContributorStats `json:"contributors"`
	Commits      CommitStats      `json:"commits"`
	Releases     ReleaseStats     `json:"releases"`
	Branches     int              `json:"branches"`
	Tags         int              `json:"tags"`
	Issues       OpenClosed       `json:"issues"`
	PullRequests OpenClosed       `json:"pull_requests"`
	Scores       Scores           `json:"scores"`
	Metrics      Metrics          `json:"metrics"`
	Category     string           `json:"category"`
}
