package domain

import "time"

// CountSource records which inference strategy produced an InferredCount.
type CountSource string

const (
	// SourcePagination means the count was read from the last-page link.
	SourcePagination CountSource = "pagination"
	// SourcePageLength means no last-page link was present and the length of
	// the single-item page was used instead. This undercounts.
	SourcePageLength CountSource = "page-length"
	SourceGraphQL    CountSource = "graphql"
	SourceSearch     CountSource = "search"
	// SourceList counts through the list endpoints. The issues list also
	// returns pull requests, so issue totals from it include them.
	SourceList CountSource = "list"
	// SourceNone means every strategy failed; the value is 0 but unconfirmed.
	SourceNone CountSource = "none"
)

// InferredCount is a total derived from response metadata rather than by
// counting returned items.
type InferredCount struct {
	Value  int         `json:"value"`
	Source CountSource `json:"source"`
}

// Known reports whether some strategy produced the value.
func (c InferredCount) Known() bool {
	return c.Source != "" && c.Source != SourceNone
}

// TotalCounts holds the inferred totals of a repository's collections.
type TotalCounts struct {
	Contributors InferredCount `json:"contributors"`
	Commits      InferredCount `json:"commits"`
	Releases     InferredCount `json:"releases"`
	Branches     InferredCount `json:"branches"`
	Tags         InferredCount `json:"tags"`
	IssuesOpen   InferredCount `json:"issues_open"`
	IssuesClosed InferredCount `json:"issues_closed"`
	PRsOpen      InferredCount `json:"prs_open"`
	PRsClosed    InferredCount `json:"prs_closed"`
}

// RepositorySnapshot is one fetched view of a repository and its sampled
// sub-collections.
type RepositorySnapshot struct {
	Repository   Repository     `json:"repository"`
	Contributors []Contributor  `json:"contributors"`
	Languages    map[string]int `json:"languages"`
	Commits      []Commit       `json:"commits"`
	Releases     []Release      `json:"releases"`
	Tags         []Tag          `json:"tags"`
	Branches     []Branch       `json:"branches"`
	TotalCounts  TotalCounts    `json:"total_counts"`
	FetchedAt    time.Time      `json:"fetched_at"`
}

// RepositoryDetails pairs a snapshot with the analytics computed from it.
type RepositoryDetails struct {
	Snapshot  RepositorySnapshot  `json:"snapshot"`
	Analytics RepositoryAnalytics `json:"analytics"`
}

// MonthlyActivity is one bucket of the activity heatmap.
type MonthlyActivity struct {
	Month      string `json:"month"`
	IssueCount int    `json:"issues"`
	PRCount    int    `json:"prs"`
	Total      int    `json:"total"`
}

// MonthCount is a month key (YYYY-MM) with a count.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ActorActivity is the number of events attributed to one actor.
type ActorActivity struct {
	Login    string `json:"login"`
	Activity int    `json:"activity"`
}

// ActivityWindow holds the supplementary activity data of a repository.
type ActivityWindow struct {
	Issues          []Issue           `json:"issues"`
	PullRequests    []PullRequest     `json:"pull_requests"`
	Forks           []Fork            `json:"forks"`
	Events          []Event           `json:"events"`
	IssuesTrend     []MonthCount      `json:"issues_trend"`
	PRsTrend        []MonthCount      `json:"prs_trend"`
	ActivityHeatmap []MonthlyActivity `json:"activity_heatmap"`
	TopContributors []ActorActivity   `json:"top_contributors"`
}
