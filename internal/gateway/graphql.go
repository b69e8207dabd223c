package gateway

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
)

// issueCountsQuery reads issue and pull request totals without paging through them.
type issueCountsQuery struct {
	Repository struct {
		OpenIssues struct {
			TotalCount int
		} `graphql:"openIssues: issues(states: OPEN)"`
		ClosedIssues struct {
			TotalCount int
		} `graphql:"closedIssues: issues(states: CLOSED)"`
		OpenPullRequests struct {
			TotalCount int
		} `graphql:"openPullRequests: pullRequests(states: OPEN)"`
		ClosedPullRequests struct {
			TotalCount int
		} `graphql:"closedPullRequests: pullRequests(states: [CLOSED, MERGED])"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// CountIssuesAndPullRequests fetches open/closed issue and pull request totals.
// Closed pull requests include merged ones, matching the search qualifier state:closed.
func (g *GitHubGateway) CountIssuesAndPullRequests(ctx context.Context, owner, repo string) (IssueCounts, error) {
	g.logger.Printf("Counting issues and pull requests for %s/%s using GraphQL API...", owner, repo)
	var q issueCountsQuery
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return IssueCounts{}, fmt.Errorf("failed to execute GraphQL query for issue counts: %w", err)
	}
	return IssueCounts{
		IssuesOpen:   q.Repository.OpenIssues.TotalCount,
		IssuesClosed: q.Repository.ClosedIssues.TotalCount,
		PRsOpen:      q.Repository.OpenPullRequests.TotalCount,
		PRsClosed:    q.Repository.ClosedPullRequests.TotalCount,
	}, nil
}
