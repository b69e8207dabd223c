package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityFetcher_Fetch(t *testing.T) {
	fetcher := new(mockFetcher)
	tracker := gateway.IssueListOptions{State: "all", Sort: "created", Direction: "desc", ListOptions: sampleOpts}
	fetcher.On("ListIssues", mock.Anything, "octo", "hello", tracker).Return([]domain.Issue{
		{Number: 1, CreatedAt: daysAgo(1)},
		{Number: 2, CreatedAt: daysAgo(1), IsPullRequest: true},
		{Number: 3, CreatedAt: refNow.AddDate(0, -2, 0)},
	}, gateway.PageInfo{}, nil)
	fetcher.On("ListPullRequests", mock.Anything, "octo", "hello", tracker).Return([]domain.PullRequest{
		{Number: 2, CreatedAt: daysAgo(1)},
	}, gateway.PageInfo{}, nil)
	fetcher.On("ListForks", mock.Anything, "octo", "hello", gateway.ListOptions{PerPage: 50}).Return(nil, gateway.PageInfo{}, errUpstream)
	fetcher.On("ListEvents", mock.Anything, "octo", "hello", sampleOpts).Return([]domain.Event{
		{Actor: "bob"}, {Actor: "alice"}, {Actor: "bob"},
	}, gateway.PageInfo{}, nil)

	window := NewActivityFetcher(fetcher, discardLogger(), fixedClock).Fetch(context.Background(), "octo", "hello")

	require.NotNil(t, window)
	require.Len(t, window.Issues, 2)
	for _, issue := range window.Issues {
		assert.False(t, issue.IsPullRequest)
		for _, pr := range window.PullRequests {
			assert.NotEqual(t, pr.Number, issue.Number)
		}
	}
	assert.NotNil(t, window.Forks)
	assert.Empty(t, window.Forks)
	assert.Equal(t, []domain.ActorActivity{{Login: "bob", Activity: 2}, {Login: "alice", Activity: 1}}, window.TopContributors)
	assert.Equal(t, []domain.MonthCount{{Month: "2025-04", Count: 1}, {Month: "2025-06", Count: 1}}, window.IssuesTrend)
	assert.Equal(t, []domain.MonthCount{{Month: "2025-06", Count: 1}}, window.PRsTrend)

	require.Len(t, window.ActivityHeatmap, 12)
	last := window.ActivityHeatmap[11]
	assert.Equal(t, domain.MonthlyActivity{Month: "2025-06", IssueCount: 1, PRCount: 1, Total: 2}, last)
	fetcher.AssertExpectations(t)
}

func TestActivityFetcher_FetchNeverFails(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("ListIssues", mock.Anything, "octo", "hello", mock.Anything).Return(nil, gateway.PageInfo{}, errUpstream)
	fetcher.On("ListPullRequests", mock.Anything, "octo", "hello", mock.Anything).Return(nil, gateway.PageInfo{}, errUpstream)
	fetcher.On("ListForks", mock.Anything, "octo", "hello", mock.Anything).Return(nil, gateway.PageInfo{}, errUpstream)
	fetcher.On("ListEvents", mock.Anything, "octo", "hello", mock.Anything).Return(nil, gateway.PageInfo{}, errUpstream)

	window := NewActivityFetcher(fetcher, discardLogger(), fixedClock).Fetch(context.Background(), "octo", "hello")

	require.NotNil(t, window)
	assert.Empty(t, window.Issues)
	assert.Empty(t, window.PullRequests)
	assert.Empty(t, window.Events)
	assert.Empty(t, window.TopContributors)
	assert.Len(t, window.ActivityHeatmap, 12)
}

func TestSummarizeActivity_HeatmapWindow(t *testing.T) {
	testCases := []struct {
		name  string
		now   string
		first string
		last  string
	}{
		{name: "mid year", now: "2025-06-15", first: "2024-07", last: "2025-06"},
		{name: "january wraps the year", now: "2025-01-31", first: "2024-02", last: "2025-01"},
		{name: "end of month", now: "2024-03-31", first: "2023-04", last: "2024-03"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			now, err := time.Parse("2006-01-02", tc.now)
			require.NoError(t, err)

			heatmap := SummarizeActivity(nil, nil, nil, nil, now).ActivityHeatmap

			require.Len(t, heatmap, 12)
			assert.Equal(t, tc.first, heatmap[0].Month)
			assert.Equal(t, tc.last, heatmap[11].Month)
			for i := 1; i < len(heatmap); i++ {
				prev, _ := time.Parse("2006-01", heatmap[i-1].Month)
				cur, _ := time.Parse("2006-01", heatmap[i].Month)
				assert.Equal(t, prev.AddDate(0, 1, 0), cur)
				assert.Zero(t, heatmap[i].Total)
			}
		})
	}
}

func TestSummarizeActivity_TopContributorsLimit(t *testing.T) {
	var events []domain.Event
	for i := 0; i < 15; i++ {
		for j := 0; j <= i; j++ {
			events = append(events, domain.Event{Actor: string(rune('a' + i))})
		}
	}

	top := SummarizeActivity(nil, nil, nil, events, refNow).TopContributors

	require.Len(t, top, 10)
	assert.Equal(t, domain.ActorActivity{Login: "o", Activity: 15}, top[0])
	assert.Equal(t, domain.ActorActivity{Login: "f", Activity: 6}, top[9])
}
