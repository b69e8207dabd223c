package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileFetcher_Fetch(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("GetUser", mock.Anything, "octo").Return(&domain.User{Login: "octo", Name: "Octo Cat", PublicRepos: 12, Followers: 300}, nil)
	fetcher.On("ListUserRepositories", mock.Anything, "octo", gateway.ListOptions{PerPage: 30}).Return([]domain.Repository{
		{Name: "small", Stars: 5, Forks: 1, Language: "Go"},
		{Name: "big", Stars: 90, Forks: 10, Language: "Rust"},
		{Name: "mid", Stars: 20, Language: "Go"},
	}, nil)

	profile, err := NewProfileFetcher(fetcher, discardLogger(), 30).Fetch(context.Background(), "octo")

	require.NoError(t, err)
	assert.Equal(t, "big", profile.Repositories[0].Name)
	assert.Equal(t, "small", profile.Repositories[2].Name)
	assert.Equal(t, 115, profile.TotalStars)
	assert.Equal(t, 11, profile.TotalForks)
	assert.Equal(t, []domain.LanguageUsage{{Language: "Go", Count: 2}, {Language: "Rust", Count: 1}}, profile.TopLanguages)
	assert.Equal(t, "Octo Cat is a developer primarily working with Go with 12 public repositories and 115 total stars across their projects. They have built a strong community with 300 followers.", profile.Summary)
}

func TestProfileFetcher_FetchErrors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unknown user",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var target *domain.UserNotFoundError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "ghost", target.Login)
			},
		},
		{
			name:   "rate limited",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var target *domain.RateLimitError
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:   "other failure",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to fetch profile of ghost")
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			fetcher.On("GetUser", mock.Anything, "ghost").Return(nil, apiError(tc.status))
			fetcher.On("ListUserRepositories", mock.Anything, "ghost", mock.Anything).Return(nil, apiError(tc.status))

			profile, err := NewProfileFetcher(fetcher, discardLogger(), 30).Fetch(context.Background(), "ghost")

			require.Error(t, err)
			assert.Nil(t, profile)
			tc.check(t, err)
		})
	}
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name     string
		user     domain.User
		repos    []domain.Repository
		expected string
	}{
		{
			name:     "bare account uses login",
			user:     domain.User{Login: "newbie"},
			expected: "newbie is a developer.",
		},
		{
			name: "versatile developer",
			user: domain.User{Login: "poly", Name: "Poly Glot"},
			repos: []domain.Repository{
				{Language: "Go"}, {Language: "Go"}, {Language: "Rust"}, {Language: "C"}, {Language: "Zig"},
			},
			expected: "Poly Glot is a developer primarily working with Go and demonstrate versatility across multiple programming languages.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Summarize(tc.user, tc.repos))
		})
	}
}

func TestTopLanguages_Limit(t *testing.T) {
	var repos []domain.Repository
	for _, lang := range []string{"A", "B", "C", "D", "E", "F", "G", "A", ""} {
		repos = append(repos, domain.Repository{Language: lang})
	}

	top := TopLanguages(repos)

	require.Len(t, top, 6)
	assert.Equal(t, domain.LanguageUsage{Language: "A", Count: 2}, top[0])
	assert.Equal(t, "F", top[5].Language)
}
