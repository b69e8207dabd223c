package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}

	return gateway, server
}

func TestGitHubGateway_GetRepository(t *testing.T) {
	testCases := []struct {
		name            string
		handlerFunc     func(w http.ResponseWriter, r *http.Request)
		expectError     bool
		expectNotFound  bool
		expectRateLimit bool
	}{
		{
			name: "happy path - maps repository metadata",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/octo/hello", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{
					"name": "hello", "full_name": "octo/hello", "owner": {"login": "octo"},
					"description": "demo", "stargazers_count": 12, "forks_count": 3, "watchers_count": 12,
					"open_issues_count": 2, "size": 2048, "topics": ["cli", "go"], "language": "Go",
					"license": {"key": "mit", "name": "MIT License"},
					"has_issues": true, "has_wiki": false, "has_pages": true, "has_projects": true,
					"created_at": "2024-01-02T03:04:05Z", "updated_at": "2024-06-01T00:00:00Z"
				}`)
			},
		},
		{
			name: "error case - repository does not exist",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectNotFound: true,
		},
		{
			name: "error case - forbidden",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"message": "Forbidden"}`)
			},
			expectError:     true,
			expectRateLimit: true,
		},
		{
			name: "error case - server error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			repo, err := gateway.GetRepository(context.Background(), "octo", "hello")
			if tc.expectError {
				require.Error(t, err)
				assert.Nil(t, repo)
				assert.Equal(t, tc.expectNotFound, IsNotFound(err))
				assert.Equal(t, tc.expectRateLimit, IsRateLimited(err))
				assert.Contains(t, err.Error(), "failed to get repository")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hello", repo.Name)
			assert.Equal(t, "octo", repo.Owner)
			assert.Equal(t, 12, repo.Stars)
			assert.Equal(t, 2048, repo.SizeKB)
			assert.Equal(t, []string{"cli", "go"}, repo.Topics)
			assert.True(t, repo.HasLicense)
			assert.Equal(t, "MIT License", repo.LicenseName)
			assert.True(t, repo.HasPages)
			assert.False(t, repo.HasWiki)
			assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), repo.CreatedAt.UTC())
		})
	}
}

func TestGitHubGateway_ListContributorsPagination(t *testing.T) {
	testCases := []struct {
		name         string
		linkHeader   string
		expectedLast int
	}{
		{
			name:         "last page link present",
			linkHeader:   `<https://api.github.com/repositories/1/contributors?per_page=1&page=2>; rel="next", <https://api.github.com/repositories/1/contributors?per_page=1&page=42>; rel="last"`,
			expectedLast: 42,
		},
		{
			name:         "no link header",
			expectedLast: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/octo/hello/contributors", r.URL.Path)
				assert.Equal(t, "1", r.URL.Query().Get("per_page"))
				assert.Equal(t, "true", r.URL.Query().Get("anon"))
				if tc.linkHeader != "" {
					w.Header().Set("Link", tc.linkHeader)
				}
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"login": "alice", "contributions": 40}]`)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			contributors, page, err := gateway.ListContributors(context.Background(), "octo", "hello", ContributorListOptions{
				Anon:        true,
				ListOptions: ListOptions{PerPage: 1},
			})
			require.NoError(t, err)
			assert.Len(t, contributors, 1)
			assert.Equal(t, 40, contributors[0].Contributions)
			assert.Equal(t, tc.expectedLast, page.LastPage)
		})
	}
}

func TestGitHubGateway_ListIssuesMarksPullRequests(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `[
			{"number": 1, "title": "bug", "state": "open", "created_at": "2024-05-01T00:00:00Z"},
			{"number": 2, "title": "feature", "state": "closed", "created_at": "2024-05-02T00:00:00Z",
			 "pull_request": {"url": "https://api.github.com/repos/octo/hello/pulls/2"}}
		]`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	issues, _, err := gateway.ListIssues(context.Background(), "octo", "hello", IssueListOptions{State: "all"})
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.False(t, issues[0].IsPullRequest)
	assert.True(t, issues[1].IsPullRequest)
}

func TestGitHubGateway_SearchIssuesCount(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		assert.Equal(t, "repo:octo/hello type:issue state:open", r.URL.Query().Get("q"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"total_count": 57, "items": []}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	count, err := gateway.SearchIssuesCount(context.Background(), "repo:octo/hello type:issue state:open")
	require.NoError(t, err)
	assert.Equal(t, 57, count)
}

func TestGitHubGateway_CountIssuesAndPullRequests(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       IssueCounts
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path",
			responseBody: `{"data":{"repository":{"openIssues":{"totalCount":5},"closedIssues":{"totalCount":3},"openPullRequests":{"totalCount":2},"closedPullRequests":{"totalCount":9}}}}`,
			expected:     IssueCounts{IssuesOpen: 5, IssuesClosed: 3, PRsOpen: 2, PRsClosed: 9},
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "openIssues: issues(states: OPEN)")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			counts, err := gateway.CountIssuesAndPullRequests(context.Background(), "octo", "hello")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, counts)
			}
		})
	}
}

func TestNewGitHubGateway(t *testing.T) {
	t.Run("attaches bearer token and honours base URL", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"resources":{"core":{"limit":5000,"remaining":4999,"reset":1700000000}}}`)
		}))
		defer server.Close()

		gateway, err := NewGitHubGateway(Config{BaseURL: server.URL, Token: "secret", Timeout: 5 * time.Second}, log.New(io.Discard, "", 0))
		require.NoError(t, err)

		limit, err := gateway.GetRateLimit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, 5000, limit.Limit)
		assert.Equal(t, 4999, limit.Remaining)
	})

	t.Run("anonymous when token is empty", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"login": "octo", "followers": 3}`)
		}))
		defer server.Close()

		gateway, err := NewGitHubGateway(Config{BaseURL: server.URL}, log.New(io.Discard, "", 0))
		require.NoError(t, err)

		user, err := gateway.GetUser(context.Background(), "octo")
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
		assert.Equal(t, 3, user.Followers)
	})

	t.Run("secondary rate limit sleep is not cut by the request timeout", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"message": "You have exceeded a secondary rate limit", "documentation_url": "https://docs.github.com/rest/overview/secondary-rate-limits"}`)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"login": "octo", "followers": 3}`)
		}))
		defer server.Close()

		gateway, err := NewGitHubGateway(Config{BaseURL: server.URL, Timeout: 300 * time.Millisecond}, log.New(io.Discard, "", 0))
		require.NoError(t, err)

		user, err := gateway.GetUser(context.Background(), "octo")
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, 3, user.Followers)
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		_, err := NewGitHubGateway(Config{BaseURL: "not-a-url"}, log.New(io.Discard, "", 0))
		assert.Error(t, err)
	})
}
