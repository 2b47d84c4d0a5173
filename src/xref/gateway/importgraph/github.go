package importgraph

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	_githubConfigKey = "github"
	_githubHost      = "github.com/"
	_githubPerPage   = 100
	// Code search never returns more than 1000 results.
	_githubMaxPages = 10

	_defaultRequestsPerMinute = 10
	_githubTimeout            = 30 * time.Second
)

// GitHubConfig configures GitHub code search.
type GitHubConfig struct {
	Token             string `yaml:"token"`
	RequestsPerMinute int    `yaml:"requestsPerMinute"`
}

type githubSearcher struct {
	client  *gh.Client
	limiter *rate.Limiter
}

// NewGitHubSearcher returns a CodeSearcher backed by GitHub code search.
// Requests are throttled to the configured rate since code search has its own secondary limit.
func NewGitHubSearcher(cfg GitHubConfig) CodeSearcher {
	var client *gh.Client
	if cfg.Token != "" {
		tc := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
		tc.Timeout = _githubTimeout
		client = gh.NewClient(tc)
	} else {
		client = gh.NewClient(nil)
	}
	return newGitHubSearcher(client, cfg.RequestsPerMinute)
}

func newGitHubSearcher(client *gh.Client, requestsPerMinute int) *githubSearcher {
	if requestsPerMinute <= 0 {
		requestsPerMinute = _defaultRequestsPerMinute
	}
	return &githubSearcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

// RepositoriesContaining implements CodeSearcher.
func (s *githubSearcher) RepositoriesContaining(ctx context.Context, literal string) ([]string, error) {
	query := strconv.Quote(literal) + " language:go"
	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: _githubPerPage}}

	var repos []string
	for page := 0; page < _githubMaxPages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		result, resp, err := s.client.Search.Code(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("github code search: %w", err)
		}
		for i, r := range result.CodeResults {
			name := r.GetRepository().GetFullName()
			if name == "" {
				return nil, fmt.Errorf("malformed search response: result %d has no repository name", i)
			}
			repos = append(repos, _githubHost+name)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}
