package sourcegraph

import (
	"context"
	"fmt"
	"strconv"
)

const (
	_searchQuery = `query Search($query: String!) {
	search(query: $query) {
		results {
			results {
				__typename
				... on FileMatch {
					repository {
						name
					}
				}
			}
		}
	}
}`

	_searchResultCount = 5000
)

type searchResponse struct {
	Search *struct {
		Results *struct {
			Results []struct {
				Typename   string `json:"__typename"`
				Repository *struct {
					Name string `json:"name"`
				} `json:"repository"`
			} `json:"results"`
		} `json:"results"`
	} `json:"search"`
}

// RepositoriesContaining implements Client.
func (c *client) RepositoriesContaining(ctx context.Context, literal string) ([]string, error) {
	query := fmt.Sprintf("type:file lang:go patternType:literal count:%d %s", _searchResultCount, strconv.Quote(literal))

	var resp searchResponse
	if err := c.Query(ctx, _searchQuery, map[string]interface{}{"query": query}, &resp); err != nil {
		return nil, err
	}
	if resp.Search == nil || resp.Search.Results == nil {
		return nil, fmt.Errorf("malformed search response: missing results")
	}

	repos := make([]string, 0, len(resp.Search.Results.Results))
	for i, r := range resp.Search.Results.Results {
		if r.Typename != "FileMatch" {
			continue
		}
		if r.Repository == nil || r.Repository.Name == "" {
			return nil, fmt.Errorf("malformed search response: result %d has no repository name", i)
		}
		repos = append(repos, r.Repository.Name)
	}

	c.logger.Debugw("search complete", "query", query, "files", len(repos))
	return repos, nil
}
