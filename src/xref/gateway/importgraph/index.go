package importgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"github.com/uber/xref-lsp/src/xref/internal/httpclient"
)

type indexLocator struct {
	base string
	http *httpclient.Client
}

type importersResponse struct {
	Results *[]struct {
		Path string `json:"path"`
	} `json:"results"`
}

// NewIndexLocator returns a Locator that asks a godoc.org compatible package index for importers.
func NewIndexLocator(base string, hc *httpclient.Client) Locator {
	return &indexLocator{
		base: strings.TrimSuffix(base, "/"),
		http: hc,
	}
}

// Importers implements Locator.
// Every importing package path is reduced to its module prefix.
func (l *indexLocator) Importers(ctx context.Context, pkg string) ([]string, error) {
	endpoint := l.base + "/importers/" + (&url.URL{Path: pkg}).EscapedPath()
	header := http.Header{"Accept": []string{"application/json"}}

	data, err := l.http.Do(ctx, http.MethodGet, endpoint, nil, header)
	if err != nil {
		return nil, &errors.LocatorError{Package: pkg, Err: err}
	}

	var resp importersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &errors.LocatorError{Package: pkg, Err: fmt.Errorf("decoding importers: %w", err)}
	}
	if resp.Results == nil {
		return nil, &errors.LocatorError{Package: pkg, Err: fmt.Errorf("malformed importers response: missing results")}
	}

	repos := make([]string, 0, len(*resp.Results))
	for i, r := range *resp.Results {
		if r.Path == "" {
			return nil, &errors.LocatorError{Package: pkg, Err: fmt.Errorf("malformed importers response: result %d has no path", i)}
		}
		repos = append(repos, entity.ModulePrefix(r.Path))
	}
	return distinct(repos), nil
}
