// Package importgraph finds the repositories that import a Go package.
package importgraph

import (
	"context"
	"fmt"

	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/gateway/sourcegraph"
	"github.com/uber/xref-lsp/src/xref/internal/httpclient"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _userAgent = "xref-lsp"

// Module provides the Locator selected by the settings.
var Module = fx.Provide(New)

// Locator returns the repositories believed to import a package.
type Locator interface {
	// Importers returns distinct repository names in order of first appearance.
	Importers(ctx context.Context, pkg string) ([]string, error)
}

// CodeSearcher finds the repositories of Go files containing a literal string.
type CodeSearcher interface {
	RepositoriesContaining(ctx context.Context, literal string) ([]string, error)
}

// Params are inbound parameters to initialize a new Locator.
type Params struct {
	fx.In

	Settings    entity.Settings
	Config      config.Provider
	Sourcegraph sourcegraph.Client
	Logger      *zap.SugaredLogger
}

// New returns the package index backend when an index URL is configured, and the search backend otherwise.
func New(p Params) (Locator, error) {
	if p.Settings.GoDocDotOrgURL != "" {
		p.Logger.Infow("finding importers with package index", "url", p.Settings.GoDocDotOrgURL)
		return NewIndexLocator(p.Settings.GoDocDotOrgURL, httpclient.New(_userAgent)), nil
	}

	var searcher CodeSearcher
	switch p.Settings.SearchBackend {
	case entity.SearchBackendGitHub:
		var cfg GitHubConfig
		if err := p.Config.Get(_githubConfigKey).Populate(&cfg); err != nil {
			return nil, fmt.Errorf("getting config field %q: %w", _githubConfigKey, err)
		}
		searcher = NewGitHubSearcher(cfg)
	case entity.SearchBackendSourcegraph:
		searcher = p.Sourcegraph
	default:
		return nil, fmt.Errorf("unknown search backend %q", p.Settings.SearchBackend)
	}

	p.Logger.Infow("finding importers with code search", "backend", p.Settings.SearchBackend)
	return NewSearchLocator(searcher), nil
}

func distinct(repos []string) []string {
	seen := make(map[string]struct{}, len(repos))
	result := make([]string, 0, len(repos))
	for _, r := range repos {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		result = append(result, r)
	}
	return result
}
