package importgraph

import (
	"context"

	"github.com/uber/xref-lsp/src/xref/internal/errors"
)

type searchLocator struct {
	searcher CodeSearcher
}

// NewSearchLocator returns a Locator that searches for files containing the quoted import path.
func NewSearchLocator(searcher CodeSearcher) Locator {
	return &searchLocator{searcher: searcher}
}

// Importers implements Locator.
func (l *searchLocator) Importers(ctx context.Context, pkg string) ([]string, error) {
	repos, err := l.searcher.RepositoriesContaining(ctx, pkg)
	if err != nil {
		return nil, &errors.LocatorError{Package: pkg, Err: err}
	}
	return distinct(repos), nil
}
