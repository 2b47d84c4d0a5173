package xrefs

import (
	"context"

	"github.com/uber/xref-lsp/src/xref/entity"
)

// BranchResolver returns the revision to query in a candidate repository.
type BranchResolver interface {
	DefaultBranch(ctx context.Context, repository string) (string, error)
}

type configuredBranch string

// NewBranchResolver returns a BranchResolver that answers the configured default branch for every repository.
func NewBranchResolver(settings entity.Settings) BranchResolver {
	return configuredBranch(settings.DefaultBranch)
}

// DefaultBranch implements BranchResolver.
func (b configuredBranch) DefaultBranch(context.Context, string) (string, error) {
	return string(b), nil
}
