// Package xrefs finds references to a symbol in repositories other than the one defining it.
package xrefs

import (
	"context"
	"fmt"
	"iter"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/xref-lsp/src/xref/controller/definition"
	"github.com/uber/xref-lsp/src/xref/entity"
	hostclient "github.com/uber/xref-lsp/src/xref/gateway/host-client"
	"github.com/uber/xref-lsp/src/xref/gateway/importgraph"
	"github.com/uber/xref-lsp/src/xref/gateway/router"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the fan-out Controller and the default branch lookup.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(NewBranchResolver),
)

// Controller starts cross repository reference queries.
type Controller interface {
	// References resolves the symbol at position and finds the repositories importing its package.
	// Failing either step fails the call. The returned Stream queries the candidates once it is iterated.
	References(ctx context.Context, document protocol.DocumentURI, position protocol.Position) (Stream, error)
}

// Stream yields the references found in the candidate repositories.
// Records arrive in no particular order, each carrying the root it was found under.
type Stream interface {
	// Symbol returns the symbol the references point to.
	Symbol() entity.SymbolDescriptor
	// Candidates returns the repositories queried.
	Candidates() entity.CandidateSet
	// All queries every candidate and yields records as they arrive.
	// The sequence can be iterated only once; later iterations yield nothing.
	// Stopping early cancels the queries still in flight.
	All() iter.Seq[entity.ReferenceRecord]
	// Failures returns the candidates that could not be queried.
	// It is complete once All has been fully iterated.
	Failures() []entity.CandidateFailure
}

// Params are inbound parameters to initialize a new Controller.
type Params struct {
	fx.In

	Settings entity.Settings
	Resolver definition.Resolver
	Locator  importgraph.Locator
	Router   router.Router
	Branches BranchResolver
	Host     hostclient.Gateway
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
}

type controller struct {
	resolver    definition.Resolver
	locator     importgraph.Locator
	router      router.Router
	branches    BranchResolver
	host        hostclient.Gateway
	maxRepos    int
	limit       int
	concurrency int
	logger      *zap.SugaredLogger
	stats       tally.Scope
}

// New returns a Controller.
func New(p Params) Controller {
	return &controller{
		resolver:    p.Resolver,
		locator:     p.Locator,
		router:      p.Router,
		branches:    p.Branches,
		host:        p.Host,
		maxRepos:    p.Settings.MaxExternalReferenceRepos,
		limit:       p.Settings.ReferencesLimit,
		concurrency: max(p.Settings.FanOutConcurrency, 1),
		logger:      p.Logger,
		stats:       p.Stats.SubScope("xrefs"),
	}
}

// References implements Controller.
func (c *controller) References(ctx context.Context, document protocol.DocumentURI, position protocol.Position) (Stream, error) {
	origin, err := entity.RootIdentityFromDocument(document)
	if err != nil {
		return nil, err
	}

	def, err := c.resolver.Resolve(ctx, document, position)
	if err != nil {
		return nil, err
	}

	importers, err := c.locator.Importers(ctx, def.Symbol.Package)
	if err != nil {
		return nil, err
	}

	candidates := entity.NewCandidateSet(importers, origin.Repository(), c.maxRepos)
	c.stats.Counter("candidates").Inc(int64(candidates.Len()))
	c.logger.Debugf("querying %d of %d importers of %s for references to %s", candidates.Len(), len(importers), def.Symbol.Package, def.Symbol.Name)

	s := &stream{
		ctx:        ctx,
		controller: c,
		symbol:     def.Symbol,
		candidates: candidates,
	}
	s.produce = s.fanOut
	return s, nil
}

// query asks one candidate repository for references at its default branch.
func (c *controller) query(ctx context.Context, repository string, symbol entity.SymbolDescriptor) (entity.RootIdentity, []entity.ReferenceInformation, error) {
	branch, err := c.branches.DefaultBranch(ctx, repository)
	if err != nil {
		return entity.NewRootIdentity(repository, ""), nil, fmt.Errorf("looking up default branch: %w", err)
	}

	root := entity.NewRootIdentity(repository, branch)
	refs, err := c.router.XReferences(ctx, root, entity.CachePolicyEphemeral, &entity.WorkspaceReferencesParams{
		Query: symbol,
		Limit: c.limit,
	})
	return root, refs, err
}
