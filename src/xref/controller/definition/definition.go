// Package definition resolves the symbol defined at a document position.
package definition

import (
	"context"
	"fmt"

	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/gateway/router"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"github.com/uber/xref-lsp/src/xref/mapper"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
)

// Module provides the definition Resolver.
var Module = fx.Provide(New)

// Resolver finds the canonical symbol at a position.
type Resolver interface {
	// Resolve returns the first textDocument/xdefinition result for position in document.
	// The location is returned as a document of the tree the query started from.
	Resolve(ctx context.Context, document protocol.DocumentURI, position protocol.Position) (entity.SymbolLocationInformation, error)
}

// Params are inbound parameters to initialize a new Resolver.
type Params struct {
	fx.In

	Router router.Router
}

type resolver struct {
	router router.Router
}

// New returns a Resolver sending its queries over the cached session of the document's root.
func New(p Params) Resolver {
	return &resolver{router: p.Router}
}

// Resolve implements Resolver.
func (r *resolver) Resolve(ctx context.Context, document protocol.DocumentURI, position protocol.Position) (entity.SymbolLocationInformation, error) {
	root, params, err := mapper.PositionToRemote(protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: document},
		Position:     position,
	})
	if err != nil {
		return entity.SymbolLocationInformation{}, err
	}

	results, err := r.router.XDefinition(ctx, root, entity.CachePolicyReuse, &params)
	if err != nil {
		return entity.SymbolLocationInformation{}, fmt.Errorf("resolving definition: %w", err)
	}
	if len(results) == 0 {
		return entity.SymbolLocationInformation{}, &errors.ResolutionError{Document: document, Position: position}
	}

	result := results[0]
	result.Location = mapper.LocationFromRemote(root, result.Location)
	return result, nil
}
