package navigation

import (
	"context"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/xref-lsp/src/xref/controller/navigation"
	"github.com/uber/xref-lsp/src/xref/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

type jsonRPCRouter struct {
	navigation controller.Controller
	uuid       uuid.UUID
	logger     *zap.SugaredLogger
	stats      tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.ConnectionContextKey, r.uuid)

	switch req.Method() {
	// Lifecycle related methods.
	case protocol.MethodInitialize:
		return r.Initialize(ctx, reply, req)

	case protocol.MethodInitialized:
		return r.Initialized(ctx, reply, req)

	case protocol.MethodShutdown:
		return r.Shutdown(ctx, reply, req)

	case protocol.MethodExit:
		return r.Exit(ctx, reply, req)

	// Navigation providers.
	case protocol.MethodTextDocumentHover:
		return r.Hover(ctx, reply, req)

	case protocol.MethodTextDocumentDefinition:
		return r.Definition(ctx, reply, req)

	case protocol.MethodTextDocumentReferences:
		return r.References(ctx, reply, req)

	case protocol.MethodTextDocumentImplementation:
		return r.Implementation(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// UUID returns the identity of the connection served by this router.
func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}

// count records a handled request and its outcome.
func (r *jsonRPCRouter) count(method string, err error) {
	scope := r.stats.Tagged(map[string]string{"method": method})
	scope.Counter("requests").Inc(1)
	if err != nil {
		scope.Counter("errors").Inc(1)
		r.logger.Debugf("%s failed: %s", method, err)
	}
}
