// Package navigation routes the JSON-RPC requests of connected hosts to the navigation controller.
package navigation

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/xref-lsp/src/xref/controller/navigation"
	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/internal/jsonrpcfx"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the navigation Handler and registers it with the JSON-RPC server.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(h Handler) {}),
)

// Handler accepts inbound host connections.
type Handler = jsonrpcfx.ConnectionManager

type jsonRPCConnectionManager struct {
	ctrl   controller.Controller
	logger *zap.SugaredLogger
	stats  tally.Scope
}

// New constructs a new navigation Handler and registers it as the connection manager of jsonrpcmod.
func New(ctrl controller.Controller, jsonrpcmod jsonrpcfx.JSONRPCModule, logger *zap.SugaredLogger, stats tally.Scope) (Handler, error) {
	c := &jsonRPCConnectionManager{
		ctrl:   ctrl,
		logger: logger,
		stats:  stats.SubScope("json_rpc"),
	}
	if err := jsonrpcmod.RegisterConnectionManager(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConnection will register a new connection and return a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn jsonrpc2.Conn) (jsonrpcfx.Router, error) {
	id, err := c.ctrl.InitSession(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}
	c.stats.Counter("connections").Inc(1)

	return &jsonRPCRouter{
		navigation: c.ctrl,
		uuid:       id,
		logger:     c.logger,
		stats:      c.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	// Ensure the host is deregistered even if no Exit call has been received.
	ctx = context.WithValue(ctx, entity.ConnectionContextKey, id)
	if err := c.ctrl.EndSession(ctx, id); err != nil {
		c.logger.Warnf("ending session %s: %s", id, err)
	}
}
