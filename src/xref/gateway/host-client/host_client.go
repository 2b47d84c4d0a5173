// Package hostclient sends notifications to the navigation hosts connected to the daemon.
package hostclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"github.com/uber/xref-lsp/src/xref/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _errSendToClient = "sending notification to host: %w"

// Module provides the host client Gateway.
var Module = fx.Provide(New)

// Gateway reaches the host that sent the request in progress.
// The inbound connection is identified by the UUID stored in the request context.
type Gateway interface {
	RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
	ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error
}

type gateway struct {
	clientsMu sync.Mutex
	clients   map[uuid.UUID]protocol.Client
	logger    *zap.Logger
}

// New creates a new Gateway with no registered hosts.
func New(logger *zap.SugaredLogger) Gateway {
	return &gateway{
		clients: make(map[uuid.UUID]protocol.Client),
		logger:  logger.Desugar(),
	}
}

// RegisterClient makes the host on conn reachable under id.
func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.clients[id] = protocol.ClientDispatcher(conn, g.logger)
	return nil
}

// DeregisterClient forgets the host registered under id.
func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.clients, id)
	return nil
}

// LogMessage sends a window/logMessage notification.
func (g *gateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.LogMessage(ctx, params)
}

// ShowMessage sends a window/showMessage notification.
func (g *gateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.ShowMessage(ctx, params)
}

func (g *gateway) getClient(ctx context.Context) (protocol.Client, error) {
	id, err := mapper.ContextToConnectionUUID(ctx)
	if err != nil {
		return nil, err
	}

	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	c, ok := g.clients[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return c, nil
}
