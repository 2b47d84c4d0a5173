// Package navigation implements the Go navigation providers offered to the host.
package navigation

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/uber/xref-lsp/src/xref/controller/xrefs"
	"github.com/uber/xref-lsp/src/xref/entity"
	hostclient "github.com/uber/xref-lsp/src/xref/gateway/host-client"
	"github.com/uber/xref-lsp/src/xref/gateway/router"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"github.com/uber/xref-lsp/src/xref/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _serverName = "xref-lsp"

// Module provides the navigation Controller.
var Module = fx.Provide(New)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// LSP Methods defined per protocol.
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context, params *protocol.InitializedParams) error
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error

	// Navigation providers.
	Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error)
	Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error)
	References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error)
	Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.Location, error)

	// Custom methods for use within this service.
	InitSession(ctx context.Context, conn jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Settings entity.Settings
	Router   router.Router
	Xrefs    xrefs.Controller
	Host     hostclient.Gateway
	Logger   *zap.SugaredLogger
}

type controller struct {
	settings entity.Settings
	router   router.Router
	xrefs    xrefs.Controller
	host     hostclient.Gateway
	logger   *zap.SugaredLogger
}

// New constructs a new navigation controller.
func New(p Params) Controller {
	return &controller{
		settings: p.Settings,
		router:   p.Router,
		xrefs:    p.Xrefs,
		host:     p.Host,
		logger:   p.Logger,
	}
}

// Initialize advertises the navigation providers.
func (c *controller) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name: _serverName,
		},
		Capabilities: protocol.ServerCapabilities{
			HoverProvider:          true,
			DefinitionProvider:     true,
			ReferencesProvider:     true,
			ImplementationProvider: true,
		},
	}, nil
}

// Initialized warns the host when navigation cannot work with the current settings.
func (c *controller) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	if c.settings.ServerURL != "" {
		return nil
	}

	c.warn(ctx, fmt.Sprintf("Go navigation is disabled until %s.serverUrl is set.", entity.SettingsConfigKey))
	return nil
}

func (c *controller) warn(ctx context.Context, message string) {
	if err := c.host.ShowMessage(ctx, &protocol.ShowMessageParams{
		Type:    protocol.MessageTypeWarning,
		Message: message,
	}); err != nil {
		c.logger.Warnf("showing configuration warning: %s", err)
	}
}

// Shutdown is sent just before Exit to indicate that the connection will close.
func (c *controller) Shutdown(ctx context.Context) error {
	return nil
}

// Exit ends the session of the connection the request arrived on.
func (c *controller) Exit(ctx context.Context) error {
	id, err := mapper.ContextToConnectionUUID(ctx)
	if err != nil {
		return fmt.Errorf("error during session exit: %w", err)
	}
	return c.EndSession(ctx, id)
}

// Hover returns the hover contents at the requested position.
func (c *controller) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	root, remote, err := mapper.PositionToRemote(params.TextDocumentPositionParams)
	if err != nil {
		return nil, err
	}

	return c.router.Hover(ctx, root, entity.CachePolicyReuse, &protocol.HoverParams{
		TextDocumentPositionParams: remote,
		WorkDoneProgressParams:     params.WorkDoneProgressParams,
	})
}

// Definition returns the definitions of the symbol at the requested position.
func (c *controller) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	root, remote, err := mapper.PositionToRemote(params.TextDocumentPositionParams)
	if err != nil {
		return nil, err
	}

	results, err := c.router.XDefinition(ctx, root, entity.CachePolicyReuse, &remote)
	if err != nil {
		return nil, err
	}

	locations := make([]protocol.Location, 0, len(results))
	for _, r := range results {
		locations = append(locations, mapper.LocationFromRemote(root, r.Location))
	}
	return locations, nil
}

// References returns the references in the document's tree, followed by those found in importing repositories
// when external references are enabled.
func (c *controller) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	root, remote, err := mapper.PositionToRemote(params.TextDocumentPositionParams)
	if err != nil {
		return nil, err
	}

	local, err := c.router.References(ctx, root, entity.CachePolicyReuse, &protocol.ReferenceParams{
		TextDocumentPositionParams: remote,
		WorkDoneProgressParams:     params.WorkDoneProgressParams,
		PartialResultParams:        params.PartialResultParams,
		Context:                    params.Context,
	})
	if err != nil {
		return nil, err
	}

	locations := mapper.LocationsFromRemote(root, local)
	if !c.settings.ExternalReferences {
		return locations, nil
	}
	return append(locations, c.externalReferences(ctx, params.TextDocumentPositionParams)...), nil
}

// Implementation returns the implementations of the interface or method at the requested position.
func (c *controller) Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.Location, error) {
	root, remote, err := mapper.PositionToRemote(params.TextDocumentPositionParams)
	if err != nil {
		return nil, err
	}

	results, err := c.router.Implementation(ctx, root, entity.CachePolicyReuse, &protocol.ImplementationParams{
		TextDocumentPositionParams: remote,
		WorkDoneProgressParams:     params.WorkDoneProgressParams,
		PartialResultParams:        params.PartialResultParams,
	})
	if err != nil {
		return nil, err
	}
	return mapper.LocationsFromRemote(root, results), nil
}

// InitSession registers the host on conn and returns the UUID identifying the connection.
func (c *controller) InitSession(ctx context.Context, conn jsonrpc2.Conn) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	if err := c.host.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// EndSession includes any cleanup at the end of the session, during or after the last JSON-RPC request.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	return c.host.DeregisterClient(ctx, id)
}

// externalReferences collects the references found outside the document's tree.
// Failures only drop the external part.
func (c *controller) externalReferences(ctx context.Context, params protocol.TextDocumentPositionParams) []protocol.Location {
	stream, err := c.xrefs.References(ctx, params.TextDocument.URI, params.Position)
	if err != nil {
		c.logger.Warnf("finding external references for %s: %s", params.TextDocument.URI, err)
		if errors.IsConfiguration(err) {
			c.warn(ctx, fmt.Sprintf("External references are unavailable: %s.", err))
		}
		return nil
	}

	var locations []protocol.Location
	for record := range stream.All() {
		locations = append(locations, record.Location())
	}
	if failures := stream.Failures(); len(failures) > 0 {
		c.logger.Infow("external references incomplete",
			"symbol", stream.Symbol().Name,
			"candidates", stream.Candidates().Len(),
			"failed", len(failures),
		)
	}
	return locations
}
