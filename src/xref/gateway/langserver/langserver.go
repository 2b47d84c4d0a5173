// Package langserver dials the remote Go language server and exposes the requests the navigation
// providers need as strongly typed methods.
package langserver

import (
	"context"
	"fmt"
	"net/url"

	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// MethodXDefinition returns the symbol descriptor together with the location of a definition.
	MethodXDefinition = "textDocument/xdefinition"
	// MethodXReferences finds references to a symbol descriptor across a workspace.
	MethodXReferences = "workspace/xreferences"

	_serverURLSetting = entity.SettingsConfigKey + ".serverUrl"
)

// Module provides the language server dialer.
var Module = fx.Provide(New)

// Session is a live, initialized connection to the language server bound to exactly one root.
type Session interface {
	// Root returns the identity the session was initialized for.
	Root() entity.RootIdentity
	Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error)
	XDefinition(ctx context.Context, params *protocol.TextDocumentPositionParams) ([]entity.SymbolLocationInformation, error)
	References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error)
	Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.Location, error)
	XReferences(ctx context.Context, params *entity.WorkspaceReferencesParams) ([]entity.ReferenceInformation, error)
	// Done is closed once the connection has terminated, whichever side closed it.
	Done() <-chan struct{}
	// Close disposes the session. It is safe to call more than once.
	Close() error
}

// Dialer creates new sessions.
type Dialer interface {
	// Dial connects to the language server and completes the initialize handshake for root.
	Dial(ctx context.Context, root entity.RootIdentity) (Session, error)
}

// ArtifactLocator builds the URL the language server downloads a source tree from.
type ArtifactLocator interface {
	ZipURL(ctx context.Context, root entity.RootIdentity) (string, error)
}

// Transport opens a message stream to the language server at address.
type Transport func(ctx context.Context, address *url.URL) (jsonrpc2.Stream, error)

// Params are inbound parameters to initialize a new Dialer.
type Params struct {
	fx.In

	Settings  entity.Settings
	Artifacts ArtifactLocator
	Logger    *zap.SugaredLogger
}

type dialer struct {
	address   *url.URL
	artifacts ArtifactLocator
	transport Transport
	logger    *zap.SugaredLogger
}

// New returns a Dialer for the configured server address.
// With no address configured every Dial fails with a MissingServerAddressError.
func New(p Params) (Dialer, error) {
	return newDialer(p.Settings.ServerURL, p.Artifacts, DialTransport, p.Logger)
}

func newDialer(address string, artifacts ArtifactLocator, transport Transport, logger *zap.SugaredLogger) (*dialer, error) {
	d := &dialer{
		artifacts: artifacts,
		transport: transport,
		logger:    logger,
	}
	if address == "" {
		return d, nil
	}

	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", _serverURLSetting, address, err)
	}
	if _, ok := _transportSchemes[u.Scheme]; !ok {
		return nil, fmt.Errorf("unsupported scheme %q in %s, expected one of ws, wss or tcp", u.Scheme, _serverURLSetting)
	}
	d.address = u
	return d, nil
}

// Dial implements Dialer.
func (d *dialer) Dial(ctx context.Context, root entity.RootIdentity) (Session, error) {
	if d.address == nil {
		return nil, &errors.MissingServerAddressError{Setting: _serverURLSetting}
	}

	zipURL, err := d.artifacts.ZipURL(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("building archive URL for %s: %w", root, err)
	}

	stream, err := d.transport(ctx, d.address)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", d.address.Redacted(), err)
	}

	s := newSession(root, jsonrpc2.NewConn(stream), d.logger)
	if err := s.initialize(ctx, zipURL); err != nil {
		s.Close()
		return nil, fmt.Errorf("initializing session for %s: %w", root, err)
	}

	d.logger.Debugw("language server session initialized", "root", root)
	return s, nil
}
