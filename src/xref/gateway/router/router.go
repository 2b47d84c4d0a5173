// Package router sends language server requests over a cached or a single use session.
package router

import (
	"context"
	"fmt"
	"time"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/gateway/langserver"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"github.com/uber/xref-lsp/src/xref/repository/session"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _serverURLSetting = entity.SettingsConfigKey + ".serverUrl"

// Module provides the Router.
var Module = fx.Provide(New)

// Router is the single entry point for requests to the language server.
// With CachePolicyReuse the request goes over the cached session for root.
// With CachePolicyEphemeral a new session is created for the request and closed once it completes.
type Router interface {
	Hover(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.HoverParams) (*protocol.Hover, error)
	XDefinition(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.TextDocumentPositionParams) ([]entity.SymbolLocationInformation, error)
	References(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.ReferenceParams) ([]protocol.Location, error)
	Implementation(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.ImplementationParams) ([]protocol.Location, error)
	XReferences(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *entity.WorkspaceReferencesParams) ([]entity.ReferenceInformation, error)
}

// Params are inbound parameters to initialize a new Router.
type Params struct {
	fx.In

	Settings entity.Settings
	Sessions session.Manager
	Dialer   langserver.Dialer
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
}

type router struct {
	sessions       session.Manager
	dialer         langserver.Dialer
	requestTimeout time.Duration
	logger         *zap.SugaredLogger
	stats          tally.Scope
}

// New returns a Router. Without a configured server address every request fails with a MissingServerAddressError.
func New(p Params) Router {
	if p.Settings.ServerURL == "" {
		p.Logger.Warnf("%s is not set, Go navigation is disabled", _serverURLSetting)
		return unconfigured{}
	}

	timeout := time.Duration(p.Settings.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = entity.DefaultRequestTimeoutSeconds * time.Second
	}
	return &router{
		sessions:       p.Sessions,
		dialer:         p.Dialer,
		requestTimeout: timeout,
		logger:         p.Logger,
		stats:          p.Stats.SubScope("router"),
	}
}

// Hover implements Router.
func (r *router) Hover(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.HoverParams) (*protocol.Hover, error) {
	return send(ctx, r, root, policy, protocol.MethodTextDocumentHover, func(ctx context.Context, s langserver.Session) (*protocol.Hover, error) {
		return s.Hover(ctx, params)
	})
}

// XDefinition implements Router.
func (r *router) XDefinition(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.TextDocumentPositionParams) ([]entity.SymbolLocationInformation, error) {
	return send(ctx, r, root, policy, langserver.MethodXDefinition, func(ctx context.Context, s langserver.Session) ([]entity.SymbolLocationInformation, error) {
		return s.XDefinition(ctx, params)
	})
}

// References implements Router.
func (r *router) References(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	return send(ctx, r, root, policy, protocol.MethodTextDocumentReferences, func(ctx context.Context, s langserver.Session) ([]protocol.Location, error) {
		return s.References(ctx, params)
	})
}

// Implementation implements Router.
func (r *router) Implementation(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *protocol.ImplementationParams) ([]protocol.Location, error) {
	return send(ctx, r, root, policy, protocol.MethodTextDocumentImplementation, func(ctx context.Context, s langserver.Session) ([]protocol.Location, error) {
		return s.Implementation(ctx, params)
	})
}

// XReferences implements Router.
func (r *router) XReferences(ctx context.Context, root entity.RootIdentity, policy entity.CachePolicy, params *entity.WorkspaceReferencesParams) ([]entity.ReferenceInformation, error) {
	return send(ctx, r, root, policy, langserver.MethodXReferences, func(ctx context.Context, s langserver.Session) ([]entity.ReferenceInformation, error) {
		return s.XReferences(ctx, params)
	})
}

func send[T any](ctx context.Context, r *router, root entity.RootIdentity, policy entity.CachePolicy, method string, call func(context.Context, langserver.Session) (T, error)) (result T, err error) {
	scope := r.stats.Tagged(map[string]string{
		"method": method,
		"policy": policy.String(),
	})
	defer scope.Timer("latency").Start().Stop()
	defer func() {
		if err != nil {
			scope.Counter("errors").Inc(1)
		}
	}()
	scope.Counter("requests").Inc(1)

	ctx, cancel := context.WithTimeout(ctx, r.requestTimeout)
	defer cancel()

	var s langserver.Session
	switch policy {
	case entity.CachePolicyReuse:
		s, err = r.sessions.Acquire(ctx, root)
		if err != nil {
			return result, fmt.Errorf("acquiring session for %s: %w", root, err)
		}
	case entity.CachePolicyEphemeral:
		s, err = r.dialer.Dial(ctx, root)
		if err != nil {
			return result, fmt.Errorf("creating session for %s: %w", root, err)
		}
		defer func() {
			if closeErr := s.Close(); closeErr != nil {
				r.logger.Debugf("closing ephemeral session for %s: %v", root, closeErr)
			}
		}()
	default:
		return result, fmt.Errorf("unknown cache policy %d", policy)
	}

	return call(ctx, s)
}

type unconfigured struct{}

func (unconfigured) err() error {
	return &errors.MissingServerAddressError{Setting: _serverURLSetting}
}

// Hover implements Router.
func (u unconfigured) Hover(context.Context, entity.RootIdentity, entity.CachePolicy, *protocol.HoverParams) (*protocol.Hover, error) {
	return nil, u.err()
}

// XDefinition implements Router.
func (u unconfigured) XDefinition(context.Context, entity.RootIdentity, entity.CachePolicy, *protocol.TextDocumentPositionParams) ([]entity.SymbolLocationInformation, error) {
	return nil, u.err()
}

// References implements Router.
func (u unconfigured) References(context.Context, entity.RootIdentity, entity.CachePolicy, *protocol.ReferenceParams) ([]protocol.Location, error) {
	return nil, u.err()
}

// Implementation implements Router.
func (u unconfigured) Implementation(context.Context, entity.RootIdentity, entity.CachePolicy, *protocol.ImplementationParams) ([]protocol.Location, error) {
	return nil, u.err()
}

// XReferences implements Router.
func (u unconfigured) XReferences(context.Context, entity.RootIdentity, entity.CachePolicy, *entity.WorkspaceReferencesParams) ([]entity.ReferenceInformation, error) {
	return nil, u.err()
}
