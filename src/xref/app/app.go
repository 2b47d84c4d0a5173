package app

import (
	"context"
	"time"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/xref-lsp/src/xref/controller"
	"github.com/uber/xref-lsp/src/xref/gateway"
	"github.com/uber/xref-lsp/src/xref/handler"
	"github.com/uber/xref-lsp/src/xref/internal/core"
	"github.com/uber/xref-lsp/src/xref/internal/jsonrpcfx"
	"github.com/uber/xref-lsp/src/xref/repository/session"
	"go.uber.org/fx"
)

// Module defines the xref-lsp application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	controller.Module,
	session.Module,
	jsonrpcfx.Module,
	core.ConfigModule,
	core.LoggerModule,
	core.SettingsModule,
	fx.Provide(newRootScope),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)

func newRootScope(lc fx.Lifecycle, env Context) tally.Scope {
	rs, closer := tally.NewRootScope(tally.ScopeOptions{
		Tags: map[string]string{
			"service": "xref-lsp",
			"env":     env.Environment,
		},
	}, 1*time.Second)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close()
		},
	})

	return rs
}
