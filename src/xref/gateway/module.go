package gateway

import (
	hostclient "github.com/uber/xref-lsp/src/xref/gateway/host-client"
	"github.com/uber/xref-lsp/src/xref/gateway/importgraph"
	"github.com/uber/xref-lsp/src/xref/gateway/langserver"
	"github.com/uber/xref-lsp/src/xref/gateway/router"
	"github.com/uber/xref-lsp/src/xref/gateway/sourcegraph"
	"go.uber.org/fx"
)

// Module provides the outbound clients: the language server, Sourcegraph, the import graph and connected hosts.
var Module = fx.Options(
	langserver.Module,
	sourcegraph.Module,
	importgraph.Module,
	router.Module,
	hostclient.Module,
)
