package handler

import (
	"github.com/uber/xref-lsp/src/xref/handler/navigation"
	"go.uber.org/fx"
)

// Module provides the JSON-RPC inbound handlers.
var Module = fx.Options(
	navigation.Module,
)
