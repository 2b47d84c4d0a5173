package controller

import (
	"github.com/uber/xref-lsp/src/xref/controller/definition"
	"github.com/uber/xref-lsp/src/xref/controller/navigation"
	"github.com/uber/xref-lsp/src/xref/controller/xrefs"
	"go.uber.org/fx"
)

// Module provides the navigation controller and the cross repository reference pipeline behind it.
var Module = fx.Options(
	navigation.Module,
	definition.Module,
	xrefs.Module,
)
