package navigation

import (
	"context"

	"github.com/uber/xref-lsp/src/xref/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) Hover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToHoverParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.navigation.Hover(ctx, params)
	r.count(req.Method(), err)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Definition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDefinitionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.navigation.Definition(ctx, params)
	r.count(req.Method(), err)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) References(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToReferencesParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.navigation.References(ctx, params)
	r.count(req.Method(), err)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Implementation(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToImplementationParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.navigation.Implementation(ctx, params)
	r.count(req.Method(), err)
	return reply(ctx, result, err)
}
