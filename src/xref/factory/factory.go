package factory

import (
	"github.com/gofrs/uuid"
	"github.com/uber/xref-lsp/src/xref/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// Root is a factory for a root identity of the named repository at master.
func Root(repo string) entity.RootIdentity {
	return entity.NewRootIdentity(repo, "master")
}

// PositionParams is a factory for position parameters pointing into file of repo.
func PositionParams(repo string, file string, line uint32, character uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: Root(repo).Document(file)},
		Position:     protocol.Position{Line: line, Character: character},
	}
}

// Range is a factory for a single line range.
func Range(line uint32, start uint32, end uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}

// Symbol is a factory for a symbol descriptor of a function in pkg.
func Symbol(pkg string, name string) entity.SymbolDescriptor {
	return entity.SymbolDescriptor{
		Package: pkg,
		Name:    name,
		Kind:    "func",
		ID:      pkg + "/-/" + name,
	}
}
