package entity

import (
	"strings"

	"go.lsp.dev/protocol"
)

// SymbolDescriptor is the canonical identity of a Go code entity as reported by the language server.
type SymbolDescriptor struct {
	Package     string `json:"package"`
	PackageName string `json:"packageName,omitempty"`
	Name        string `json:"name"`
	Recv        string `json:"recv,omitempty"`
	ID          string `json:"id,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Vendor      bool   `json:"vendor,omitempty"`
}

// SymbolLocationInformation is a single textDocument/xdefinition result.
type SymbolLocationInformation struct {
	Location protocol.Location `json:"location"`
	Symbol   SymbolDescriptor  `json:"symbol"`
}

// WorkspaceReferencesParams are the parameters of a workspace/xreferences request.
type WorkspaceReferencesParams struct {
	Query SymbolDescriptor `json:"query"`
	Limit int              `json:"limit,omitempty"`
}

// ReferenceInformation is a single workspace/xreferences result.
type ReferenceInformation struct {
	Reference protocol.Location `json:"reference"`
	Symbol    SymbolDescriptor  `json:"symbol"`
}

// ReferenceRecord is a reference found in a source tree other than the one the query started from.
type ReferenceRecord struct {
	Root  RootIdentity   `json:"root"`
	File  string         `json:"file"`
	Range protocol.Range `json:"range"`
}

// Location converts the record into a location addressable by the navigation host.
func (r ReferenceRecord) Location() protocol.Location {
	return protocol.Location{
		URI:   r.Root.Document(r.File),
		Range: r.Range,
	}
}

// CandidateFailure records that a single candidate repository could not be queried.
type CandidateFailure struct {
	Root RootIdentity
	Err  error
}

// ModulePrefix normalizes a Go import path to its first three path segments, e.g.
// "github.com/gorilla/mux/middleware" becomes "github.com/gorilla/mux".
func ModulePrefix(importPath string) string {
	parts := strings.SplitN(strings.Trim(importPath, "/"), "/", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, "/")
}
