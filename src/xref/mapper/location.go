package mapper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/uber/xref-lsp/src/xref/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// DocumentToRemote rewrites a document identifier into the file URI understood by the language server
// serving the document's root, e.g. "git://github.com/a/b?master#c/d.go" becomes "file:///c/d.go".
func DocumentToRemote(doc protocol.DocumentURI) (entity.RootIdentity, protocol.DocumentURI, error) {
	root, err := entity.RootIdentityFromDocument(doc)
	if err != nil {
		return "", "", err
	}
	path, err := entity.DocumentPath(doc)
	if err != nil {
		return "", "", err
	}
	return root, protocol.DocumentURI(uri.File("/" + path)), nil
}

// PositionToRemote rewrites position parameters so they can be sent to the language server.
func PositionToRemote(params protocol.TextDocumentPositionParams) (entity.RootIdentity, protocol.TextDocumentPositionParams, error) {
	root, doc, err := DocumentToRemote(params.TextDocument.URI)
	if err != nil {
		return "", protocol.TextDocumentPositionParams{}, fmt.Errorf("%s: %w", params.TextDocument.URI, err)
	}
	return root, protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: doc},
		Position:     params.Position,
	}, nil
}

// RemotePath returns the path inside the source tree for a file URI returned by the language server.
func RemotePath(loc protocol.DocumentURI) (string, bool) {
	u, err := url.Parse(string(loc))
	if err != nil || u.Scheme != uri.FileScheme {
		return "", false
	}
	return strings.TrimPrefix(u.Path, "/"), true
}

// LocationFromRemote maps a location returned by the language server serving root back into a document
// identifier. Locations that are not files inside the root are returned unchanged.
func LocationFromRemote(root entity.RootIdentity, loc protocol.Location) protocol.Location {
	path, ok := RemotePath(loc.URI)
	if !ok {
		return loc
	}
	return protocol.Location{
		URI:   root.Document(path),
		Range: loc.Range,
	}
}

// LocationsFromRemote applies LocationFromRemote to every location.
func LocationsFromRemote(root entity.RootIdentity, locs []protocol.Location) []protocol.Location {
	result := make([]protocol.Location, 0, len(locs))
	for _, loc := range locs {
		result = append(result, LocationFromRemote(root, loc))
	}
	return result
}

// ReferenceToRecord attributes a workspace/xreferences result to the root it was discovered under.
func ReferenceToRecord(root entity.RootIdentity, ref entity.ReferenceInformation) entity.ReferenceRecord {
	path, ok := RemotePath(ref.Reference.URI)
	if !ok {
		path = string(ref.Reference.URI)
	}
	return entity.ReferenceRecord{
		Root:  root,
		File:  path,
		Range: ref.Reference.Range,
	}
}
