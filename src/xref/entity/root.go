// Package entity contains the domain types for the xref-lsp service.
package entity

import (
	"fmt"
	"net/url"
	"strings"

	"go.lsp.dev/protocol"
)

const _rootScheme = "git"

// RootIdentity identifies a single source tree at a single revision, e.g. "git://github.com/gorilla/mux?master".
// It is the only key used for caching language server sessions.
type RootIdentity string

// NewRootIdentity builds the identity for a repository at the given revision.
func NewRootIdentity(repository string, revision string) RootIdentity {
	repository = strings.Trim(repository, "/")
	host, rest, _ := strings.Cut(repository, "/")
	u := url.URL{
		Scheme:   _rootScheme,
		Host:     host,
		RawQuery: revision,
	}
	if rest != "" {
		u.Path = "/" + rest
	}
	return RootIdentity(u.String())
}

// RootIdentityFromDocument strips the in-document fragment from a document identifier.
// The result is stable: equal inputs always yield equal identities.
func RootIdentityFromDocument(doc protocol.DocumentURI) (RootIdentity, error) {
	u, err := parseDocument(doc)
	if err != nil {
		return "", err
	}
	u.Fragment = ""
	u.RawFragment = ""
	return RootIdentity(u.String()), nil
}

// DocumentPath returns the path of the document within its source tree.
func DocumentPath(doc protocol.DocumentURI) (string, error) {
	u, err := parseDocument(doc)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(u.Fragment, "/"), nil
}

// Repository returns the repository name, e.g. "github.com/gorilla/mux".
func (r RootIdentity) Repository() string {
	u, err := url.Parse(string(r))
	if err != nil {
		return ""
	}
	return strings.Trim(u.Host+u.Path, "/")
}

// Revision returns the revision the identity is pinned to.
func (r RootIdentity) Revision() string {
	u, err := url.Parse(string(r))
	if err != nil {
		return ""
	}
	return u.RawQuery
}

// Document returns the document identifier for a path inside this source tree.
func (r RootIdentity) Document(path string) protocol.DocumentURI {
	frag := url.URL{Fragment: strings.TrimPrefix(path, "/")}
	return protocol.DocumentURI(string(r) + frag.String())
}

// String implements fmt.Stringer.
func (r RootIdentity) String() string {
	return string(r)
}

func parseDocument(doc protocol.DocumentURI) (*url.URL, error) {
	u, err := url.Parse(string(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing document identifier %q: %w", doc, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("document identifier %q has no repository", doc)
	}
	return u, nil
}
