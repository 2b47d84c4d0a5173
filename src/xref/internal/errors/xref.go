package errors

import (
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/protocol"
)

// MissingServerAddressError indicates that no language server address has been configured.
type MissingServerAddressError struct {
	Setting string
}

// Error is an implementation of the error interface.
func (n *MissingServerAddressError) Error() string {
	return fmt.Sprintf("the Go language server address is not set, configure %q", n.Setting)
}

// ResolutionError indicates that no definition could be found for a position.
type ResolutionError struct {
	Document protocol.DocumentURI
	Position protocol.Position
}

// Error is an implementation of the error interface.
func (n *ResolutionError) Error() string {
	return fmt.Sprintf("no definition found for %s at %d:%d", n.Document, n.Position.Line, n.Position.Character)
}

// LocatorError indicates that the importers of a package could not be determined.
type LocatorError struct {
	Package string
	Err     error
}

// Error is an implementation of the error interface.
func (n *LocatorError) Error() string {
	return fmt.Sprintf("finding importers of %q: %v", n.Package, n.Err)
}

// Unwrap returns the underlying cause.
func (n *LocatorError) Unwrap() error {
	return n.Err
}

// CandidateError indicates that a single candidate repository failed to answer a references query.
type CandidateError struct {
	Repository string
	Err        error
}

// Error is an implementation of the error interface.
func (n *CandidateError) Error() string {
	return fmt.Sprintf("querying references in %q: %v", n.Repository, n.Err)
}

// Unwrap returns the underlying cause.
func (n *CandidateError) Unwrap() error {
	return n.Err
}

// SessionClosedError indicates that a language server session was closed before a request completed.
type SessionClosedError struct {
	Root string
}

// Error is an implementation of the error interface.
func (n *SessionClosedError) Error() string {
	return fmt.Sprintf("session for %q is closed", n.Root)
}

// NoConnectionFoundError indicates that the inbound connection cannot be found within the context.
type NoConnectionFoundError struct{}

// Error is an implementation of the error interface.
func (n *NoConnectionFoundError) Error() string {
	return "no connection found in context"
}

// UUIDNotFoundError indicates that no inbound connection is registered under a UUID.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("UUID %q not found", n.UUID)
}
