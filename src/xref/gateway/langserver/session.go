package langserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// InitializeParams extends the standard initialize request with the identity of the source tree
// being served, since the root URI the server sees is always "file:///".
type InitializeParams struct {
	protocol.InitializeParams

	OriginalRootURI entity.RootIdentity `json:"originalRootUri"`
}

// InitializationOptions tell the language server where to fetch the source tree from.
type InitializationOptions struct {
	ZipURL string `json:"zipURL,omitempty"`
}

type session struct {
	root   entity.RootIdentity
	conn   jsonrpc2.Conn
	cancel context.CancelFunc
	logger *zap.SugaredLogger

	closeOnce sync.Once
	closeErr  error
}

func newSession(root entity.RootIdentity, conn jsonrpc2.Conn, logger *zap.SugaredLogger) *session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		root:   root,
		conn:   conn,
		cancel: cancel,
		logger: logger,
	}
	conn.Go(ctx, s.handle)
	return s
}

func (s *session) initialize(ctx context.Context, zipURL string) error {
	params := &InitializeParams{
		InitializeParams: protocol.InitializeParams{
			RootURI:               protocol.DocumentURI("file:///"),
			RootPath:              "/",
			InitializationOptions: InitializationOptions{ZipURL: zipURL},
		},
		OriginalRootURI: s.root,
	}

	var result protocol.InitializeResult
	if err := s.call(ctx, protocol.MethodInitialize, params, &result); err != nil {
		return err
	}
	return s.conn.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{})
}

// handle answers requests initiated by the language server.
func (s *session) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodWindowLogMessage, protocol.MethodWindowShowMessage:
		s.logger.Debugw("language server message", "root", s.root, "method", req.Method(), "params", string(req.Params()))
		return reply(ctx, nil, nil)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// call sends a single request. jsonrpc2 does not fail pending calls when the stream terminates,
// so the call is abandoned as soon as the connection is done.
func (s *session) call(ctx context.Context, method string, params, result interface{}) error {
	if s.closed() {
		return fmt.Errorf("%s: %w", method, &errors.SessionClosedError{Root: s.root.String()})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.conn.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := protocol.Call(ctx, s.conn, method, params, result); err != nil {
		if s.closed() {
			return fmt.Errorf("%s: %w", method, &errors.SessionClosedError{Root: s.root.String()})
		}
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (s *session) closed() bool {
	select {
	case <-s.conn.Done():
		return true
	default:
		return false
	}
}

// Root implements Session.
func (s *session) Root() entity.RootIdentity {
	return s.root
}

// Hover implements Session.
func (s *session) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	var result *protocol.Hover
	if err := s.call(ctx, protocol.MethodTextDocumentHover, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// XDefinition implements Session.
func (s *session) XDefinition(ctx context.Context, params *protocol.TextDocumentPositionParams) ([]entity.SymbolLocationInformation, error) {
	var result []entity.SymbolLocationInformation
	if err := s.call(ctx, MethodXDefinition, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// References implements Session.
func (s *session) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	var result []protocol.Location
	if err := s.call(ctx, protocol.MethodTextDocumentReferences, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Implementation implements Session.
func (s *session) Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.Location, error) {
	var result []protocol.Location
	if err := s.call(ctx, protocol.MethodTextDocumentImplementation, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// XReferences implements Session.
func (s *session) XReferences(ctx context.Context, params *entity.WorkspaceReferencesParams) ([]entity.ReferenceInformation, error) {
	var result []entity.ReferenceInformation
	if err := s.call(ctx, MethodXReferences, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Done implements Session.
func (s *session) Done() <-chan struct{} {
	return s.conn.Done()
}

// Close implements Session.
// Errors from closing a connection the server already terminated are not reported.
func (s *session) Close() error {
	s.closeOnce.Do(func() {
		alreadyClosed := s.closed()
		err := s.conn.Close()
		s.cancel()
		<-s.conn.Done()
		if !alreadyClosed {
			s.closeErr = err
		}
	})
	return s.closeErr
}
