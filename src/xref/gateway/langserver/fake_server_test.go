package langserver

import (
	"context"
	"encoding/json"
	"net"
	"net/url"
	"sync"
	"testing"

	"github.com/uber/xref-lsp/src/xref/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type recordedRequest struct {
	method string
	params json.RawMessage
	call   bool
}

// fakeServer is an in-memory language server reachable through its transport.
type fakeServer struct {
	t       *testing.T
	respond func(method string, params json.RawMessage) (interface{}, error)

	wg       sync.WaitGroup
	mu       sync.Mutex
	dials    int
	requests []recordedRequest
	conns    []jsonrpc2.Conn
}

func newFakeServer(t *testing.T, respond func(method string, params json.RawMessage) (interface{}, error)) *fakeServer {
	s := &fakeServer{t: t, respond: respond}
	t.Cleanup(s.closeAll)
	return s
}

func (s *fakeServer) transport(ctx context.Context, _ *url.URL) (jsonrpc2.Stream, error) {
	client, server := net.Pipe()
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(server))

	s.mu.Lock()
	s.dials++
	s.conns = append(s.conns, conn)
	s.mu.Unlock()

	conn.Go(context.Background(), s.handle)
	return jsonrpc2.NewStream(client), nil
}

func (s *fakeServer) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	_, isCall := req.(*jsonrpc2.Call)
	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{method: req.Method(), params: req.Params(), call: isCall})
	s.mu.Unlock()

	if req.Method() == protocol.MethodInitialize {
		return reply(ctx, protocol.InitializeResult{}, nil)
	}
	if s.respond == nil {
		return reply(ctx, nil, nil)
	}

	// Answer off the read loop so a slow response never stalls the pipe.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		result, err := s.respond(req.Method(), req.Params())
		reply(ctx, result, err)
	}()
	return nil
}

// dropConnections closes the server side of every connection, as a server restart would.
func (s *fakeServer) dropConnections() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
		<-c.Done()
	}
}

func (s *fakeServer) closeAll() {
	s.dropConnections()
	s.wg.Wait()
}

func (s *fakeServer) methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var methods []string
	for _, r := range s.requests {
		methods = append(methods, r.method)
	}
	return methods
}

func (s *fakeServer) request(method string) (recordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.method == method {
			return r, true
		}
	}
	return recordedRequest{}, false
}

func (s *fakeServer) dialCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dials
}

type staticArtifacts string

func (a staticArtifacts) ZipURL(_ context.Context, root entity.RootIdentity) (string, error) {
	return string(a) + "/" + root.Repository() + "@" + root.Revision() + "/-/raw", nil
}

type failingArtifacts struct {
	err error
}

func (a failingArtifacts) ZipURL(context.Context, entity.RootIdentity) (string, error) {
	return "", a.err
}
