package langserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"go.lsp.dev/jsonrpc2"
)

const (
	_readLimit    = 64 << 20
	_writeTimeout = 30 * time.Second
)

var _transportSchemes = map[string]struct{}{
	"ws":  {},
	"wss": {},
	"tcp": {},
}

// DialTransport connects over a WebSocket for ws and wss addresses, where every frame carries one
// JSON-RPC message, and over plain TCP with LSP header framing for tcp addresses.
func DialTransport(ctx context.Context, address *url.URL) (jsonrpc2.Stream, error) {
	switch address.Scheme {
	case "ws", "wss":
		c, _, err := websocket.Dial(ctx, address.String(), nil)
		if err != nil {
			return nil, err
		}
		c.SetReadLimit(_readLimit)
		return NewWebSocketStream(c), nil
	case "tcp":
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", address.Host)
		if err != nil {
			return nil, err
		}
		return jsonrpc2.NewStream(conn), nil
	default:
		return nil, fmt.Errorf("unsupported scheme %q", address.Scheme)
	}
}

type wsStream struct {
	conn *websocket.Conn
}

// NewWebSocketStream returns a jsonrpc2.Stream that sends each message as a single text frame.
func NewWebSocketStream(conn *websocket.Conn) jsonrpc2.Stream {
	return &wsStream{conn: conn}
}

// Read implements jsonrpc2.Stream.
func (s *wsStream) Read(ctx context.Context) (jsonrpc2.Message, int64, error) {
	_, data, err := s.conn.Read(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("reading websocket frame: %w", err)
	}
	msg, err := jsonrpc2.DecodeMessage(data)
	return msg, int64(len(data)), err
}

// Write implements jsonrpc2.Stream.
// A cancelled write closes the whole websocket, so writes are bounded by their own timeout
// rather than by the caller's request context.
func (s *wsStream) Write(ctx context.Context, msg jsonrpc2.Message) (int64, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("marshaling message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), _writeTimeout)
	defer cancel()
	if err := s.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return 0, fmt.Errorf("writing websocket frame: %w", err)
	}
	return int64(len(data)), nil
}

// Close implements jsonrpc2.Stream.
func (s *wsStream) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "")
}
