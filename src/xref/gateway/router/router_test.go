package router

import (
	"context"
	stderr "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/factory"
	"github.com/uber/xref-lsp/src/xref/gateway/langserver/langservermock"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"github.com/uber/xref-lsp/src/xref/repository/session/sessionmock"
	"go.lsp.dev/protocol"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fixture struct {
	sessions *sessionmock.MockManager
	dialer   *langservermock.MockDialer
	session  *langservermock.MockSession
	scope    tally.TestScope
	router   Router
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		sessions: sessionmock.NewMockManager(ctrl),
		dialer:   langservermock.NewMockDialer(ctrl),
		session:  langservermock.NewMockSession(ctrl),
		scope:    tally.NewTestScope("", nil),
	}
	f.router = New(Params{
		Settings: entity.Settings{ServerURL: "tcp://127.0.0.1:4389"}.WithDefaults(),
		Sessions: f.sessions,
		Dialer:   f.dialer,
		Logger:   zap.NewNop().Sugar(),
		Stats:    f.scope,
	})
	return f
}

func TestReuse(t *testing.T) {
	ctx := context.Background()
	root := factory.Root("github.com/gorilla/mux")
	params := factory.PositionParams("github.com/gorilla/mux", "mux.go", 1, 2)

	t.Run("hover", func(t *testing.T) {
		f := newFixture(t)
		want := &protocol.Hover{Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: "func Vars"}}
		f.sessions.EXPECT().Acquire(gomock.Any(), root).Return(f.session, nil)
		f.session.EXPECT().Hover(gomock.Any(), gomock.Any()).Return(want, nil)

		got, err := f.router.Hover(ctx, root, entity.CachePolicyReuse, &protocol.HoverParams{TextDocumentPositionParams: params})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("xdefinition", func(t *testing.T) {
		f := newFixture(t)
		want := []entity.SymbolLocationInformation{{Symbol: factory.Symbol("github.com/gorilla/mux", "Vars")}}
		f.sessions.EXPECT().Acquire(gomock.Any(), root).Return(f.session, nil)
		f.session.EXPECT().XDefinition(gomock.Any(), &params).Return(want, nil)

		got, err := f.router.XDefinition(ctx, root, entity.CachePolicyReuse, &params)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("references", func(t *testing.T) {
		f := newFixture(t)
		want := []protocol.Location{{URI: "file:///mux.go", Range: factory.Range(3, 1, 5)}}
		f.sessions.EXPECT().Acquire(gomock.Any(), root).Return(f.session, nil)
		f.session.EXPECT().References(gomock.Any(), gomock.Any()).Return(want, nil)

		got, err := f.router.References(ctx, root, entity.CachePolicyReuse, &protocol.ReferenceParams{TextDocumentPositionParams: params})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("implementation", func(t *testing.T) {
		f := newFixture(t)
		want := []protocol.Location{{URI: "file:///route.go", Range: factory.Range(7, 0, 4)}}
		f.sessions.EXPECT().Acquire(gomock.Any(), root).Return(f.session, nil)
		f.session.EXPECT().Implementation(gomock.Any(), gomock.Any()).Return(want, nil)

		got, err := f.router.Implementation(ctx, root, entity.CachePolicyReuse, &protocol.ImplementationParams{TextDocumentPositionParams: params})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("acquire failure", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.EXPECT().Acquire(gomock.Any(), root).Return(nil, stderr.New("connection refused"))

		_, err := f.router.Hover(ctx, root, entity.CachePolicyReuse, &protocol.HoverParams{TextDocumentPositionParams: params})
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("session is not closed", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.EXPECT().Acquire(gomock.Any(), root).Return(f.session, nil)
		f.session.EXPECT().Hover(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.session.EXPECT().Close().Times(0)

		_, err := f.router.Hover(ctx, root, entity.CachePolicyReuse, &protocol.HoverParams{TextDocumentPositionParams: params})
		require.NoError(t, err)
	})
}

func TestEphemeral(t *testing.T) {
	ctx := context.Background()
	root := factory.Root("github.com/a/b")
	query := &entity.WorkspaceReferencesParams{Query: factory.Symbol("github.com/gorilla/mux", "Vars"), Limit: 50}

	t.Run("closes session after success", func(t *testing.T) {
		f := newFixture(t)
		want := []entity.ReferenceInformation{{Reference: protocol.Location{URI: "file:///a.go"}}}
		gomock.InOrder(
			f.dialer.EXPECT().Dial(gomock.Any(), root).Return(f.session, nil),
			f.session.EXPECT().XReferences(gomock.Any(), query).Return(want, nil),
			f.session.EXPECT().Close().Return(nil),
		)
		f.sessions.EXPECT().Acquire(gomock.Any(), gomock.Any()).Times(0)

		got, err := f.router.XReferences(ctx, root, entity.CachePolicyEphemeral, query)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("closes session after failure", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.dialer.EXPECT().Dial(gomock.Any(), root).Return(f.session, nil),
			f.session.EXPECT().XReferences(gomock.Any(), query).Return(nil, stderr.New("boom")),
			f.session.EXPECT().Close().Return(stderr.New("already closed")),
		)

		_, err := f.router.XReferences(ctx, root, entity.CachePolicyEphemeral, query)
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("dial failure", func(t *testing.T) {
		f := newFixture(t)
		f.dialer.EXPECT().Dial(gomock.Any(), root).Return(nil, stderr.New("connection refused"))

		_, err := f.router.XReferences(ctx, root, entity.CachePolicyEphemeral, query)
		assert.ErrorContains(t, err, "connection refused")
		assert.Equal(t, int64(1), countErrors(f.scope))
	})
}

func TestRequestTimeout(t *testing.T) {
	f := newFixture(t)
	r := f.router.(*router)
	r.requestTimeout = 10 * time.Millisecond
	root := factory.Root("github.com/gorilla/mux")

	f.sessions.EXPECT().Acquire(gomock.Any(), root).Return(f.session, nil)
	f.session.EXPECT().Hover(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *protocol.HoverParams) (*protocol.Hover, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	_, err := r.Hover(context.Background(), root, entity.CachePolicyReuse, &protocol.HoverParams{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUnknownPolicy(t *testing.T) {
	f := newFixture(t)
	_, err := f.router.Hover(context.Background(), factory.Root("github.com/gorilla/mux"), entity.CachePolicy(9), &protocol.HoverParams{})
	assert.ErrorContains(t, err, "unknown cache policy")
}

func TestUnconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := New(Params{
		Settings: entity.Settings{}.WithDefaults(),
		Sessions: sessionmock.NewMockManager(ctrl),
		Dialer:   langservermock.NewMockDialer(ctrl),
		Logger:   zap.NewNop().Sugar(),
		Stats:    tally.NoopScope,
	})
	ctx := context.Background()
	root := factory.Root("github.com/gorilla/mux")

	var missing *errors.MissingServerAddressError
	_, err := r.Hover(ctx, root, entity.CachePolicyReuse, &protocol.HoverParams{})
	assert.ErrorAs(t, err, &missing)
	_, err = r.XDefinition(ctx, root, entity.CachePolicyReuse, &protocol.TextDocumentPositionParams{})
	assert.ErrorAs(t, err, &missing)
	_, err = r.References(ctx, root, entity.CachePolicyReuse, &protocol.ReferenceParams{})
	assert.ErrorAs(t, err, &missing)
	_, err = r.Implementation(ctx, root, entity.CachePolicyReuse, &protocol.ImplementationParams{})
	assert.ErrorAs(t, err, &missing)
	_, err = r.XReferences(ctx, root, entity.CachePolicyEphemeral, &entity.WorkspaceReferencesParams{})
	assert.ErrorAs(t, err, &missing)
	assert.True(t, errors.IsConfiguration(err))
}

func countErrors(scope tally.TestScope) int64 {
	var total int64
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == "router.errors" {
			total += c.Value()
		}
	}
	return total
}
