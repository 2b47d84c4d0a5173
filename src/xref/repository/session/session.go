// Package session caches language server sessions by root identity.
package session

import (
	"context"
	"sync"
	"time"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/gateway/langserver"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module provides the session Manager and releases its sessions on shutdown.
var Module = fx.Provide(New)

// Manager owns the cached sessions. It holds at most one session per root identity.
type Manager interface {
	// Acquire returns the cached session for root, connecting if there is none.
	// Concurrent calls for the same root share a single connection attempt.
	Acquire(ctx context.Context, root entity.RootIdentity) (langserver.Session, error)
	// Release disposes the cached session for root, if any.
	Release(ctx context.Context, root entity.RootIdentity) error
	// ReleaseAll disposes every cached session and cancels pending connection attempts.
	// Acquire fails after ReleaseAll.
	ReleaseAll(ctx context.Context) error
	// Len returns the number of cached sessions, including pending ones.
	Len() int
}

// Params are inbound parameters to initialize a new Manager.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Dialer    langserver.Dialer
	Settings  entity.Settings
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

// entry is a cache slot. It is inserted before the connection attempt starts and ready is closed
// once session or err is set. done is closed once the entry's goroutines have exited.
type entry struct {
	ready   chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc
	session langserver.Session
	err     error
}

type manager struct {
	dialer         langserver.Dialer
	connectTimeout time.Duration
	logger         *zap.SugaredLogger
	stats          tally.Scope

	mu      sync.Mutex
	entries map[entity.RootIdentity]*entry
	active  int
	closed  bool
}

// New returns a Manager. Every cached session is released when the application stops.
func New(p Params) Manager {
	m := newManager(p.Dialer, time.Duration(p.Settings.ConnectTimeoutSeconds)*time.Second, p.Logger, p.Stats)
	p.Lifecycle.Append(fx.Hook{
		OnStop: m.ReleaseAll,
	})
	return m
}

func newManager(dialer langserver.Dialer, connectTimeout time.Duration, logger *zap.SugaredLogger, stats tally.Scope) *manager {
	if connectTimeout <= 0 {
		connectTimeout = entity.DefaultConnectTimeoutSeconds * time.Second
	}
	return &manager{
		dialer:         dialer,
		connectTimeout: connectTimeout,
		logger:         logger,
		stats:          stats.SubScope("sessions"),
		entries:        make(map[entity.RootIdentity]*entry),
	}
}

// Acquire implements Manager.
// The connection attempt is not tied to ctx: a caller that gives up does not abort it for the others.
func (m *manager) Acquire(ctx context.Context, root entity.RootIdentity) (langserver.Session, error) {
	for {
		e := m.slot(ctx, root)

		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}

		select {
		case <-e.session.Done():
			// Closed before the watcher got to it.
			m.evict(root, e)
		default:
			return e.session, nil
		}
	}
}

// slot returns the entry for root, inserting a pending one and starting the connection attempt if there is none.
func (m *manager) slot(ctx context.Context, root entity.RootIdentity) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		e := &entry{
			ready:  make(chan struct{}),
			done:   make(chan struct{}),
			cancel: func() {},
			err:    &errors.SessionClosedError{Root: root.String()},
		}
		close(e.ready)
		close(e.done)
		return e
	}
	if e, ok := m.entries[root]; ok {
		return e
	}

	attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.connectTimeout)
	e := &entry{
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	m.entries[root] = e
	go m.connect(attemptCtx, root, e)
	return e
}

func (m *manager) connect(ctx context.Context, root entity.RootIdentity, e *entry) {
	defer e.cancel()

	m.stats.Counter("connects").Inc(1)
	s, err := m.dialer.Dial(ctx, root)

	m.mu.Lock()
	defer m.mu.Unlock()
	defer close(e.ready)

	current := m.entries[root] == e
	if err != nil {
		m.stats.Counter("connect_errors").Inc(1)
		m.logger.Warnf("connecting to language server for %s: %v", root, err)
		if current {
			delete(m.entries, root)
		}
		e.err = err
		close(e.done)
		return
	}

	if !current {
		// Released while connecting.
		s.Close()
		e.err = &errors.SessionClosedError{Root: root.String()}
		close(e.done)
		return
	}

	e.session = s
	m.active++
	m.stats.Gauge("active_sessions").Update(float64(m.active))
	go m.watch(root, e)
}

// watch evicts the entry once its session terminates, whichever side closed it.
func (m *manager) watch(root entity.RootIdentity, e *entry) {
	defer close(e.done)
	<-e.session.Done()
	m.evict(root, e)
}

func (m *manager) evict(root entity.RootIdentity, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries[root] != e {
		return
	}
	m.removeLocked(root, e)
	m.stats.Counter("evictions").Inc(1)
	m.logger.Infow("language server session closed", "root", root)
}

func (m *manager) removeLocked(root entity.RootIdentity, e *entry) {
	delete(m.entries, root)
	if e.session != nil {
		m.active--
		m.stats.Gauge("active_sessions").Update(float64(m.active))
	}
}

// Release implements Manager.
func (m *manager) Release(ctx context.Context, root entity.RootIdentity) error {
	m.mu.Lock()
	e, ok := m.entries[root]
	if ok {
		m.removeLocked(root, e)
	}
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return dispose(e)
}

// ReleaseAll implements Manager. Once called, Acquire fails with a SessionClosedError
// and no new connection attempt starts.
func (m *manager) ReleaseAll(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	entries := make([]*entry, 0, len(m.entries))
	for root, e := range m.entries {
		entries = append(entries, e)
		m.removeLocked(root, e)
	}
	m.mu.Unlock()

	var errs error
	for _, e := range entries {
		errs = multierr.Append(errs, dispose(e))
	}

wait:
	for _, e := range entries {
		select {
		case <-e.done:
		case <-ctx.Done():
			errs = multierr.Append(errs, ctx.Err())
			break wait
		}
	}

	m.logger.Infow("released language server sessions", "count", len(entries))
	return errs
}

// Len implements Manager.
func (m *manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// dispose closes an established session or cancels a pending connection attempt.
// The entry must already be removed from the cache.
func dispose(e *entry) error {
	select {
	case <-e.ready:
		if e.session == nil {
			return nil
		}
		return e.session.Close()
	default:
		e.cancel()
		return nil
	}
}
