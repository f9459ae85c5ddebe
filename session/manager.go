// Package session owns the client-local authentication state machine:
// Uninitialized → Resolving → {Authenticated, Anonymous}. One Manager
// exists per constructed client and is passed by handle to every component
// that needs it; there is no ambient global session.
package session

import (
	"context"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-shelf/core"
)

type ManagerConfig struct {
	Credentials core.CredentialStore
	Resolver    core.IdentityResolver
	Logger      core.Logger
}

// Manager is the single source of truth for "am I logged in, and as whom".
// Writers are the auth gateway and Bootstrap; everything else is a reader.
type Manager struct {
	mu          sync.Mutex
	state       core.Session
	epoch       uint64
	done        chan struct{}
	started     bool
	credentials core.CredentialStore
	resolver    core.IdentityResolver
	logger      core.Logger
	subscribers map[int]func(core.Session)
	nextSubID   int
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Credentials == nil {
		return nil, core.InternalError("session: manager requires a credential store")
	}
	return &Manager{
		state:       core.Session{Phase: core.PhaseUninitialized},
		credentials: cfg.Credentials,
		resolver:    cfg.Resolver,
		logger:      glog.Ensure(cfg.Logger),
		subscribers: map[int]func(core.Session){},
	}, nil
}

// BindResolver injects the identity resolver after construction. The
// resolver reaches the resource API through the request gateway, and the
// gateway needs the manager as its invalidator, so one side binds late.
func (m *Manager) BindResolver(resolver core.IdentityResolver) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolver = resolver
}

// Current returns the session snapshot.
func (m *Manager) Current() core.Session {
	if m == nil {
		return core.Session{Phase: core.PhaseUninitialized}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the resolved identity when the session is
// authenticated.
func (m *Manager) Identity() (core.Identity, bool) {
	state := m.Current()
	if !state.Authenticated() {
		return core.Identity{}, false
	}
	return state.Identity, true
}

// Subscribe registers a change listener and returns its remover.
// Listeners run after a transition commits, outside the manager lock.
func (m *Manager) Subscribe(fn func(core.Session)) func() {
	if m == nil || fn == nil {
		return func() {}
	}
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Bootstrap resolves the session from the persisted credential, exactly
// once per manager lifetime. An empty store settles to Anonymous with no
// network call. A stored credential moves the session to Resolving and
// issues one identity lookup through the gateway; failure of any kind is
// indistinguishable from "not logged in" and settles to Anonymous with the
// pair purged. Concurrent callers await the first invocation instead of
// issuing a duplicate lookup.
func (m *Manager) Bootstrap(ctx context.Context) (core.Session, error) {
	if m == nil {
		return core.Session{}, core.InternalError("session: manager is nil")
	}

	m.mu.Lock()
	if m.started {
		done := m.done
		m.mu.Unlock()
		if done != nil {
			select {
			case <-done:
			case <-ctx.Done():
				return m.Current(), ctx.Err()
			}
		}
		return m.Current(), nil
	}
	m.started = true
	done := make(chan struct{})
	m.done = done
	epoch := m.epoch
	resolver := m.resolver
	m.mu.Unlock()

	defer close(done)

	cred, ok, err := m.credentials.Load(ctx)
	if err != nil {
		// Storage failure at startup is not surfaced; it reads as "not
		// logged in".
		m.logger.Warn("credential load failed during bootstrap", "error", err.Error())
		m.transition(epoch, core.Session{Phase: core.PhaseAnonymous})
		return m.Current(), nil
	}
	if !ok || !cred.Valid() {
		m.transition(epoch, core.Session{Phase: core.PhaseAnonymous})
		return m.Current(), nil
	}

	if !m.transition(epoch, core.Session{Phase: core.PhaseResolving}) {
		return m.Current(), nil
	}

	if resolver == nil {
		m.logger.Warn("no identity resolver bound, settling anonymous")
		m.purge(ctx, epoch, "identity resolver missing")
		return m.Current(), nil
	}

	identity, err := resolver.ResolveIdentity(ctx)
	if err != nil {
		// The lookup may already have invalidated the session on a 401;
		// the epoch guard makes this purge a no-op in that case.
		m.purge(ctx, epoch, "identity lookup failed")
		return m.Current(), nil
	}

	m.transition(epoch, core.Session{Phase: core.PhaseAuthenticated, Identity: identity})
	return m.Current(), nil
}

// Establish commits a freshly authenticated identity. Only the auth
// gateway calls this, after the credential pair is persisted.
func (m *Manager) Establish(identity core.Identity) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.epoch++
	m.state = core.Session{Phase: core.PhaseAuthenticated, Identity: identity}
	m.markStartedLocked()
	listeners := m.snapshotSubscribersLocked()
	state := m.state
	m.mu.Unlock()
	m.notify(listeners, state)
}

// Invalidate purges the stored pair and forces the session to Anonymous.
// Used by logout and by the transport gateway when a previously valid
// credential is authoritatively rejected.
func (m *Manager) Invalidate(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.epoch++
	m.state = core.Session{Phase: core.PhaseAnonymous}
	m.markStartedLocked()
	listeners := m.snapshotSubscribersLocked()
	state := m.state
	m.mu.Unlock()

	if err := m.credentials.Clear(ctx); err != nil {
		m.logger.Error("credential purge failed",
			"reason", strings.TrimSpace(reason),
			"error", err.Error(),
		)
	}
	m.notify(listeners, state)
}

// purge is the bootstrap-local variant of Invalidate, guarded by epoch so
// a resolution that lost a race with login/logout discards its outcome.
func (m *Manager) purge(ctx context.Context, epoch uint64, reason string) {
	if !m.transition(epoch, core.Session{Phase: core.PhaseAnonymous}) {
		return
	}
	if err := m.credentials.Clear(ctx); err != nil {
		m.logger.Error("credential purge failed",
			"reason", strings.TrimSpace(reason),
			"error", err.Error(),
		)
	}
}

// transition commits next only when no other writer moved the session
// since epoch was captured.
func (m *Manager) transition(epoch uint64, next core.Session) bool {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return false
	}
	m.state = next
	listeners := m.snapshotSubscribersLocked()
	m.mu.Unlock()
	m.notify(listeners, next)
	return true
}

// markStartedLocked keeps a late Bootstrap from re-resolving a session a
// direct login already settled.
func (m *Manager) markStartedLocked() {
	if m.started {
		return
	}
	m.started = true
	done := make(chan struct{})
	close(done)
	m.done = done
}

func (m *Manager) snapshotSubscribersLocked() []func(core.Session) {
	if len(m.subscribers) == 0 {
		return nil
	}
	listeners := make([]func(core.Session), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		listeners = append(listeners, fn)
	}
	return listeners
}

func (m *Manager) notify(listeners []func(core.Session), state core.Session) {
	for _, fn := range listeners {
		fn(state)
	}
}

var (
	_ core.SessionReader      = (*Manager)(nil)
	_ core.SessionInvalidator = (*Manager)(nil)
)
