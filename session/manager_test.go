package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-shelf/core"
)

type stubStore struct {
	mu     sync.Mutex
	cred   core.Credential
	ok     bool
	loads  int
	clears int
}

func (s *stubStore) Save(_ context.Context, cred core.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.ok = cred.Valid()
	return nil
}

func (s *stubStore) Load(context.Context) (core.Credential, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.cred, s.ok, nil
}

func (s *stubStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.cred = core.Credential{}
	s.ok = false
	return nil
}

type stubResolver struct {
	mu       sync.Mutex
	identity core.Identity
	err      error
	calls    int
}

func (r *stubResolver) ResolveIdentity(context.Context) (core.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.identity, r.err
}

func newTestManager(t *testing.T, store core.CredentialStore, resolver core.IdentityResolver) *Manager {
	t.Helper()
	manager, err := NewManager(ManagerConfig{Credentials: store})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if resolver != nil {
		manager.BindResolver(resolver)
	}
	return manager
}

func TestManager_StartsUninitialized(t *testing.T) {
	manager := newTestManager(t, &stubStore{}, nil)
	if got := manager.Current().Phase; got != core.PhaseUninitialized {
		t.Fatalf("expected uninitialized, got %s", got)
	}
	if _, ok := manager.Identity(); ok {
		t.Fatalf("uninitialized session must not expose an identity")
	}
}

func TestManager_BootstrapEmptyStoreSettlesAnonymousWithoutLookup(t *testing.T) {
	resolver := &stubResolver{}
	manager := newTestManager(t, &stubStore{}, resolver)

	state, err := manager.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if state.Phase != core.PhaseAnonymous {
		t.Fatalf("expected anonymous, got %s", state.Phase)
	}
	if resolver.calls != 0 {
		t.Fatalf("empty store must not trigger an identity lookup, got %d", resolver.calls)
	}
}

func TestManager_BootstrapResolvesStoredCredential(t *testing.T) {
	store := &stubStore{cred: core.Credential{Access: "access_1", Refresh: "refresh_1"}, ok: true}
	resolver := &stubResolver{identity: core.Identity{ID: 4, Username: "bob"}}
	manager := newTestManager(t, store, resolver)

	state, err := manager.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if !state.Authenticated() {
		t.Fatalf("expected authenticated session, got %s", state.Phase)
	}
	if state.Identity.Username != "bob" {
		t.Fatalf("expected resolved identity, got %+v", state.Identity)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected exactly one lookup, got %d", resolver.calls)
	}
}

func TestManager_BootstrapLookupFailurePurgesAndSettlesAnonymous(t *testing.T) {
	store := &stubStore{cred: core.Credential{Access: "stale"}, ok: true}
	resolver := &stubResolver{err: errors.New("boom")}
	manager := newTestManager(t, store, resolver)

	state, err := manager.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap must not surface lookup failures: %v", err)
	}
	if state.Phase != core.PhaseAnonymous {
		t.Fatalf("expected anonymous after failed lookup, got %s", state.Phase)
	}
	if store.clears != 1 {
		t.Fatalf("expected stored pair purged, got %d clears", store.clears)
	}
}

func TestManager_BootstrapIsSingleFlight(t *testing.T) {
	store := &stubStore{cred: core.Credential{Access: "access_1"}, ok: true}
	resolver := &stubResolver{identity: core.Identity{ID: 1, Username: "bob"}}
	manager := newTestManager(t, store, resolver)

	const callers = 8
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if _, err := manager.Bootstrap(context.Background()); err != nil {
				t.Errorf("bootstrap: %v", err)
			}
		}()
	}
	wg.Wait()

	if resolver.calls != 1 {
		t.Fatalf("expected one shared lookup across %d callers, got %d", callers, resolver.calls)
	}
	if got := manager.Current().Phase; got != core.PhaseAuthenticated {
		t.Fatalf("expected settled authenticated session, got %s", got)
	}
}

type blockingResolver struct {
	entered  chan struct{}
	release  chan struct{}
	identity core.Identity
}

func (r *blockingResolver) ResolveIdentity(context.Context) (core.Identity, error) {
	close(r.entered)
	<-r.release
	return r.identity, nil
}

func TestManager_InvalidateDuringBootstrapDiscardsStaleResolution(t *testing.T) {
	store := &stubStore{cred: core.Credential{Access: "access_1"}, ok: true}
	resolver := &blockingResolver{
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
		identity: core.Identity{ID: 4, Username: "bob"},
	}
	manager := newTestManager(t, store, resolver)

	done := make(chan core.Session, 1)
	go func() {
		state, err := manager.Bootstrap(context.Background())
		if err != nil {
			t.Errorf("bootstrap: %v", err)
		}
		done <- state
	}()

	<-resolver.entered
	if got := manager.Current().Phase; got != core.PhaseResolving {
		t.Fatalf("expected resolving while the lookup is in flight, got %s", got)
	}

	// Logout lands before the lookup returns; the late resolution must
	// lose the race and be discarded.
	manager.Invalidate(context.Background(), "logout while resolving")
	close(resolver.release)
	state := <-done

	if state.Phase != core.PhaseAnonymous {
		t.Fatalf("expected the stale resolution discarded, got %s", state.Phase)
	}
	if got := manager.Current().Phase; got != core.PhaseAnonymous {
		t.Fatalf("expected anonymous after invalidate, got %s", got)
	}
	if _, ok := manager.Identity(); ok {
		t.Fatalf("stale resolution must not expose an identity")
	}
}

func TestManager_EstablishCommitsAuthenticatedSession(t *testing.T) {
	manager := newTestManager(t, &stubStore{}, nil)
	manager.Establish(core.Identity{ID: 9, Username: "alice"})

	identity, ok := manager.Identity()
	if !ok || identity.Username != "alice" {
		t.Fatalf("expected established identity, got %+v ok=%v", identity, ok)
	}

	// A bootstrap arriving after a direct login must not re-resolve.
	resolver := &stubResolver{}
	manager.BindResolver(resolver)
	state, err := manager.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if !state.Authenticated() || resolver.calls != 0 {
		t.Fatalf("late bootstrap must keep the settled session, phase=%s calls=%d", state.Phase, resolver.calls)
	}
}

func TestManager_InvalidateClearsStoreAndNotifies(t *testing.T) {
	store := &stubStore{cred: core.Credential{Access: "access_1"}, ok: true}
	manager := newTestManager(t, store, nil)
	manager.Establish(core.Identity{ID: 2, Username: "bob"})

	var observed []core.SessionPhase
	unsubscribe := manager.Subscribe(func(s core.Session) {
		observed = append(observed, s.Phase)
	})
	defer unsubscribe()

	manager.Invalidate(context.Background(), "logout")

	if got := manager.Current().Phase; got != core.PhaseAnonymous {
		t.Fatalf("expected anonymous after invalidate, got %s", got)
	}
	if store.clears != 1 {
		t.Fatalf("expected credential purge, got %d clears", store.clears)
	}
	if len(observed) != 1 || observed[0] != core.PhaseAnonymous {
		t.Fatalf("expected anonymous notification, got %v", observed)
	}
	if _, ok := manager.Identity(); ok {
		t.Fatalf("invalidated session must not expose an identity")
	}
}

func TestManager_UnsubscribeStopsNotifications(t *testing.T) {
	manager := newTestManager(t, &stubStore{}, nil)

	calls := 0
	unsubscribe := manager.Subscribe(func(core.Session) { calls++ })
	manager.Establish(core.Identity{ID: 1})
	unsubscribe()
	manager.Invalidate(context.Background(), "logout")

	if calls != 1 {
		t.Fatalf("expected one notification before unsubscribe, got %d", calls)
	}
}
