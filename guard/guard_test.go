package guard

import (
	"testing"

	"github.com/goliatone/go-shelf/core"
)

type fixedSession struct {
	state core.Session
}

func (f fixedSession) Current() core.Session { return f.state }

func (f fixedSession) Identity() (core.Identity, bool) {
	if !f.state.Authenticated() {
		return core.Identity{}, false
	}
	return f.state.Identity, true
}

func TestGuard_CheckDecisions(t *testing.T) {
	cases := []struct {
		name     string
		phase    core.SessionPhase
		decision Decision
	}{
		{"uninitialized renders pending", core.PhaseUninitialized, DecisionPending},
		{"resolving renders pending", core.PhaseResolving, DecisionPending},
		{"anonymous redirects", core.PhaseAnonymous, DecisionRedirect},
		{"authenticated allows", core.PhaseAuthenticated, DecisionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guard, err := New(fixedSession{state: core.Session{
				Phase:    tc.phase,
				Identity: core.Identity{ID: 3, Username: "bob"},
			}}, "/login")
			if err != nil {
				t.Fatalf("new guard: %v", err)
			}
			verdict := guard.Check()
			if verdict.Decision != tc.decision {
				t.Fatalf("expected %s, got %s", tc.decision, verdict.Decision)
			}
		})
	}
}

func TestGuard_AllowCarriesIdentity(t *testing.T) {
	guard, err := New(fixedSession{state: core.Session{
		Phase:    core.PhaseAuthenticated,
		Identity: core.Identity{ID: 5, Username: "alice"},
	}}, "")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	verdict := guard.Check()
	if verdict.Identity.Username != "alice" {
		t.Fatalf("expected identity on allow, got %+v", verdict.Identity)
	}
	if verdict.RedirectTo != "" {
		t.Fatalf("allow must not carry a redirect target")
	}
}

func TestGuard_RedirectUsesConfiguredPath(t *testing.T) {
	guard, err := New(fixedSession{state: core.Session{Phase: core.PhaseAnonymous}}, "/signin")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	if got := guard.Check().RedirectTo; got != "/signin" {
		t.Fatalf("expected configured login path, got %q", got)
	}

	fallback, err := New(fixedSession{state: core.Session{Phase: core.PhaseAnonymous}}, "   ")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	if got := fallback.Check().RedirectTo; got != "/login" {
		t.Fatalf("expected /login fallback, got %q", got)
	}
}

func TestGuard_RequiresSessionReader(t *testing.T) {
	if _, err := New(nil, "/login"); err == nil {
		t.Fatalf("expected error without session reader")
	}
}
