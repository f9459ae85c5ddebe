package core

import "testing"

func TestIsPlaceholderToken(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"undefined", true},
		{"null", true},
		{" null ", true},
		{"tok_abc123", false},
		{"nullable-token", false},
	}
	for _, tc := range cases {
		if got := IsPlaceholderToken(tc.value); got != tc.want {
			t.Fatalf("IsPlaceholderToken(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestCredentialValid(t *testing.T) {
	if (Credential{}).Valid() {
		t.Fatalf("empty credential must not be valid")
	}
	if (Credential{Access: "undefined", Refresh: "refresh_1"}).Valid() {
		t.Fatalf("placeholder access token must not be valid")
	}
	if (Credential{Access: "null"}).Valid() {
		t.Fatalf("placeholder access token must not be valid")
	}
	// A usable access token is what decides validity; the refresh slot is
	// carried opaquely.
	if !(Credential{Access: "access_1", Refresh: "null"}).Valid() {
		t.Fatalf("pair with usable access token must be valid")
	}
	if !(Credential{Access: "access_1", Refresh: "refresh_1"}).Valid() {
		t.Fatalf("well-formed pair must be valid")
	}
}

func TestSessionPhasePredicates(t *testing.T) {
	if (Session{Phase: PhaseUninitialized}).Settled() {
		t.Fatalf("uninitialized must not be settled")
	}
	if (Session{Phase: PhaseResolving}).Settled() {
		t.Fatalf("resolving must not be settled")
	}
	if !(Session{Phase: PhaseAnonymous}).Settled() {
		t.Fatalf("anonymous must be settled")
	}

	authed := Session{Phase: PhaseAuthenticated, Identity: Identity{ID: 1, Username: "bob"}}
	if !authed.Settled() || !authed.Authenticated() {
		t.Fatalf("authenticated session must be settled and authenticated")
	}
	if (Session{Phase: PhaseAnonymous}).Authenticated() {
		t.Fatalf("anonymous session must not report authenticated")
	}
}
