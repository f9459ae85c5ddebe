package core

import (
	"strings"
)

// SessionPhase is the client-local authentication state. Exactly one
// Session value exists per constructed client; every dependent component
// reads it instead of keeping its own logged-in flag.
type SessionPhase string

const (
	PhaseUninitialized SessionPhase = "uninitialized"
	PhaseResolving     SessionPhase = "resolving"
	PhaseAuthenticated SessionPhase = "authenticated"
	PhaseAnonymous     SessionPhase = "anonymous"
)

// Credential is the opaque access/refresh bearer pair issued by the resource
// API. The client never inspects token structure; the pair is stored and
// cleared atomically, never one slot at a time.
type Credential struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// credentialPlaceholders are string forms of "missing" that browser-style
// storage is known to leak into persisted slots.
var credentialPlaceholders = map[string]struct{}{
	"":          {},
	"undefined": {},
	"null":      {},
}

// IsPlaceholderToken reports whether value is a present-but-empty token form
// that must be treated as no credential at all.
func IsPlaceholderToken(value string) bool {
	_, ok := credentialPlaceholders[strings.TrimSpace(value)]
	return ok
}

// Valid reports whether the pair carries a usable access token.
func (c Credential) Valid() bool {
	return !IsPlaceholderToken(c.Access)
}

// Identity is the authoritative representation of the signed-in user,
// resolved from the identity-lookup endpoint. Immutable within a session;
// replaced wholesale on re-login.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Account descriptor returned by registration. Registration does not
// establish a session; callers redirect to login.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the read model consulted by guards and views.
type Session struct {
	Phase    SessionPhase
	Identity Identity
}

// Authenticated reports whether the session resolved to a signed-in user.
func (s Session) Authenticated() bool {
	return s.Phase == PhaseAuthenticated
}

// Settled reports whether the session left its indeterminate phases.
// While unsettled, protected views must render a neutral loading state
// rather than redirecting.
func (s Session) Settled() bool {
	return s.Phase == PhaseAuthenticated || s.Phase == PhaseAnonymous
}

// ResetReceipt is the outcome of a password-reset request. Token is only
// populated by demo deployments that return the reset token inline instead
// of delivering it out of band.
type ResetReceipt struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}
