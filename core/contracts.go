package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// CredentialStore is durable, device-local persistence for the credential
// pair. Pure storage: no network, no validation beyond placeholder
// rejection on load.
type CredentialStore interface {
	// Save stores both tokens together, overwriting any prior pair.
	Save(ctx context.Context, cred Credential) error
	// Load returns the stored pair. Placeholder slot values ("",
	// "undefined", "null") are reported as absent.
	Load(ctx context.Context) (Credential, bool, error)
	// Clear removes both tokens. Idempotent.
	Clear(ctx context.Context) error
}

// SessionReader is the read model every feature component consults to
// decide what to render.
type SessionReader interface {
	Current() Session
	Identity() (Identity, bool)
}

// SessionInvalidator is notified when a previously valid credential is
// authoritatively rejected. Implementations purge the stored pair and force
// the session to anonymous.
type SessionInvalidator interface {
	Invalidate(ctx context.Context, reason string)
}

// IdentityResolver performs the identity-lookup call against the resource
// API using whatever credential the transport currently attaches.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context) (Identity, error)
}

type TransportRequest struct {
	Method   string
	Path     string
	Headers  map[string]string
	Query    map[string]string
	Body     []byte
	Metadata map[string]any
	Timeout  time.Duration
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// TransportAdapter executes a single transport call. The gateway composes
// credential attachment around one adapter; call sites never reach the
// adapter directly.
type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
