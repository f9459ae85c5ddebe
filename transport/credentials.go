package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-shelf/core"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// MetadataAnonymous marks a request that must go out without any stored
// credential: the login token exchange, registration, and password-reset
// calls. A 401 on such a call speaks about the submitted input, not about
// the current session.
const MetadataAnonymous = "anonymous"

// CredentialDecorator is the single chokepoint that keeps outbound
// authorization consistent: it reloads the credential store on every call,
// attaches a bearer header when a well-formed token exists, and strips any
// authorization header a call site may have set when no credential is
// stored. A 401 on a call that carried a bearer token is treated as
// authoritative credential rejection: the invalidator purges the session
// and the call fails as session-expired. A 401 on a bare call is left for
// the caller to interpret (a rejected login is not an expired session).
type CredentialDecorator struct {
	next        core.TransportAdapter
	credentials core.CredentialStore
	invalidator core.SessionInvalidator
}

// WithCredentials composes the credential decoration once around next.
func WithCredentials(
	next core.TransportAdapter,
	credentials core.CredentialStore,
	invalidator core.SessionInvalidator,
) *CredentialDecorator {
	return &CredentialDecorator{
		next:        next,
		credentials: credentials,
		invalidator: invalidator,
	}
}

func (d *CredentialDecorator) Kind() string {
	if d == nil || d.next == nil {
		return ""
	}
	return d.next.Kind()
}

func (d *CredentialDecorator) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if d == nil || d.next == nil {
		return core.TransportResponse{}, core.InternalError("transport: credential decorator requires a transport adapter")
	}
	if d.credentials == nil {
		return core.TransportResponse{}, core.InternalError("transport: credential decorator requires a credential store")
	}

	headers := stripAuthorization(req.Headers)
	if _, ok := headers[requestIDHeader]; !ok {
		headers[requestIDHeader] = uuid.NewString()
	}

	attached := false
	if !isAnonymous(req.Metadata) {
		cred, ok, err := d.credentials.Load(ctx)
		if err != nil {
			return core.TransportResponse{}, err
		}
		if ok && cred.Valid() {
			headers[authorizationHeader] = bearerPrefix + strings.TrimSpace(cred.Access)
			attached = true
		}
	}
	req.Headers = headers

	res, err := d.next.Do(ctx, req)
	if err != nil {
		return res, err
	}

	if res.StatusCode == http.StatusUnauthorized && attached {
		if d.invalidator != nil {
			d.invalidator.Invalidate(ctx, "credential rejected by resource api")
		}
		return res, core.SessionExpiredError("")
	}
	return res, nil
}

func isAnonymous(metadata map[string]any) bool {
	if len(metadata) == 0 {
		return false
	}
	anonymous, ok := metadata[MetadataAnonymous].(bool)
	return ok && anonymous
}

// stripAuthorization copies headers without any authorization key, so a
// stale header from a previous call can never leak forward.
func stripAuthorization(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for key, value := range headers {
		if strings.EqualFold(strings.TrimSpace(key), authorizationHeader) {
			continue
		}
		out[key] = value
	}
	return out
}

var _ core.TransportAdapter = (*CredentialDecorator)(nil)
