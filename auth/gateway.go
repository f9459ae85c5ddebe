// Package auth implements the credential lifecycle against the resource
// API: register, login, logout, and the two-step password reset. It is the
// only component allowed to mutate the credential store and the session as
// a consequence of a user-initiated action.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-shelf/core"
	"github.com/goliatone/go-shelf/session"
	"github.com/goliatone/go-shelf/transport"
)

const (
	registerPath     = "auth/register/"
	tokenPath        = "auth/token/"
	mePath           = "auth/me/"
	resetRequestPath = "auth/password-reset/request/"
	resetConfirmPath = "auth/password-reset/confirm/"
)

type GatewayConfig struct {
	Transport   *transport.Gateway
	Credentials core.CredentialStore
	Session     *session.Manager
	Logger      core.Logger
}

type Gateway struct {
	transport   *transport.Gateway
	credentials core.CredentialStore
	session     *session.Manager
	logger      core.Logger
}

func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if cfg.Transport == nil {
		return nil, core.InternalError("auth: gateway requires a transport gateway")
	}
	if cfg.Credentials == nil {
		return nil, core.InternalError("auth: gateway requires a credential store")
	}
	if cfg.Session == nil {
		return nil, core.InternalError("auth: gateway requires a session manager")
	}
	return &Gateway{
		transport:   cfg.Transport,
		credentials: cfg.Credentials,
		session:     cfg.Session,
		logger:      glog.Ensure(cfg.Logger),
	}, nil
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account on the resource API. It does not establish a
// session; callers redirect to login. Validation beyond non-empty checks
// is the server's job and its rejection is surfaced as-is.
func (g *Gateway) Register(ctx context.Context, username string, email string, password string) (core.Account, error) {
	if g == nil || g.transport == nil {
		return core.Account{}, core.InternalError("auth: gateway is not configured")
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return core.Account{}, core.BadInputError("auth: username is required")
	}
	if email == "" {
		return core.Account{}, core.BadInputError("auth: email is required")
	}
	if password == "" {
		return core.Account{}, core.BadInputError("auth: password is required")
	}

	res, err := g.postAnonymous(ctx, registerPath, registerPayload{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return core.Account{}, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		if res.StatusCode >= 400 && res.StatusCode < 500 {
			return core.Account{}, core.ValidationError(errorDetail(res.Body, "registration rejected"))
		}
		return core.Account{}, core.NetworkError(nil, "registration failed upstream")
	}

	var account core.Account
	if err := json.Unmarshal(res.Body, &account); err != nil {
		return core.Account{}, core.NetworkError(err, "decode registration response")
	}
	return account, nil
}

type tokenPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair, persists the pair, then
// resolves the identity and commits the authenticated session. A rejected
// exchange leaves both the store and the session exactly as they were.
func (g *Gateway) Login(ctx context.Context, identifier string, password string) (core.Identity, error) {
	if g == nil || g.transport == nil {
		return core.Identity{}, core.InternalError("auth: gateway is not configured")
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return core.Identity{}, core.BadInputError("auth: identifier is required")
	}
	if password == "" {
		return core.Identity{}, core.BadInputError("auth: password is required")
	}

	res, err := g.postAnonymous(ctx, tokenPath, tokenPayload{
		Username: identifier,
		Password: password,
	})
	if err != nil {
		return core.Identity{}, err
	}
	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return core.Identity{}, core.InvalidCredentialsError()
	case res.StatusCode < 200 || res.StatusCode > 299:
		return core.Identity{}, core.NetworkError(nil, "token exchange failed upstream")
	}

	var tokens tokenResponse
	if err := json.Unmarshal(res.Body, &tokens); err != nil {
		return core.Identity{}, core.NetworkError(err, "decode token response")
	}
	cred := core.Credential{Access: tokens.Access, Refresh: tokens.Refresh}
	if !cred.Valid() {
		return core.Identity{}, core.NetworkError(nil, "token exchange returned an empty credential")
	}

	if err := g.credentials.Save(ctx, cred); err != nil {
		return core.Identity{}, err
	}

	identity, err := g.ResolveIdentity(ctx)
	if err != nil {
		// The untouched-store guarantee covers only a rejected exchange;
		// past this point the pair is persisted. A 401 here already
		// purged it through the gateway, and any other failure keeps it
		// for the next bootstrap to settle.
		return core.Identity{}, err
	}

	g.session.Establish(identity)
	g.logger.Info("login succeeded", "username", identity.Username)
	return identity, nil
}

// Logout is purely local and irreversible: purge the pair, force the
// session anonymous, no network round-trip.
func (g *Gateway) Logout(ctx context.Context) error {
	if g == nil || g.session == nil {
		return core.InternalError("auth: gateway is not configured")
	}
	g.session.Invalidate(ctx, "logout")
	return nil
}

type resetRequestPayload struct {
	Identifier string `json:"identifier"`
}

// RequestPasswordReset asks the resource API to start a reset for the
// given username or email. Whether the identifier exists is not disclosed
// beyond what the server itself reveals.
func (g *Gateway) RequestPasswordReset(ctx context.Context, identifier string) (core.ResetReceipt, error) {
	if g == nil || g.transport == nil {
		return core.ResetReceipt{}, core.InternalError("auth: gateway is not configured")
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return core.ResetReceipt{}, core.BadInputError("auth: identifier is required")
	}

	res, err := g.postAnonymous(ctx, resetRequestPath, resetRequestPayload{Identifier: identifier})
	if err != nil {
		return core.ResetReceipt{}, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		if res.StatusCode >= 400 && res.StatusCode < 500 {
			return core.ResetReceipt{}, core.ValidationError(errorDetail(res.Body, "reset request rejected"))
		}
		return core.ResetReceipt{}, core.NetworkError(nil, "reset request failed upstream")
	}

	var receipt core.ResetReceipt
	if err := json.Unmarshal(res.Body, &receipt); err != nil {
		return core.ResetReceipt{}, core.NetworkError(err, "decode reset response")
	}
	return receipt, nil
}

type resetConfirmPayload struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ConfirmPasswordReset completes a reset with the token from the request
// step. Success does not log the user in; callers redirect to login.
func (g *Gateway) ConfirmPasswordReset(ctx context.Context, token string, newPassword string) error {
	if g == nil || g.transport == nil {
		return core.InternalError("auth: gateway is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return core.BadInputError("auth: reset token is required")
	}
	if newPassword == "" {
		return core.BadInputError("auth: new password is required")
	}

	res, err := g.postAnonymous(ctx, resetConfirmPath, resetConfirmPayload{
		Token:       token,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	switch {
	case res.StatusCode == http.StatusBadRequest:
		return core.ResetTokenError()
	case res.StatusCode < 200 || res.StatusCode > 299:
		return core.NetworkError(nil, "reset confirmation failed upstream")
	}
	return nil
}

// ResolveIdentity performs the identity lookup with whatever credential
// the transport currently attaches. The session manager uses it during
// bootstrap.
func (g *Gateway) ResolveIdentity(ctx context.Context) (core.Identity, error) {
	if g == nil || g.transport == nil {
		return core.Identity{}, core.InternalError("auth: gateway is not configured")
	}
	var identity core.Identity
	if err := g.transport.GetJSON(ctx, mePath, nil, &identity); err != nil {
		return core.Identity{}, err
	}
	return identity, nil
}

func (g *Gateway) postAnonymous(ctx context.Context, path string, payload any) (core.TransportResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return core.TransportResponse{}, core.BadInputError("auth: encode request body: " + err.Error())
	}
	return g.transport.Do(ctx, core.TransportRequest{
		Method: http.MethodPost,
		Path:   path,
		Headers: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		},
		Body: body,
		Metadata: map[string]any{
			transport.MetadataAnonymous: true,
		},
	})
}

func errorDetail(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if detail, ok := payload["detail"].(string); ok && strings.TrimSpace(detail) != "" {
		return strings.TrimSpace(detail)
	}
	parts := make([]string, 0, len(payload))
	for field, value := range payload {
		switch typed := value.(type) {
		case string:
			parts = append(parts, field+": "+typed)
		case []any:
			for _, item := range typed {
				if s, ok := item.(string); ok {
					parts = append(parts, field+": "+s)
				}
			}
		}
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, "; ")
}

var _ core.IdentityResolver = (*Gateway)(nil)
