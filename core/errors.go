package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ShelfErrorBadInput           = "SHELF_BAD_INPUT"
	ShelfErrorValidationFailed   = "SHELF_VALIDATION_FAILED"
	ShelfErrorInvalidCredentials = "SHELF_INVALID_CREDENTIALS"
	ShelfErrorSessionExpired     = "SHELF_SESSION_EXPIRED"
	ShelfErrorResetTokenInvalid  = "SHELF_RESET_TOKEN_INVALID"
	ShelfErrorNetworkFailure     = "SHELF_NETWORK_FAILURE"
	ShelfErrorNotFound           = "SHELF_NOT_FOUND"
	ShelfErrorInternal           = "SHELF_INTERNAL_ERROR"
)

// genericLoginFailure deliberately does not distinguish "user not found"
// from "wrong password", mirroring upstream non-disclosure.
const genericLoginFailure = "invalid username or password"

// InvalidCredentialsError is the login-rejection failure surfaced to the
// user as a generic message.
func InvalidCredentialsError() *goerrors.Error {
	return goerrors.New(genericLoginFailure, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ShelfErrorInvalidCredentials)
}

// SessionExpiredError marks a previously valid credential that the resource
// API now rejects. The triggering operation fails back to its caller with
// this error; the session itself is purged by the invalidator.
func SessionExpiredError(reason string) *goerrors.Error {
	message := "session expired"
	if strings.TrimSpace(reason) != "" {
		message = "session expired: " + strings.TrimSpace(reason)
	}
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ShelfErrorSessionExpired)
}

// ValidationError wraps a registration/reset rejection for user-facing
// display.
func ValidationError(message string, fields ...goerrors.FieldError) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "validation failed"
	}
	if len(fields) > 0 {
		return goerrors.NewValidation(message, fields...).
			WithCode(http.StatusBadRequest).
			WithTextCode(ShelfErrorValidationFailed)
	}
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(ShelfErrorValidationFailed)
}

// ResetTokenError marks a rejected password-reset confirmation.
func ResetTokenError() *goerrors.Error {
	return goerrors.New("invalid or expired reset token", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ShelfErrorResetTokenInvalid)
}

// NetworkError wraps a transport-level failure. Safe to retry by
// re-invoking the same operation.
func NetworkError(source error, message string) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "network request failed"
	}
	if source == nil {
		return goerrors.New(message, goerrors.CategoryExternal).
			WithCode(http.StatusBadGateway).
			WithTextCode(ShelfErrorNetworkFailure)
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(ShelfErrorNetworkFailure)
}

// BadInputError flags a locally detected malformed argument before any
// network round-trip.
func BadInputError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ShelfErrorBadInput)
}

// NotFoundError marks a lookup that matched nothing.
func NotFoundError(message string) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "resource not found"
	}
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(ShelfErrorNotFound)
}

// InternalError flags a wiring or programming failure inside the client.
func InternalError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ShelfErrorInternal)
}

// HasTextCode reports whether err carries the given shelf text code.
func HasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == textCode
}

// IsInvalidCredentials reports a rejected login exchange.
func IsInvalidCredentials(err error) bool {
	return HasTextCode(err, ShelfErrorInvalidCredentials)
}

// IsSessionExpired reports a 401-class rejection of a previously valid
// credential.
func IsSessionExpired(err error) bool {
	return HasTextCode(err, ShelfErrorSessionExpired)
}

// IsValidationFailure reports a registration/reset input rejection.
func IsValidationFailure(err error) bool {
	return HasTextCode(err, ShelfErrorValidationFailed)
}

// IsResetTokenInvalid reports a rejected password-reset confirmation.
func IsResetTokenInvalid(err error) bool {
	return HasTextCode(err, ShelfErrorResetTokenInvalid)
}

// IsNetworkFailure reports a transport-level failure.
func IsNetworkFailure(err error) bool {
	return HasTextCode(err, ShelfErrorNetworkFailure)
}

func shelfErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureShelfErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "session expired"):
		return SessionExpiredError("")
	case strings.Contains(msg, "invalid username or password"):
		return InvalidCredentialsError()
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "malformed"):
		return ensureShelfErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryBadInput).WithTextCode(ShelfErrorBadInput),
		)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureShelfErrorEnvelope(mapped)
}

func ensureShelfErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = shelfHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultShelfTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultShelfTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput:
		return ShelfErrorBadInput
	case goerrors.CategoryValidation:
		return ShelfErrorValidationFailed
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ShelfErrorSessionExpired
	case goerrors.CategoryNotFound:
		return ShelfErrorNotFound
	case goerrors.CategoryExternal:
		return ShelfErrorNetworkFailure
	default:
		return ShelfErrorInternal
	}
}

func shelfHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
