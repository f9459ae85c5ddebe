package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-shelf/core"
)

// CredentialService is the mutating surface the auth commands delegate to.
type CredentialService interface {
	Register(ctx context.Context, username string, email string, password string) (core.Account, error)
	Login(ctx context.Context, identifier string, password string) (core.Identity, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, identifier string) (core.ResetReceipt, error)
	ConfirmPasswordReset(ctx context.Context, token string, newPassword string) error
}

// SessionService is the bootstrap surface the session command delegates to.
type SessionService interface {
	Bootstrap(ctx context.Context) (core.Session, error)
}

type RegisterCommand struct {
	service CredentialService
}

func NewRegisterCommand(service CredentialService) *RegisterCommand {
	return &RegisterCommand{service: service}
}

func (c *RegisterCommand) Execute(ctx context.Context, msg RegisterMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: register service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: register message invalid")
	}
	out, err := c.service.Register(ctx, msg.Username, msg.Email, msg.Password)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type LoginCommand struct {
	service CredentialService
}

func NewLoginCommand(service CredentialService) *LoginCommand {
	return &LoginCommand{service: service}
}

func (c *LoginCommand) Execute(ctx context.Context, msg LoginMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: login service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: login message invalid")
	}
	out, err := c.service.Login(ctx, msg.Identifier, msg.Password)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type LogoutCommand struct {
	service CredentialService
}

func NewLogoutCommand(service CredentialService) *LogoutCommand {
	return &LogoutCommand{service: service}
}

func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: logout service is required")
	}
	return c.service.Logout(ctx)
}

type RequestPasswordResetCommand struct {
	service CredentialService
}

func NewRequestPasswordResetCommand(service CredentialService) *RequestPasswordResetCommand {
	return &RequestPasswordResetCommand{service: service}
}

func (c *RequestPasswordResetCommand) Execute(ctx context.Context, msg RequestPasswordResetMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: password reset service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: password reset message invalid")
	}
	out, err := c.service.RequestPasswordReset(ctx, msg.Identifier)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ConfirmPasswordResetCommand struct {
	service CredentialService
}

func NewConfirmPasswordResetCommand(service CredentialService) *ConfirmPasswordResetCommand {
	return &ConfirmPasswordResetCommand{service: service}
}

func (c *ConfirmPasswordResetCommand) Execute(ctx context.Context, msg ConfirmPasswordResetMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: password reset service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: password reset message invalid")
	}
	return c.service.ConfirmPasswordReset(ctx, msg.Token, msg.NewPassword)
}

type BootstrapCommand struct {
	service SessionService
}

func NewBootstrapCommand(service SessionService) *BootstrapCommand {
	return &BootstrapCommand{service: service}
}

func (c *BootstrapCommand) Execute(ctx context.Context, _ BootstrapMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	out, err := c.service.Bootstrap(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
