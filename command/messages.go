package command

import (
	"fmt"
	"strings"
)

const (
	TypeRegister             = "shelf.command.auth.register"
	TypeLogin                = "shelf.command.auth.login"
	TypeLogout               = "shelf.command.auth.logout"
	TypeRequestPasswordReset = "shelf.command.auth.password_reset.request"
	TypeConfirmPasswordReset = "shelf.command.auth.password_reset.confirm"
	TypeBootstrap            = "shelf.command.session.bootstrap"
)

type RegisterMessage struct {
	Username string
	Email    string
	Password string
}

func (RegisterMessage) Type() string { return TypeRegister }

func (m RegisterMessage) Validate() error {
	if strings.TrimSpace(m.Username) == "" {
		return fmt.Errorf("command: username is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	if m.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type LoginMessage struct {
	Identifier string
	Password   string
}

func (LoginMessage) Type() string { return TypeLogin }

func (m LoginMessage) Validate() error {
	if strings.TrimSpace(m.Identifier) == "" {
		return fmt.Errorf("command: identifier is required")
	}
	if m.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type LogoutMessage struct{}

func (LogoutMessage) Type() string { return TypeLogout }

type RequestPasswordResetMessage struct {
	Identifier string
}

func (RequestPasswordResetMessage) Type() string { return TypeRequestPasswordReset }

func (m RequestPasswordResetMessage) Validate() error {
	if strings.TrimSpace(m.Identifier) == "" {
		return fmt.Errorf("command: identifier is required")
	}
	return nil
}

type ConfirmPasswordResetMessage struct {
	Token       string
	NewPassword string
}

func (ConfirmPasswordResetMessage) Type() string { return TypeConfirmPasswordReset }

func (m ConfirmPasswordResetMessage) Validate() error {
	if strings.TrimSpace(m.Token) == "" {
		return fmt.Errorf("command: reset token is required")
	}
	if m.NewPassword == "" {
		return fmt.Errorf("command: new password is required")
	}
	return nil
}

type BootstrapMessage struct{}

func (BootstrapMessage) Type() string { return TypeBootstrap }
