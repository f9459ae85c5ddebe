// Package gocommand bridges the shelf command and query handlers to the
// go-command dispatcher so embedding hosts can drive the client through
// message dispatch instead of direct calls.
package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	shelfcommand "github.com/goliatone/go-shelf/command"
	"github.com/goliatone/go-shelf/core"
	shelfquery "github.com/goliatone/go-shelf/query"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

// SubscribeAuthCommands wires the full auth command set for the given
// services. The returned subscriptions stay active until unsubscribed.
func SubscribeAuthCommands(
	credentials shelfcommand.CredentialService,
	sessions shelfcommand.SessionService,
	runnerOpts ...runner.Option,
) ([]commanddispatcher.Subscription, error) {
	if credentials == nil {
		return nil, fmt.Errorf("gocommand: credential service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("gocommand: session service is required")
	}
	subs := []commanddispatcher.Subscription{
		SubscribeCommand(shelfcommand.NewRegisterCommand(credentials), runnerOpts...),
		SubscribeCommand(shelfcommand.NewLoginCommand(credentials), runnerOpts...),
		SubscribeCommand(shelfcommand.NewLogoutCommand(credentials), runnerOpts...),
		SubscribeCommand(shelfcommand.NewRequestPasswordResetCommand(credentials), runnerOpts...),
		SubscribeCommand(shelfcommand.NewConfirmPasswordResetCommand(credentials), runnerOpts...),
		SubscribeCommand(shelfcommand.NewBootstrapCommand(sessions), runnerOpts...),
	}
	return subs, nil
}

// SubscribeSessionQueries wires the read-side handlers.
func SubscribeSessionQueries(
	reader core.SessionReader,
	checker shelfquery.AccessChecker,
	runnerOpts ...runner.Option,
) ([]commanddispatcher.Subscription, error) {
	if reader == nil {
		return nil, fmt.Errorf("gocommand: session reader is required")
	}
	subs := []commanddispatcher.Subscription{
		SubscribeQuery(shelfquery.NewCurrentSessionQuery(reader), runnerOpts...),
		SubscribeQuery(shelfquery.NewCurrentIdentityQuery(reader), runnerOpts...),
	}
	if checker != nil {
		subs = append(subs, SubscribeQuery(shelfquery.NewCheckAccessQuery(checker), runnerOpts...))
	}
	return subs, nil
}

// Unsubscribe releases every subscription in the slice; nil entries are
// skipped.
func Unsubscribe(subs []commanddispatcher.Subscription) {
	for _, sub := range subs {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}
