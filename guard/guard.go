// Package guard provides the declarative access check protected views
// consult before rendering. It shapes client UX only; authorization is
// enforced server-side.
package guard

import (
	"strings"

	"github.com/goliatone/go-shelf/core"
)

type Decision string

const (
	// DecisionPending means the session has not settled yet; render a
	// neutral loading state, never an implicit redirect.
	DecisionPending Decision = "pending"
	// DecisionRedirect means the session is anonymous; send the user to
	// the login entry point.
	DecisionRedirect Decision = "redirect"
	// DecisionAllow means the session is authenticated; render the
	// protected view with the resolved identity.
	DecisionAllow Decision = "allow"
)

type Verdict struct {
	Decision   Decision
	Identity   core.Identity
	RedirectTo string
}

type Guard struct {
	session   core.SessionReader
	loginPath string
}

func New(session core.SessionReader, loginPath string) (*Guard, error) {
	if session == nil {
		return nil, core.InternalError("guard: session reader is required")
	}
	loginPath = strings.TrimSpace(loginPath)
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Guard{session: session, loginPath: loginPath}, nil
}

// Check maps the current session onto a rendering decision.
func (g *Guard) Check() Verdict {
	if g == nil || g.session == nil {
		return Verdict{Decision: DecisionPending}
	}
	state := g.session.Current()
	switch {
	case !state.Settled():
		return Verdict{Decision: DecisionPending}
	case state.Authenticated():
		return Verdict{Decision: DecisionAllow, Identity: state.Identity}
	default:
		return Verdict{Decision: DecisionRedirect, RedirectTo: g.loginPath}
	}
}
