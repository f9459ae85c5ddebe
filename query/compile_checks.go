package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-shelf/core"
	"github.com/goliatone/go-shelf/guard"
)

var (
	_ gocmd.Querier[CurrentSessionMessage, core.Session]   = (*CurrentSessionQuery)(nil)
	_ gocmd.Querier[CurrentIdentityMessage, core.Identity] = (*CurrentIdentityQuery)(nil)
	_ gocmd.Querier[CheckAccessMessage, guard.Verdict]     = (*CheckAccessQuery)(nil)
)
