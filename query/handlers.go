package query

import (
	"context"

	"github.com/goliatone/go-shelf/core"
	"github.com/goliatone/go-shelf/guard"
)

// AccessChecker is the guard surface the access query consumes.
type AccessChecker interface {
	Check() guard.Verdict
}

type CurrentSessionQuery struct {
	reader core.SessionReader
}

func NewCurrentSessionQuery(reader core.SessionReader) *CurrentSessionQuery {
	return &CurrentSessionQuery{reader: reader}
}

func (q *CurrentSessionQuery) Query(ctx context.Context, _ CurrentSessionMessage) (core.Session, error) {
	if q == nil || q.reader == nil {
		return core.Session{}, queryDependencyError("query: session reader is required")
	}
	return q.reader.Current(), nil
}

type CurrentIdentityQuery struct {
	reader core.SessionReader
}

func NewCurrentIdentityQuery(reader core.SessionReader) *CurrentIdentityQuery {
	return &CurrentIdentityQuery{reader: reader}
}

func (q *CurrentIdentityQuery) Query(ctx context.Context, _ CurrentIdentityMessage) (core.Identity, error) {
	if q == nil || q.reader == nil {
		return core.Identity{}, queryDependencyError("query: session reader is required")
	}
	identity, ok := q.reader.Identity()
	if !ok {
		return core.Identity{}, core.NotFoundError("query: no authenticated identity")
	}
	return identity, nil
}

type CheckAccessQuery struct {
	checker AccessChecker
}

func NewCheckAccessQuery(checker AccessChecker) *CheckAccessQuery {
	return &CheckAccessQuery{checker: checker}
}

func (q *CheckAccessQuery) Query(ctx context.Context, _ CheckAccessMessage) (guard.Verdict, error) {
	if q == nil || q.checker == nil {
		return guard.Verdict{}, queryDependencyError("query: access checker is required")
	}
	return q.checker.Check(), nil
}
