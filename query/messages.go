package query

const (
	TypeCurrentSession  = "shelf.query.session.current"
	TypeCurrentIdentity = "shelf.query.identity.current"
	TypeCheckAccess     = "shelf.query.access.check"
)

type CurrentSessionMessage struct{}

func (CurrentSessionMessage) Type() string { return TypeCurrentSession }

type CurrentIdentityMessage struct{}

func (CurrentIdentityMessage) Type() string { return TypeCurrentIdentity }

type CheckAccessMessage struct{}

func (CheckAccessMessage) Type() string { return TypeCheckAccess }
