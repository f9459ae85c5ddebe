package resource

import (
	"context"
	"strconv"

	"github.com/goliatone/go-shelf/core"
)

const activitiesPath = "activities/"

// ActivityClient reads the social feed.
type ActivityClient struct {
	gateway Gateway
}

func NewActivityClient(gateway Gateway) *ActivityClient {
	return &ActivityClient{gateway: gateway}
}

// Feed returns the activity feed visible to the caller.
func (c *ActivityClient) Feed(ctx context.Context) ([]Activity, error) {
	return c.list(ctx, nil)
}

// FeedForUser returns a single user's activity.
func (c *ActivityClient) FeedForUser(ctx context.Context, userID int64) ([]Activity, error) {
	if userID <= 0 {
		return nil, core.BadInputError("resource: user id must be positive")
	}
	return c.list(ctx, map[string]string{"user_id": strconv.FormatInt(userID, 10)})
}

func (c *ActivityClient) list(ctx context.Context, params map[string]string) ([]Activity, error) {
	if c == nil || c.gateway == nil {
		return nil, core.InternalError("resource: activity client requires a gateway")
	}
	var out []Activity
	if err := c.gateway.GetJSON(ctx, activitiesPath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
