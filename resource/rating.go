package resource

import (
	"context"

	"github.com/goliatone/go-shelf/core"
)

const ratingsPath = "ratings/"

// RatingClient records scores on catalog items.
type RatingClient struct {
	gateway Gateway
}

func NewRatingClient(gateway Gateway) *RatingClient {
	return &RatingClient{gateway: gateway}
}

// Rate assigns a 1..10 score to a content item. Re-rating the same item
// replaces the previous score.
func (c *RatingClient) Rate(ctx context.Context, contentID int64, score int) (Rating, error) {
	if c == nil || c.gateway == nil {
		return Rating{}, core.InternalError("resource: rating client requires a gateway")
	}
	if contentID <= 0 {
		return Rating{}, core.BadInputError("resource: content id must be positive")
	}
	if score < 1 || score > 10 {
		return Rating{}, core.BadInputError("resource: score must be between 1 and 10")
	}
	payload := map[string]any{
		"content_id": contentID,
		"score":      score,
	}
	var out Rating
	if err := c.gateway.PostJSON(ctx, ratingsPath, payload, &out); err != nil {
		return Rating{}, err
	}
	return out, nil
}
