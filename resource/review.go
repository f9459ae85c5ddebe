package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-shelf/core"
)

const (
	reviewListPath = "reviews/"
	reviewItemPath = "reviews/%d/"
)

// ReviewClient manages reviews on catalog items.
type ReviewClient struct {
	gateway Gateway
}

func NewReviewClient(gateway Gateway) *ReviewClient {
	return &ReviewClient{gateway: gateway}
}

// ListByContent returns every review on a content item.
func (c *ReviewClient) ListByContent(ctx context.Context, contentID int64) ([]Review, error) {
	if c == nil || c.gateway == nil {
		return nil, core.InternalError("resource: review client requires a gateway")
	}
	if contentID <= 0 {
		return nil, core.BadInputError("resource: content id must be positive")
	}
	params := map[string]string{"content": strconv.FormatInt(contentID, 10)}
	var out []Review
	if err := c.gateway.GetJSON(ctx, reviewListPath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts a new review for a content item.
func (c *ReviewClient) Create(ctx context.Context, contentID int64, text string) (Review, error) {
	if c == nil || c.gateway == nil {
		return Review{}, core.InternalError("resource: review client requires a gateway")
	}
	if contentID <= 0 {
		return Review{}, core.BadInputError("resource: content id must be positive")
	}
	if strings.TrimSpace(text) == "" {
		return Review{}, core.BadInputError("resource: review text is required")
	}
	payload := map[string]any{
		"content": contentID,
		"text":    text,
	}
	var out Review
	if err := c.gateway.PostJSON(ctx, reviewListPath, payload, &out); err != nil {
		return Review{}, err
	}
	return out, nil
}

// Update replaces the text of an existing review owned by the caller.
func (c *ReviewClient) Update(ctx context.Context, reviewID int64, text string) (Review, error) {
	if c == nil || c.gateway == nil {
		return Review{}, core.InternalError("resource: review client requires a gateway")
	}
	if reviewID <= 0 {
		return Review{}, core.BadInputError("resource: review id must be positive")
	}
	if strings.TrimSpace(text) == "" {
		return Review{}, core.BadInputError("resource: review text is required")
	}
	var out Review
	if err := c.gateway.PutJSON(ctx, fmt.Sprintf(reviewItemPath, reviewID), map[string]string{"text": text}, &out); err != nil {
		return Review{}, err
	}
	return out, nil
}

// Delete removes a review owned by the caller.
func (c *ReviewClient) Delete(ctx context.Context, reviewID int64) error {
	if c == nil || c.gateway == nil {
		return core.InternalError("resource: review client requires a gateway")
	}
	if reviewID <= 0 {
		return core.BadInputError("resource: review id must be positive")
	}
	return c.gateway.Delete(ctx, fmt.Sprintf(reviewItemPath, reviewID))
}
