package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-shelf/core"
)

const (
	contentListPath = "contents/"
	contentItemPath = "contents/%d/"
)

// ContentClient reads the catalog.
type ContentClient struct {
	gateway Gateway
}

func NewContentClient(gateway Gateway) *ContentClient {
	return &ContentClient{gateway: gateway}
}

// Search queries the catalog. An empty query lists everything; contentType
// narrows the result set when it names a known medium.
func (c *ContentClient) Search(ctx context.Context, query string, contentType ContentType) ([]Content, error) {
	if c == nil || c.gateway == nil {
		return nil, core.InternalError("resource: content client requires a gateway")
	}
	params := map[string]string{}
	if q := strings.TrimSpace(query); q != "" {
		params["q"] = q
	}
	if contentType == ContentTypeMovie || contentType == ContentTypeBook {
		params["type"] = string(contentType)
	}
	var out []Content
	if err := c.gateway.GetJSON(ctx, contentListPath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single catalog item by id.
func (c *ContentClient) Get(ctx context.Context, id int64) (Content, error) {
	if c == nil || c.gateway == nil {
		return Content{}, core.InternalError("resource: content client requires a gateway")
	}
	if id <= 0 {
		return Content{}, core.BadInputError("resource: content id must be positive")
	}
	var out Content
	if err := c.gateway.GetJSON(ctx, fmt.Sprintf(contentItemPath, id), nil, &out); err != nil {
		return Content{}, err
	}
	return out, nil
}
