package resource

import (
	"context"
	"strings"

	"github.com/goliatone/go-shelf/core"
)

const (
	externalMovieSearchPath = "external/movies/search/"
	externalBookSearchPath  = "external/books/search/"
	externalImportPath      = "external/import/"
)

// ExternalResult is a provider hit that has not been imported yet. The id is
// the provider's identifier, not a catalog id.
type ExternalResult struct {
	ExternalID    string      `json:"external_id"`
	Source        string      `json:"source"`
	Type          ContentType `json:"type"`
	Title         string      `json:"title"`
	OriginalTitle string      `json:"original_title,omitempty"`
	Year          *int        `json:"year,omitempty"`
	PosterURL     *string     `json:"poster_url,omitempty"`
	Description   string      `json:"description,omitempty"`
}

// ExternalClient searches upstream providers and imports hits into the
// catalog.
type ExternalClient struct {
	gateway Gateway
}

func NewExternalClient(gateway Gateway) *ExternalClient {
	return &ExternalClient{gateway: gateway}
}

// SearchMovies queries the movie provider.
func (c *ExternalClient) SearchMovies(ctx context.Context, query string) ([]ExternalResult, error) {
	return c.search(ctx, externalMovieSearchPath, query)
}

// SearchBooks queries the book providers.
func (c *ExternalClient) SearchBooks(ctx context.Context, query string) ([]ExternalResult, error) {
	return c.search(ctx, externalBookSearchPath, query)
}

func (c *ExternalClient) search(ctx context.Context, path string, query string) ([]ExternalResult, error) {
	if c == nil || c.gateway == nil {
		return nil, core.InternalError("resource: external client requires a gateway")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, core.BadInputError("resource: search query is required")
	}
	var out []ExternalResult
	if err := c.gateway.GetJSON(ctx, path, map[string]string{"q": query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Import materializes a provider hit as a catalog item. Importing an already
// known pair returns the existing item.
func (c *ExternalClient) Import(ctx context.Context, source string, externalID string) (Content, error) {
	if c == nil || c.gateway == nil {
		return Content{}, core.InternalError("resource: external client requires a gateway")
	}
	source = strings.TrimSpace(source)
	externalID = strings.TrimSpace(externalID)
	if source == "" || externalID == "" {
		return Content{}, core.BadInputError("resource: import requires a source and an external id")
	}
	payload := map[string]string{
		"source":      source,
		"external_id": externalID,
	}
	var out Content
	if err := c.gateway.PostJSON(ctx, externalImportPath, payload, &out); err != nil {
		return Content{}, err
	}
	return out, nil
}
