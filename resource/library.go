package resource

import (
	"context"
	"strconv"

	"github.com/goliatone/go-shelf/core"
)

const libraryEntriesPath = "library-entries/"

// LibraryClient manages the caller's library shelves.
type LibraryClient struct {
	gateway Gateway
}

func NewLibraryClient(gateway Gateway) *LibraryClient {
	return &LibraryClient{gateway: gateway}
}

// List returns the authenticated user's library entries.
func (c *LibraryClient) List(ctx context.Context) ([]LibraryEntry, error) {
	return c.list(ctx, nil)
}

// ListForUser returns another user's library entries.
func (c *LibraryClient) ListForUser(ctx context.Context, userID int64) ([]LibraryEntry, error) {
	if userID <= 0 {
		return nil, core.BadInputError("resource: user id must be positive")
	}
	return c.list(ctx, map[string]string{"user_id": strconv.FormatInt(userID, 10)})
}

func (c *LibraryClient) list(ctx context.Context, params map[string]string) ([]LibraryEntry, error) {
	if c == nil || c.gateway == nil {
		return nil, core.InternalError("resource: library client requires a gateway")
	}
	var out []LibraryEntry
	if err := c.gateway.GetJSON(ctx, libraryEntriesPath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Add places a content item on one of the caller's shelves.
func (c *LibraryClient) Add(ctx context.Context, contentID int64, status LibraryStatus) (LibraryEntry, error) {
	if c == nil || c.gateway == nil {
		return LibraryEntry{}, core.InternalError("resource: library client requires a gateway")
	}
	if contentID <= 0 {
		return LibraryEntry{}, core.BadInputError("resource: content id must be positive")
	}
	switch status {
	case StatusWatched, StatusWatchlist, StatusRead, StatusToRead:
	default:
		return LibraryEntry{}, core.BadInputError("resource: unknown library status " + strconv.Quote(string(status)))
	}
	payload := map[string]any{
		"content_id": contentID,
		"status":     status,
	}
	var out LibraryEntry
	if err := c.gateway.PostJSON(ctx, libraryEntriesPath, payload, &out); err != nil {
		return LibraryEntry{}, err
	}
	return out, nil
}
