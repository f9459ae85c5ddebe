package resource

import (
	"context"
	"strings"

	"github.com/goliatone/go-shelf/core"
)

const (
	profileListPath = "profiles/"
	profileMePath   = "profiles/me/"
)

// ProfileClient reads and updates user profiles.
type ProfileClient struct {
	gateway Gateway
}

func NewProfileClient(gateway Gateway) *ProfileClient {
	return &ProfileClient{gateway: gateway}
}

// ByUsername looks up a profile by exact username.
func (c *ProfileClient) ByUsername(ctx context.Context, username string) (Profile, error) {
	if c == nil || c.gateway == nil {
		return Profile{}, core.InternalError("resource: profile client requires a gateway")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return Profile{}, core.BadInputError("resource: username is required")
	}
	var out []Profile
	if err := c.gateway.GetJSON(ctx, profileListPath, map[string]string{"username": username}, &out); err != nil {
		return Profile{}, err
	}
	if len(out) == 0 {
		return Profile{}, core.NotFoundError("resource: profile not found for " + username)
	}
	return out[0], nil
}

// Me returns the authenticated user's profile.
func (c *ProfileClient) Me(ctx context.Context) (Profile, error) {
	if c == nil || c.gateway == nil {
		return Profile{}, core.InternalError("resource: profile client requires a gateway")
	}
	var out Profile
	if err := c.gateway.GetJSON(ctx, profileMePath, nil, &out); err != nil {
		return Profile{}, err
	}
	return out, nil
}

// UpdateMe patches the authenticated user's avatar or bio.
func (c *ProfileClient) UpdateMe(ctx context.Context, update ProfileUpdate) (Profile, error) {
	if c == nil || c.gateway == nil {
		return Profile{}, core.InternalError("resource: profile client requires a gateway")
	}
	if update.AvatarURL == nil && update.Bio == nil {
		return Profile{}, core.BadInputError("resource: profile update has no fields")
	}
	var out Profile
	if err := c.gateway.PutJSON(ctx, profileMePath, update, &out); err != nil {
		return Profile{}, err
	}
	return out, nil
}
