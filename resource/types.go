package resource

import "context"

// Gateway is the JSON surface the resource clients consume. The transport
// gateway satisfies it.
type Gateway interface {
	GetJSON(ctx context.Context, path string, query map[string]string, out any) error
	PostJSON(ctx context.Context, path string, in any, out any) error
	PutJSON(ctx context.Context, path string, in any, out any) error
	Delete(ctx context.Context, path string) error
}

// ContentType narrows catalog searches to a single medium.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeBook  ContentType = "book"
)

// Content is a catalog item, either imported from an external source or
// already tracked by the service.
type Content struct {
	ID            int64       `json:"id"`
	Type          ContentType `json:"type"`
	Source        string      `json:"source"`
	ExternalID    string      `json:"external_id"`
	Title         string      `json:"title"`
	OriginalTitle string      `json:"original_title,omitempty"`
	Year          *int        `json:"year,omitempty"`
	PosterURL     *string     `json:"poster_url,omitempty"`
	Description   string      `json:"description,omitempty"`
	PageCount     *int        `json:"page_count,omitempty"`
	RuntimeMin    *int        `json:"runtime_minutes,omitempty"`
	AverageRating *float64    `json:"average_rating,omitempty"`
	RatingCount   *int        `json:"rating_count,omitempty"`
}

// LibraryStatus is the shelf a library entry sits on.
type LibraryStatus string

const (
	StatusWatched   LibraryStatus = "watched"
	StatusWatchlist LibraryStatus = "watchlist"
	StatusRead      LibraryStatus = "read"
	StatusToRead    LibraryStatus = "to_read"
)

// LibraryEntry ties a content item to a user's library with a status.
type LibraryEntry struct {
	ID        int64         `json:"id"`
	Status    LibraryStatus `json:"status"`
	CreatedAt string        `json:"created_at"`
	Content   Content       `json:"content"`
}

// Review is a free-text review on a content item.
type Review struct {
	ID        int64  `json:"id"`
	Content   int64  `json:"content"`
	User      int64  `json:"user"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	IsOwner   bool   `json:"is_owner"`
}

// Rating is a numeric score a user assigned to a content item.
type Rating struct {
	ID        int64 `json:"id"`
	ContentID int64 `json:"content_id"`
	Score     int   `json:"score"`
}

// ActivityActor is the condensed user record embedded in feed items.
type ActivityActor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Activity is a single feed item: a rating, review, or library change.
type Activity struct {
	ID           int64         `json:"id"`
	User         ActivityActor `json:"user"`
	Content      *Content      `json:"content"`
	ActivityType string        `json:"activity_type"`
	Rating       *int          `json:"rating"`
	Review       *int64        `json:"review"`
	List         *int64        `json:"list"`
	CreatedAt    string        `json:"created_at"`
}

// Profile is a user's public profile with follow counters.
type Profile struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	Username       string `json:"username"`
	AvatarURL      string `json:"avatar_url"`
	Bio            string `json:"bio"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	IsMe           bool   `json:"is_me"`
	IsFollowing    bool   `json:"is_following"`
	FollowID       *int64 `json:"follow_id"`
}

// ProfileUpdate carries the mutable profile fields; nil fields are left
// untouched server-side.
type ProfileUpdate struct {
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}
