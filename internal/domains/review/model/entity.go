package model

import "time"

// Review is a user-authored critique of a media item, tagged with genres.
// IsBlocked is the reversible moderation state; DeletedAt is the separate
// administrative soft delete and is never touched by moderation.
type Review struct {
	ID          int64      `json:"id"`
	MediaID     int64      `json:"media_fk"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PlatformID  int64      `json:"platform_fk"`
	UserID      int64      `json:"user_fk"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	IsBlocked   bool       `json:"is_blocked"`
}

// ReviewGenre is the junction row tying a review to one genre. The full set
// for a review is replaced atomically on every create/update.
type ReviewGenre struct {
	ReviewID int64 `json:"review_fk"`
	GenreID  int64 `json:"genre_fk"`
}

// ReviewAction is a user's approve/disapprove gesture on a review.
type ReviewAction struct {
	UserID    int64     `json:"user_fk"`
	ReviewID  int64     `json:"review_fk"`
	Gesture   bool      `json:"review_gesture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewDetail is the joined projection returned by the query engine:
// the review plus author name, media name and genre names.
type ReviewDetail struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MediaID     int64     `json:"media_fk"`
	PlatformID  int64     `json:"platform_fk"`
	UserID      int64     `json:"user_fk"`
	AuthorName  string    `json:"userName"`
	MediaName   string    `json:"mediaName"`
	GenreNames  []string  `json:"genreNames"`
	IsBlocked   bool      `json:"is_blocked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchRow is one row of the raw aggregate title search: genres arrive as a
// single comma-joined string straight from the query.
type SearchRow struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserName    string `json:"userName"`
	MediaName   string `json:"mediaName"`
	GenreNames  string `json:"genreNames"`
}
