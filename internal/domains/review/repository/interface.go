package repository

import (
	"context"

	"mediareview-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

type ReviewRepository interface {
	// ========================================
	// WRITE Operations (transactional)
	// ========================================

	// CreateWithGenres inserts a review and its genre junction rows in a
	// single transaction and returns the new review id. Either everything
	// lands or nothing does.
	CreateWithGenres(ctx context.Context, review *model.Review, genreIDs []int64) (int64, error)

	// UpdateWithGenres rewrites title and description and replaces the full
	// genre set in a single transaction. Returns ErrReviewNotFound when the
	// review does not exist.
	UpdateWithGenres(ctx context.Context, id int64, title, description string, genreIDs []int64) error

	// ========================================
	// READ Operations
	// ========================================

	// GetDetailByID returns the joined projection for one review.
	// Returns ErrReviewNotFound when no row matches.
	GetDetailByID(ctx context.Context, id int64) (*model.ReviewDetail, error)

	// ListActive lists up to limit non-blocked reviews in insertion order.
	ListActive(ctx context.Context, limit int) ([]*model.ReviewDetail, error)

	// ListBlocked lists every blocked review.
	ListBlocked(ctx context.Context) ([]*model.ReviewDetail, error)

	// SearchByTitle runs the aggregate title search. Genre names come back
	// comma-joined per row.
	SearchByTitle(ctx context.Context, fragment string) ([]*model.SearchRow, error)

	// ========================================
	// MODERATION Operations
	// ========================================

	// GetBlockState returns the current is_blocked flag.
	// Returns ErrReviewNotFound when the review does not exist.
	GetBlockState(ctx context.Context, id int64) (bool, error)

	// SetBlocked flips the moderation flag. Returns ErrReviewNotFound when
	// the review does not exist.
	SetBlocked(ctx context.Context, id int64, blocked bool) error

	// ========================================
	// GESTURES & AUDIT
	// ========================================

	// UpsertGesture records or replaces a user's gesture on a review.
	UpsertGesture(ctx context.Context, action *model.ReviewAction) error

	// LogModerationEvent appends an audit row for a consumed moderation
	// event. Called by the worker only.
	LogModerationEvent(ctx context.Context, reviewID int64, isBlocked bool) error
}
