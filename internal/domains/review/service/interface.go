package service

import (
	"context"

	"mediareview-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// WRITE OPERATIONS
	// ========================================

	// CreateReview validates and persists a review plus its genre set in one
	// transaction.
	CreateReview(ctx context.Context, req model.CreateReviewRequest) (*model.CreateReviewResponse, error)

	// UpdateReview rewrites title, description and the genre set of an
	// existing review. Validation failures leave the stored row untouched.
	UpdateReview(ctx context.Context, id int64, req model.UpdateReviewRequest) error

	// ========================================
	// READ OPERATIONS
	// ========================================

	// GetReview returns the joined projection, or (nil, nil) when the review
	// does not exist. Absence is an ordinary answer here, not an error.
	GetReview(ctx context.Context, id int64) (*model.ReviewDetail, error)

	// ListReviews lists up to limit non-blocked reviews. limit 0 returns an
	// empty list without touching storage.
	ListReviews(ctx context.Context, limit int) ([]*model.ReviewDetail, error)

	// SearchReviewsByTitle runs the aggregate title search.
	SearchReviewsByTitle(ctx context.Context, fragment string) ([]*model.SearchRow, error)

	// ListBlockedReviews lists every blocked review.
	ListBlockedReviews(ctx context.Context) ([]*model.ReviewDetail, error)

	// ========================================
	// MODERATION
	// ========================================

	// BlockReview sets is_blocked. Idempotent: blocking a blocked review is
	// still success.
	BlockReview(ctx context.Context, id int64) (*model.MessageResponse, error)

	// UnblockReview clears is_blocked and, after commit, publishes the
	// moderation event. The three outcomes are encoded in the result.
	UnblockReview(ctx context.Context, id int64) (*model.UnblockResult, error)

	// ========================================
	// GESTURES
	// ========================================

	// RateReview records or replaces a user's approve/disapprove gesture.
	RateReview(ctx context.Context, reviewID, userID int64, gesture bool) error
}
