package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest carries the client wire format: foreign keys arrive as
// *_fk fields.
type CreateReviewRequest struct {
	MediaID     int64   `json:"media_fk"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PlatformID  int64   `json:"platform_fk"`
	UserID      int64   `json:"user_fk"`
	GenreIDs    []int64 `json:"genre_ids"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MediaID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, MaxDescriptionLength)),
		validation.Field(&r.PlatformID, validation.Required),
		validation.Field(&r.UserID, validation.Required),
	)
}

// UpdateReviewRequest replaces title, description and the full genre set.
type UpdateReviewRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GenreIDs    []int64 `json:"genre_ids"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, MaxDescriptionLength)),
	)
}

// GestureRequest records an approve/disapprove gesture.
type GestureRequest struct {
	Gesture *bool `json:"gesture"`
}

func (r GestureRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Gesture, validation.NotNil),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type CreateReviewResponse struct {
	ReviewID int64 `json:"reviewId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UnblockOutcome distinguishes the three results of an unblock request:
// a real transition, a no-op on an already-active review, and a missing
// review. The latter two are recoverable outcomes, not errors.
type UnblockOutcome string

const (
	UnblockOutcomeUnblocked  UnblockOutcome = "unblocked"
	UnblockOutcomeNotBlocked UnblockOutcome = "not_blocked"
	UnblockOutcomeMissing    UnblockOutcome = "missing"
)

type UnblockResult struct {
	Outcome  UnblockOutcome `json:"outcome"`
	ReviewID int64          `json:"reviewId,omitempty"`
	Message  string         `json:"message"`
}
