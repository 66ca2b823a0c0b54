package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeReviewNotFound   = "REV001"
	ErrCodeValidationFailed = "REV002"
	ErrCodeWriteFailed      = "REV003"
	ErrCodeNotifyFailed     = "REV004"
	ErrCodeUnauthorized     = "REV005"
)

// Errors
var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrWriteFailed      = errors.New("write failed")
	ErrNotifyFailed     = errors.New("moderation event publish failed")
	ErrUnauthorized     = errors.New("unauthorized to perform this action")
)

// ReviewError custom error type
type ReviewError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewReviewNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReviewNotFound,
		Message: "Review not found",
		Err:     ErrReviewNotFound,
	}
}

func NewValidationError(reason string) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeValidationFailed,
		Message: reason,
		Err:     ErrValidationFailed,
	}
}

func NewWriteFailedError(cause error) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeWriteFailed,
		Message: "Storage write failed",
		Err:     fmt.Errorf("%w: %w", ErrWriteFailed, cause),
	}
}

func NewNotifyFailedError(cause error) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeNotifyFailed,
		Message: "Moderation event was not published",
		Err:     fmt.Errorf("%w: %w", ErrNotifyFailed, cause),
	}
}
