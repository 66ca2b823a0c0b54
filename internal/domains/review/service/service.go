package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediareview-backend/internal/domains/review/model"
	"mediareview-backend/internal/domains/review/repository"
	"mediareview-backend/internal/infrastructure/queue"
	"mediareview-backend/internal/shared"
	"mediareview-backend/pkg/cache"
	"mediareview-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const detailCacheTTL = 5 * time.Minute

// DetailCacheKey is the cache key for one review's joined projection. The
// worker invalidates the same key when it consumes a moderation event.
func DetailCacheKey(id int64) string {
	return fmt.Sprintf("review:detail:%d", id)
}

type reviewService struct {
	reviewRepo      repository.ReviewRepository
	publisher       queue.Publisher
	cache           cache.Cache
	moderationQueue string
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	publisher queue.Publisher,
	cache cache.Cache,
	moderationQueue string,
) ServiceInterface {
	if moderationQueue == "" {
		moderationQueue = shared.QueueModeration
	}

	return &reviewService{
		reviewRepo:      reviewRepo,
		publisher:       publisher,
		cache:           cache,
		moderationQueue: moderationQueue,
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

func (s *reviewService) CreateReview(
	ctx context.Context,
	req model.CreateReviewRequest,
) (*model.CreateReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	review := &model.Review{
		MediaID:     req.MediaID,
		Title:       req.Title,
		Description: req.Description,
		PlatformID:  req.PlatformID,
		UserID:      req.UserID,
	}

	id, err := s.reviewRepo.CreateWithGenres(ctx, review, req.GenreIDs)
	if err != nil {
		return nil, model.NewWriteFailedError(err)
	}

	logger.Info("review created", map[string]interface{}{
		"review_id": id,
		"user_id":   req.UserID,
		"genres":    len(req.GenreIDs),
	})

	return &model.CreateReviewResponse{ReviewID: id}, nil
}

// =====================================================
// UPDATE REVIEW
// =====================================================

func (s *reviewService) UpdateReview(
	ctx context.Context,
	id int64,
	req model.UpdateReviewRequest,
) error {
	// Validation runs before any storage call so a bad request can never
	// mutate the stored row.
	if err := req.Validate(); err != nil {
		return model.NewValidationError(err.Error())
	}

	err := s.reviewRepo.UpdateWithGenres(ctx, id, req.Title, req.Description, req.GenreIDs)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return model.NewReviewNotFoundError()
		}
		return model.NewWriteFailedError(err)
	}

	s.invalidateDetail(ctx, id)

	return nil
}

// =====================================================
// READ
// =====================================================

func (s *reviewService) GetReview(ctx context.Context, id int64) (*model.ReviewDetail, error) {
	cacheKey := DetailCacheKey(id)

	var cached model.ReviewDetail
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Error("review detail cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	detail, err := s.reviewRepo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			// Absence is a regular answer for a point lookup.
			return nil, nil
		}
		return nil, model.NewWriteFailedError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, detail, detailCacheTTL); err != nil {
		logger.Error("review detail cache write failed", err)
	}

	return detail, nil
}

func (s *reviewService) ListReviews(ctx context.Context, limit int) ([]*model.ReviewDetail, error) {
	if limit < 0 {
		return nil, model.NewValidationError("limit must not be negative")
	}
	if limit == 0 {
		return []*model.ReviewDetail{}, nil
	}

	details, err := s.reviewRepo.ListActive(ctx, limit)
	if err != nil {
		return nil, model.NewWriteFailedError(err)
	}
	if details == nil {
		details = []*model.ReviewDetail{}
	}

	return details, nil
}

func (s *reviewService) SearchReviewsByTitle(ctx context.Context, fragment string) ([]*model.SearchRow, error) {
	if fragment == "" {
		return nil, model.NewValidationError("search title must not be empty")
	}

	rows, err := s.reviewRepo.SearchByTitle(ctx, fragment)
	if err != nil {
		return nil, model.NewWriteFailedError(err)
	}
	if rows == nil {
		rows = []*model.SearchRow{}
	}

	return rows, nil
}

func (s *reviewService) ListBlockedReviews(ctx context.Context) ([]*model.ReviewDetail, error) {
	details, err := s.reviewRepo.ListBlocked(ctx)
	if err != nil {
		return nil, model.NewWriteFailedError(err)
	}
	if details == nil {
		details = []*model.ReviewDetail{}
	}

	return details, nil
}

// =====================================================
// MODERATION
// =====================================================

func (s *reviewService) BlockReview(ctx context.Context, id int64) (*model.MessageResponse, error) {
	// SetBlocked is idempotent: re-blocking a blocked review still succeeds.
	err := s.reviewRepo.SetBlocked(ctx, id, true)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, model.NewWriteFailedError(err)
	}

	s.invalidateDetail(ctx, id)

	logger.Info("review blocked", map[string]interface{}{"review_id": id})

	return &model.MessageResponse{Message: "Review deleted successfully"}, nil
}

func (s *reviewService) UnblockReview(ctx context.Context, id int64) (*model.UnblockResult, error) {
	blocked, err := s.reviewRepo.GetBlockState(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return &model.UnblockResult{
				Outcome: model.UnblockOutcomeMissing,
				Message: "Review does not exist",
			}, nil
		}
		return nil, model.NewWriteFailedError(err)
	}

	if !blocked {
		// No transition, no event.
		return &model.UnblockResult{
			Outcome:  model.UnblockOutcomeNotBlocked,
			ReviewID: id,
			Message:  "Review is not blocked",
		}, nil
	}

	if err := s.reviewRepo.SetBlocked(ctx, id, false); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return &model.UnblockResult{
				Outcome: model.UnblockOutcomeMissing,
				Message: "Review does not exist",
			}, nil
		}
		return nil, model.NewWriteFailedError(err)
	}

	s.invalidateDetail(ctx, id)

	// The unblock is committed at this point. A publish failure must not
	// undo it; the caller learns about the delivery problem separately.
	payload := model.ModerationEventPayload{ReviewID: id, IsBlocked: false}
	err = s.publisher.Publish(ctx, s.moderationQueue, shared.TypeReviewModerationEvent, payload)
	if err != nil {
		logger.Error("moderation event publish failed", err)
		return nil, model.NewNotifyFailedError(err)
	}

	logger.Info("review unblocked", map[string]interface{}{"review_id": id})

	return &model.UnblockResult{
		Outcome:  model.UnblockOutcomeUnblocked,
		ReviewID: id,
		Message:  "Review undeleted successfully",
	}, nil
}

// =====================================================
// GESTURES
// =====================================================

func (s *reviewService) RateReview(ctx context.Context, reviewID, userID int64, gesture bool) error {
	// The review must exist; a gesture on a missing review is a NotFound.
	if _, err := s.reviewRepo.GetBlockState(ctx, reviewID); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return model.NewReviewNotFoundError()
		}
		return model.NewWriteFailedError(err)
	}

	action := &model.ReviewAction{
		UserID:   userID,
		ReviewID: reviewID,
		Gesture:  gesture,
	}

	if err := s.reviewRepo.UpsertGesture(ctx, action); err != nil {
		return model.NewWriteFailedError(err)
	}

	return nil
}

func (s *reviewService) invalidateDetail(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, DetailCacheKey(id)); err != nil {
		logger.Error("review detail cache invalidation failed", err)
	}
}
