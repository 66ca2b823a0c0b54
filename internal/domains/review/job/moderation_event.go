package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"mediareview-backend/internal/domains/review/model"
	"mediareview-backend/internal/domains/review/repository"
	"mediareview-backend/internal/domains/review/service"
	"mediareview-backend/internal/shared/utils"
	"mediareview-backend/pkg/cache"
	"mediareview-backend/pkg/logger"
)

// ================================================
// MODERATION EVENT JOB HANDLER
// ================================================

// ModerationEventHandler consumes moderation events emitted after an
// unblock commits. Delivery is at-least-once, so a duplicate audit row is
// acceptable; the handler itself stays safe to re-run.
type ModerationEventHandler struct {
	reviewRepo repository.ReviewRepository
	cache      cache.Cache
}

func NewModerationEventHandler(reviewRepo repository.ReviewRepository, cache cache.Cache) *ModerationEventHandler {
	return &ModerationEventHandler{
		reviewRepo: reviewRepo,
		cache:      cache,
	}
}

// ProcessTask records the event in the audit table and drops the cached
// projection for the affected review. A storage failure returns an error so
// asynq retries the task.
func (h *ModerationEventHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.ModerationEventPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		// A malformed payload will never parse on retry.
		logger.Error("moderation event payload unmarshal failed", err)
		return fmt.Errorf("unmarshal moderation event: %w: %w", err, asynq.SkipRetry)
	}

	if err := h.reviewRepo.LogModerationEvent(ctx, payload.ReviewID, payload.IsBlocked); err != nil {
		return fmt.Errorf("log moderation event: %w", err)
	}

	if err := h.cache.Delete(ctx, service.DetailCacheKey(payload.ReviewID)); err != nil {
		// Cache invalidation is best effort. The entry expires on its own.
		logger.Error("moderation event cache invalidation failed", err)
	}

	logger.Info("moderation event recorded", map[string]interface{}{
		"review_id":  payload.ReviewID,
		"is_blocked": payload.IsBlocked,
	})

	return nil
}
