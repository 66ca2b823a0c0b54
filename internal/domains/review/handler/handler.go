package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mediareview-backend/internal/domains/review/model"
	"mediareview-backend/internal/domains/review/service"
	"mediareview-backend/internal/shared/middleware"
	"mediareview-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "Invalid review ID")
		return 0, false
	}
	return id, true
}

// getUserID extracts the authenticated user id set by the auth middleware.
func getUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, "Unauthorized")
		return 0, false
	}

	userID, ok := value.(int64)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return 0, false
	}

	return userID, true
}

// mapReviewError translates domain errors into HTTP status codes.
func mapReviewError(c *gin.Context, err error) {
	var reviewErr *model.ReviewError
	if !errors.As(err, &reviewErr) {
		response.InternalServerError(c, "Internal server error")
		return
	}

	switch reviewErr.Code {
	case model.ErrCodeReviewNotFound:
		response.ErrorResponse(c, http.StatusNotFound, reviewErr.Code, reviewErr.Message)
	case model.ErrCodeValidationFailed:
		response.ErrorResponse(c, http.StatusBadRequest, reviewErr.Code, reviewErr.Message)
	case model.ErrCodeNotifyFailed:
		response.ErrorResponse(c, http.StatusBadGateway, reviewErr.Code, reviewErr.Message)
	case model.ErrCodeUnauthorized:
		response.ErrorResponse(c, http.StatusForbidden, reviewErr.Code, reviewErr.Message)
	default:
		response.ErrorResponse(c, http.StatusInternalServerError, reviewErr.Code, reviewErr.Message)
	}
}

// =====================================================
// WRITE ENDPOINTS
// =====================================================

// CreateReview creates a review with its genre set
// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.reviewService.CreateReview(c.Request.Context(), req)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// UpdateReview rewrites a review and replaces its genre set
// PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.reviewService.UpdateReview(c.Request.Context(), id, req); err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.MessageResponse{Message: "Review updated successfully"})
}

// =====================================================
// READ ENDPOINTS
// =====================================================

// GetReview returns the joined projection for one review
// GET /reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.reviewService.GetReview(c.Request.Context(), id)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	// An absent review is answered with data: null, not a 404. The typed
	// nil keeps the data field present in the envelope.
	if detail == nil {
		response.Success(c, http.StatusOK, (*model.ReviewDetail)(nil))
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// ListReviews lists non-blocked reviews
// GET /reviews?limit=n
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}

	details, err := h.reviewService.ListReviews(c.Request.Context(), limit)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// SearchReviews searches reviews by title fragment
// GET /reviews/search/:title
func (h *ReviewHandler) SearchReviews(c *gin.Context) {
	rows, err := h.reviewService.SearchReviewsByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

// ListBlockedReviews lists every blocked review
// GET /reviews/blocked
func (h *ReviewHandler) ListBlockedReviews(c *gin.Context) {
	details, err := h.reviewService.ListBlockedReviews(c.Request.Context())
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// =====================================================
// MODERATION ENDPOINTS
// =====================================================

// BlockReview hides a review from the public surfaces
// PUT /reviews/:id/block
func (h *ReviewHandler) BlockReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.BlockReview(c.Request.Context(), id)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UnblockReview restores a blocked review and emits the moderation event
// PUT /reviews/:id/unblock
func (h *ReviewHandler) UnblockReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.UnblockReview(c.Request.Context(), id)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// GESTURE ENDPOINT
// =====================================================

// RateReview records an approve/disapprove gesture
// POST /reviews/:id/gesture
func (h *ReviewHandler) RateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req model.GestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.reviewService.RateReview(c.Request.Context(), id, userID, *req.Gesture); err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.MessageResponse{Message: "Gesture recorded"})
}
