package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lectorank/lectorank-backend/internal/middleware"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/lectorank/lectorank-backend/internal/response"
	"github.com/lectorank/lectorank-backend/internal/service"
	"github.com/lectorank/lectorank-backend/internal/validator"
)

// FeedbackHandler handles the one-shot website rating endpoints.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit godoc
// POST /api/v1/feedback
// Records the account's rating; each account gets exactly one.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitFeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.feedbackService.Submit(c.Request.Context(), claims.AccountID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, model.ErrFeedbackExists) {
			response.Fail(c, http.StatusConflict, response.ErrFeedbackExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"feedback": entry})
}

// Summary godoc
// GET /api/v1/feedback/summary
func (h *FeedbackHandler) Summary(c *gin.Context) {
	summary, err := h.feedbackService.Summary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Recent godoc
// GET /api/v1/admin/feedback?limit=20
func (h *FeedbackHandler) Recent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		limit = parsed
	}

	entries, err := h.feedbackService.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if entries == nil {
		entries = []model.Feedback{}
	}

	response.Success(c, http.StatusOK, gin.H{"feedback": entries})
}
