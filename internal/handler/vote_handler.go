package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/middleware"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/lectorank/lectorank-backend/internal/response"
	"github.com/lectorank/lectorank-backend/internal/service"
)

// statusClientClosedRequest mirrors nginx's non-standard 499 for requests
// cancelled by the client mid-flight.
const statusClientClosedRequest = 499

// VoteHandler handles vote cast/cancel/history endpoints.
type VoteHandler struct {
	voteService *service.VoteService
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// Cast godoc
// POST /api/v1/lecturers/:id/vote
// Spends one unit of today's budget on the lecturer. Returns the remaining
// budget on success.
func (h *VoteHandler) Cast(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	lecturerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	remaining, err := h.voteService.Cast(c.Request.Context(), claims.AccountID, lecturerID)
	if err != nil {
		failVoteError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"votes_remain": remaining})
}

// Cancel godoc
// DELETE /api/v1/lecturers/:id/vote
// Withdraws today's vote for the lecturer and refunds the budget unit.
func (h *VoteHandler) Cancel(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	lecturerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	remaining, err := h.voteService.Cancel(c.Request.Context(), claims.AccountID, lecturerID)
	if err != nil {
		failVoteError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"votes_remain": remaining})
}

// History godoc
// GET /api/v1/votes/history
// Returns every vote the account has ever cast, newest first.
func (h *VoteHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	votes, err := h.voteService.History(c.Request.Context(), claims.AccountID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"votes": votes})
}

// ResetQuotas godoc
// POST /api/v1/admin/reset-quotas
// Restores the daily vote budget for every account immediately.
func (h *VoteHandler) ResetQuotas(c *gin.Context) {
	updated, err := h.voteService.Reset(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"accounts_updated": updated})
}

// failVoteError maps engine errors onto HTTP statuses and error codes.
func failVoteError(c *gin.Context, err error) {
	var ruleErr *model.RuleViolationError

	switch {
	case errors.Is(err, model.ErrAccountNotFound),
		errors.Is(err, model.ErrLecturerNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, model.ErrVoteNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrVoteNotFound)
	case errors.Is(err, model.ErrAccountBanned):
		response.Fail(c, http.StatusForbidden, response.ErrAccountBanned)
	case errors.Is(err, model.ErrQuotaExhausted):
		response.Fail(c, http.StatusConflict, response.ErrQuotaExhausted)
	case errors.Is(err, model.ErrAlreadyVoted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyVoted)
	case errors.As(err, &ruleErr):
		response.FailWithMessage(c, http.StatusConflict, response.ErrRuleViolation, ruleErr.Message)
	case errors.Is(err, model.ErrInvalidSemester):
		response.Fail(c, http.StatusInternalServerError, response.ErrInvalidSemester)
	case errors.Is(err, model.ErrAborted):
		response.Fail(c, statusClientClosedRequest, response.ErrRequestAborted)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
