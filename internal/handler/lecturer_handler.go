package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/middleware"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/lectorank/lectorank-backend/internal/response"
	"github.com/lectorank/lectorank-backend/internal/service"
	"github.com/lectorank/lectorank-backend/internal/validator"
)

// LecturerHandler serves public lecturer listings and detail.
type LecturerHandler struct {
	lecturerService *service.LecturerService
}

// NewLecturerHandler creates a new LecturerHandler.
func NewLecturerHandler(lecturerService *service.LecturerService) *LecturerHandler {
	return &LecturerHandler{lecturerService: lecturerService}
}

// List godoc
// GET /api/v1/lecturers?sort_by=votes&order=desc&is_active=true&limit=20
// Lists lecturer standings. With an account token present, each entry is
// annotated with whether the caller voted for it today.
func (h *LecturerHandler) List(c *gin.Context) {
	params := service.ListLecturersParams{
		SortBy: service.SortByVotes,
		Order:  service.OrderDesc,
	}

	if v := c.Query("sort_by"); v != "" {
		params.SortBy = service.SortBy(v)
	}
	if v := c.Query("order"); v != "" {
		params.Order = service.SortOrder(v)
	}
	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		params.IsActive = &active
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		params.Limit = limit
	}

	if claims := middleware.GetClaims(c); claims != nil {
		params.ViewerID = &claims.AccountID
	}

	standings, err := h.lecturerService.ListLecturers(c.Request.Context(), params)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if standings == nil {
		standings = []model.LecturerStanding{}
	}

	response.Success(c, http.StatusOK, gin.H{"lecturers": standings})
}

// Get godoc
// GET /api/v1/lecturers/:id
// Returns a single lecturer with its weighted vote total.
func (h *LecturerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	votes, err := h.lecturerService.WeightedVotes(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrLecturerNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"lecturer_id":    id,
		"weighted_votes": votes,
	})
}

// LecturerAdminHandler manages the lecturer roster.
type LecturerAdminHandler struct {
	adminService *service.LecturerAdminService
}

// NewLecturerAdminHandler creates a new LecturerAdminHandler.
func NewLecturerAdminHandler(adminService *service.LecturerAdminService) *LecturerAdminHandler {
	return &LecturerAdminHandler{adminService: adminService}
}

// Create godoc
// POST /api/v1/admin/lecturers
func (h *LecturerAdminHandler) Create(c *gin.Context) {
	var req model.CreateLecturerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lect := &model.Lecturer{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		IsActive:   true,
	}
	if err := h.adminService.Create(c.Request.Context(), lect); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"lecturer": lect})
}

// Update godoc
// PUT /api/v1/admin/lecturers/:id
// Changing the department re-weights the lecturer's entire vote history.
func (h *LecturerAdminHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateLecturerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lect := &model.Lecturer{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		IsActive:   *req.IsActive,
	}
	if err := h.adminService.Update(c.Request.Context(), lect); err != nil {
		if errors.Is(err, model.ErrLecturerNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lecturer": lect})
}

// Delete godoc
// DELETE /api/v1/admin/lecturers/:id
func (h *LecturerAdminHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrLecturerNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "lecturer deleted successfully"})
}
