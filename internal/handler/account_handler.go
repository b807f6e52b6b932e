package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/lectorank/lectorank-backend/internal/response"
	"github.com/lectorank/lectorank-backend/internal/service"
)

// AccountAdminHandler handles account moderation endpoints.
type AccountAdminHandler struct {
	accountService *service.AccountService
	adminService   *service.AccountAdminService
}

// NewAccountAdminHandler creates a new AccountAdminHandler.
func NewAccountAdminHandler(accountService *service.AccountService, adminService *service.AccountAdminService) *AccountAdminHandler {
	return &AccountAdminHandler{
		accountService: accountService,
		adminService:   adminService,
	}
}

// List godoc
// GET /api/v1/admin/accounts
func (h *AccountAdminHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if accounts == nil {
		accounts = []model.Account{}
	}

	response.Success(c, http.StatusOK, gin.H{"accounts": accounts})
}

// Ban godoc
// POST /api/v1/admin/accounts/:id/ban
func (h *AccountAdminHandler) Ban(c *gin.Context) {
	h.setBanned(c, true)
}

// Unban godoc
// POST /api/v1/admin/accounts/:id/unban
func (h *AccountAdminHandler) Unban(c *gin.Context) {
	h.setBanned(c, false)
}

func (h *AccountAdminHandler) setBanned(c *gin.Context, banned bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.adminService.SetBanned(c.Request.Context(), id, banned); err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"banned": banned})
}
