package handler

import (
	"net/http"

	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	approvals *usecase.ApprovalUsecase
}

func NewAdminUserHandler(approvals *usecase.ApprovalUsecase) *AdminUserHandler {
	return &AdminUserHandler{approvals: approvals}
}

// GET /api/admin/users/pending
func (h *AdminUserHandler) ListPending(c echo.Context) error {
	users, err := h.approvals.ListPending(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GET /api/admin/users
func (h *AdminUserHandler) ListCustomers(c echo.Context) error {
	users, err := h.approvals.ListCustomers(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// POST /api/admin/users/:id/approve
func (h *AdminUserHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	user, err := h.approvals.Approve(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// POST /api/admin/users/:id/reject
func (h *AdminUserHandler) Reject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var in usecase.RejectInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	user, err := h.approvals.Reject(c.Request().Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// PUT /api/admin/users/:id/active
func (h *AdminUserHandler) SetActive(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var in struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	user, err := h.approvals.SetActive(c.Request().Context(), actorFrom(c), id, in.IsActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
