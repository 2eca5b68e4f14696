package handler

import (
	"net/http"
	"strconv"
	"time"

	repo "cosmeshop/internal/repository"
	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	orders *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(orders *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders}
}

// GET /api/admin/orders
func (h *AdminOrderHandler) List(c echo.Context) error {
	f := repo.AdminOrderListFilter{
		Page:   1,
		Limit:  20,
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := c.QueryParam("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		}
		f.UserID = &id
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from date"})
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to date"})
		}
		end := t.Add(24*time.Hour - time.Second)
		f.To = &end
	}

	out, err := h.orders.List(c.Request().Context(), actorFrom(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/admin/orders/recent
func (h *AdminOrderHandler) Recent(c echo.Context) error {
	out, err := h.orders.Recent(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PUT /api/admin/orders/:id/status
func (h *AdminOrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var in usecase.AdminUpdateOrderStatusInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	out, err := h.orders.UpdateStatus(c.Request().Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/admin/orders/stats
func (h *AdminOrderHandler) Stats(c echo.Context) error {
	out, err := h.orders.Statistics(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
