package handler

import (
	"net/http"
	"strconv"

	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders *usecase.OrderUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// POST /api/orders
func (h *OrderHandler) Place(c echo.Context) error {
	var in usecase.PlaceOrderInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	out, err := h.orders.PlaceOrder(c.Request().Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /api/orders
func (h *OrderHandler) ListMine(c echo.Context) error {
	page, limit := 1, 20
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	out, err := h.orders.ListMyOrders(c.Request().Context(), actorFrom(c), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.orders.GetOrderByID(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/orders/number/:orderNumber
func (h *OrderHandler) GetByNumber(c echo.Context) error {
	out, err := h.orders.GetOrderByOrderNumber(c.Request().Context(), actorFrom(c), c.Param("orderNumber"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.orders.CancelOrder(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
