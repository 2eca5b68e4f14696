package handler

import (
	"net/http"
	"strconv"

	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	analytics *usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analytics *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GET /api/admin/analytics/sales-trend?days=30
func (h *AnalyticsHandler) SalesTrend(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}
	out, err := h.analytics.SalesTrend(c.Request().Context(), actorFrom(c), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/admin/analytics/top-products?limit=10
func (h *AnalyticsHandler) TopProducts(c echo.Context) error {
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	out, err := h.analytics.TopProducts(c.Request().Context(), actorFrom(c), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/admin/analytics/category-distribution
func (h *AnalyticsHandler) CategoryDistribution(c echo.Context) error {
	out, err := h.analytics.CategoryDistribution(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
