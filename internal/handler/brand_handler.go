package handler

import (
	"net/http"

	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BrandHandler struct {
	brands *usecase.BrandUsecase
}

func NewBrandHandler(brands *usecase.BrandUsecase) *BrandHandler {
	return &BrandHandler{brands: brands}
}

// GET /api/brands
func (h *BrandHandler) List(c echo.Context) error {
	items, err := h.brands.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/brands/:id
func (h *BrandHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	item, err := h.brands.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// POST /api/admin/brands
func (h *BrandHandler) Create(c echo.Context) error {
	var in usecase.BrandInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	item, err := h.brands.Create(c.Request().Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// PUT /api/admin/brands/:id
func (h *BrandHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var in usecase.BrandInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	item, err := h.brands.Update(c.Request().Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DELETE /api/admin/brands/:id
func (h *BrandHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.brands.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "brand deleted"})
}
