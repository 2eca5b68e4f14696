package handler

import (
	"net/http"

	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categories *usecase.CategoryUsecase
}

func NewCategoryHandler(categories *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// GET /api/categories
func (h *CategoryHandler) List(c echo.Context) error {
	items, err := h.categories.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/categories/:id
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	item, err := h.categories.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// POST /api/admin/categories
func (h *CategoryHandler) Create(c echo.Context) error {
	var in usecase.CategoryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	item, err := h.categories.Create(c.Request().Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// PUT /api/admin/categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var in usecase.CategoryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	item, err := h.categories.Update(c.Request().Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DELETE /api/admin/categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.categories.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "category deleted"})
}
