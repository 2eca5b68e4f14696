package handler

import (
	"net/http"
	"strconv"

	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminProductHandler struct {
	products *usecase.ProductUsecase
	importer *usecase.BulkImportUsecase
}

func NewAdminProductHandler(products *usecase.ProductUsecase, importer *usecase.BulkImportUsecase) *AdminProductHandler {
	return &AdminProductHandler{products: products, importer: importer}
}

// POST /api/admin/products
func (h *AdminProductHandler) Create(c echo.Context) error {
	var in usecase.ProductInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	p, err := h.products.Create(c.Request().Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// PUT /api/admin/products/:id
func (h *AdminProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var in usecase.ProductInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	p, err := h.products.Update(c.Request().Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// DELETE /api/admin/products/:id
func (h *AdminProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.products.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

// PUT /api/admin/products/:id/inventory
func (h *AdminProductHandler) AdjustInventory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var in usecase.AdjustInventoryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	p, err := h.products.AdjustInventory(c.Request().Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// GET /api/admin/products/low-stock
func (h *AdminProductHandler) LowStock(c echo.Context) error {
	var threshold int64
	if v := c.QueryParam("threshold"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid threshold"})
		}
		threshold = n
	}
	items, err := h.products.ListLowStock(c.Request().Context(), actorFrom(c), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /api/admin/products/import （multipart、fileフィールドにxlsx）
func (h *AdminProductHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file required"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to open file"})
	}
	defer f.Close()

	result, err := h.importer.ImportProducts(c.Request().Context(), actorFrom(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
