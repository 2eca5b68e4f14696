package handler

import (
	"net/http"
	"strconv"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"
	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseが返したHTTPErrorをレスポンスへ写す
func writeError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// JWTミドルウェアが載せた呼び出し元情報を取り出す
func actorFrom(c echo.Context) usecase.Actor {
	userID, _ := c.Get("user_id").(int64)
	role, _ := c.Get("user_role").(model.Role)
	return usecase.Actor{UserID: userID, Role: role}
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

type ProductHandler struct {
	products *usecase.ProductUsecase
}

func NewProductHandler(products *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// GET /api/products
func (h *ProductHandler) List(c echo.Context) error {
	q := repo.ProductListQuery{
		Page:  1,
		Limit: 20,
		Q:     c.QueryParam("q"),
		Sort:  c.QueryParam("sort"),
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
		}
		q.CategoryID = &id
	}
	if v := c.QueryParam("brand_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid brand_id"})
		}
		q.BrandID = &id
	}
	if v := c.QueryParam("min_price"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		q.MinPrice = &p
	}
	if v := c.QueryParam("max_price"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		q.MaxPrice = &p
	}

	out, err := h.products.ListPublic(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	p, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// GET /api/products/featured
func (h *ProductHandler) Featured(c echo.Context) error {
	items, err := h.products.ListFeatured(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/products/top-selling
func (h *ProductHandler) TopSelling(c echo.Context) error {
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	items, err := h.products.ListTopSelling(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
