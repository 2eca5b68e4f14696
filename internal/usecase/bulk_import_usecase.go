package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cosmeshop/internal/domain/model"
	"cosmeshop/internal/logger"
	repo "cosmeshop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// 商品の一括登録（xlsx）。1行目はヘッダ。
// 列: name, description, price, discount_price, stock_quantity,
//     category_id, brand_id, image_url, size, weight, ingredients, is_featured
type BulkImportUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	brands     repo.BrandRepository
}

func NewBulkImportUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	brands repo.BrandRepository,
) *BulkImportUsecase {
	return &BulkImportUsecase{products: products, categories: categories, brands: brands}
}

type ImportRowResult struct {
	Row     int    `json:"row"`
	Name    string `json:"name,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	Imported  int               `json:"imported"`
	Failed    int               `json:"failed"`
	Rows      []ImportRowResult `json:"rows"`
}

const maxImportRows = 1000

func (u *BulkImportUsecase) ImportProducts(ctx context.Context, actor Actor, r io.Reader) (ImportResult, error) {
	if !actor.IsAdmin() {
		return ImportResult{}, NewHTTPError(http.StatusForbidden, "access denied")
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest, "invalid xlsx file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest, "xlsx has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest, "failed to read xlsx")
	}
	if len(rows) < 2 {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest, "no data rows")
	}
	if len(rows)-1 > maxImportRows {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("too many rows (max %d)", maxImportRows))
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := ImportResult{TotalRows: len(rows) - 1}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1始まり＋ヘッダ行
		res := u.importRow(ctx, actor, cols, row, rowNum)
		if res.Success {
			result.Imported++
		} else {
			result.Failed++
		}
		result.Rows = append(result.Rows, res)
	}

	logger.FromCtx(ctx).Info("bulk product import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (u *BulkImportUsecase) importRow(ctx context.Context, actor Actor, cols map[string]int, row []string, rowNum int) ImportRowResult {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	fail := func(msg string) ImportRowResult {
		return ImportRowResult{Row: rowNum, Name: cell("name"), Error: msg}
	}

	name := cell("name")
	if name == "" {
		return fail("name required")
	}

	price, err := decimal.NewFromString(cell("price"))
	if err != nil {
		return fail("invalid price")
	}

	in := ProductInput{
		Name:        name,
		Description: cell("description"),
		Price:       price,
		ImageURL:    cell("image_url"),
		Size:        cell("size"),
		Weight:      cell("weight"),
		Ingredients: cell("ingredients"),
	}

	if s := cell("discount_price"); s != "" {
		dp, err := decimal.NewFromString(s)
		if err != nil {
			return fail("invalid discount_price")
		}
		in.DiscountPrice = &dp
	}
	if s := cell("stock_quantity"); s != "" {
		qty, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail("invalid stock_quantity")
		}
		in.StockQuantity = qty
	}
	if s := cell("category_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail("invalid category_id")
		}
		in.CategoryID = &id
	}
	if s := cell("brand_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail("invalid brand_id")
		}
		in.BrandID = &id
	}
	if s := cell("is_featured"); s != "" {
		featured, err := strconv.ParseBool(s)
		if err != nil {
			return fail("invalid is_featured")
		}
		in.IsFeatured = featured
	}

	if err := u.validate(ctx, in); err != nil {
		if he, ok := AsHTTPError(err); ok {
			return fail(he.Message)
		}
		return fail("validation failed")
	}

	_, err = u.products.Create(ctx, model.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		Size:          in.Size,
		Weight:        in.Weight,
		Ingredients:   in.Ingredients,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
		IsActive:      true,
		IsFeatured:    in.IsFeatured,
	})
	if err != nil {
		return fail("db error")
	}

	return ImportRowResult{Row: rowNum, Name: name, Success: true}
}

func (u *BulkImportUsecase) validate(ctx context.Context, in ProductInput) error {
	pu := &ProductUsecase{products: u.products, categories: u.categories, brands: u.brands}
	return pu.validateInput(ctx, in)
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}
	return cols, nil
}
