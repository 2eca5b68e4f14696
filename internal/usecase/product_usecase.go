package usecase

import (
	"context"
	"net/http"
	"strings"

	"cosmeshop/internal/domain/model"
	"cosmeshop/internal/logger"
	repo "cosmeshop/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	brands     repo.BrandRepository
	tx         repo.TransactionManager
}

func NewProductUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	brands repo.BrandRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{products: products, categories: categories, brands: brands, tx: tx}
}

type ProductInput struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	StockQuantity int64            `json:"stock_quantity"`
	ImageURL      string           `json:"image_url"`
	Size          string           `json:"size"`
	Weight        string           `json:"weight"`
	Ingredients   string           `json:"ingredients"`
	CategoryID    *int64           `json:"category_id"`
	BrandID       *int64           `json:"brand_id"`
	IsFeatured    bool             `json:"is_featured"`
}

type AdjustInventoryInput struct {
	StockQuantity int64  `json:"stock_quantity"`
	Reason        string `json:"reason"`
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// 公開側一覧。is_active=trueの商品のみ返す。
func (u *ProductUsecase) ListPublic(ctx context.Context, q repo.ProductListQuery) (ProductListOutput, error) {
	if q.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price exceeds max_price")
	}

	items, total, err := u.products.ListPublic(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// 商品詳細。閲覧のたびにview_countを1増やす。
// カウント更新の失敗で詳細表示は止めない。
func (u *ProductUsecase) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	if err := u.products.IncrementViewCount(ctx, id); err != nil {
		logger.FromCtx(ctx).Warn("view count update failed",
			zap.Int64("product_id", id),
			zap.Error(err))
	} else {
		p.ViewCount++
	}

	return p, nil
}

// おすすめ商品（is_featured=true）
func (u *ProductUsecase) ListFeatured(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.ListFeatured(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 売れ筋上位
func (u *ProductUsecase) ListTopSelling(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	items, err := u.products.ListTopSelling(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 在庫僅少の商品（管理者）
func (u *ProductUsecase) ListLowStock(ctx context.Context, actor Actor, threshold int64) ([]model.Product, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if threshold < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid threshold")
	}
	if threshold == 0 {
		threshold = 10
	}
	items, err := u.products.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 商品登録（管理者）
func (u *ProductUsecase) Create(ctx context.Context, actor Actor, in ProductInput) (model.Product, error) {
	if !actor.IsAdmin() {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if err := u.validateInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		Name:          strings.TrimSpace(in.Name),
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
	}

	created, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 商品更新（管理者）。在庫数はここでは触らない。
func (u *ProductUsecase) Update(ctx context.Context, actor Actor, id int64, in ProductInput) (model.Product, error) {
	if !actor.IsAdmin() {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validateInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.DiscountPrice = in.DiscountPrice
	p.ImageURL = in.ImageURL
	p.Size = in.Size
	p.Weight = in.Weight
	p.Ingredients = in.Ingredients
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
	p.IsFeatured = in.IsFeatured

	if err := u.products.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 論理削除。注文履歴が参照するため物理削除はしない。
func (u *ProductUsecase) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "access denied")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.products.FindByID(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.products.SetActive(ctx, id, false); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 在庫修正（管理者）。新しい在庫数を直接指定し、差分を履歴に残す。
func (u *ProductUsecase) AdjustInventory(ctx context.Context, actor Actor, productID int64, in AdjustInventoryInput) (model.Product, error) {
	if !actor.IsAdmin() {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.StockQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must not be negative")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "reason required")
	}

	var out model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		delta := in.StockQuantity - p.StockQuantity
		if err := r.Inventory().SetStock(ctx, productID, in.StockQuantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Inventory().CreateAdjustment(ctx, model.StockAdjustment{
			ProductID:   productID,
			AdminUserID: actor.UserID,
			Delta:       delta,
			Reason:      strings.TrimSpace(in.Reason),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p.StockQuantity = in.StockQuantity
		out = p
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

func (u *ProductUsecase) validateInput(ctx context.Context, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if in.DiscountPrice != nil {
		if in.DiscountPrice.LessThanOrEqual(decimal.Zero) {
			return NewHTTPError(http.StatusBadRequest, "discount_price must be positive")
		}
		if in.DiscountPrice.GreaterThanOrEqual(in.Price) {
			return NewHTTPError(http.StatusBadRequest, "discount_price must be lower than price")
		}
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock_quantity must not be negative")
	}
	if in.CategoryID != nil {
		if _, err := u.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "category not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	if in.BrandID != nil {
		if _, err := u.brands.FindByID(ctx, *in.BrandID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "brand not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}
