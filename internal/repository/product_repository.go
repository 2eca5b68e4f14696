package repository

import (
	"context"
	"errors"

	"cosmeshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	BrandID    *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

// カテゴリ別の販売数（分析用）
type CategorySales struct {
	CategoryName string `json:"category"`
	SoldCount    int64  `json:"sold_count"`
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListFeatured(ctx context.Context) ([]model.Product, error)
	ListTopSelling(ctx context.Context, limit int) ([]model.Product, error)
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)
	IncrementViewCount(ctx context.Context, id int64) error

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SetActive(ctx context.Context, id int64, isActive bool) error

	// カテゴリごとのsold_count集計
	CategorySales(ctx context.Context) ([]CategorySales, error)
}
