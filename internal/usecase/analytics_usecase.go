package usecase

import (
	"context"
	"net/http"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"github.com/shopspring/decimal"
)

type AnalyticsUsecase struct {
	orders   repo.OrderRepository
	products repo.ProductRepository
}

func NewAnalyticsUsecase(orders repo.OrderRepository, products repo.ProductRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{orders: orders, products: products}
}

type TopProductOutput struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SoldCount int64           `json:"sold_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// 日別売上の推移。直近days日分を日付昇順で返す。
// 注文のない日も0で埋める。
func (u *AnalyticsUsecase) SalesTrend(ctx context.Context, actor Actor, days int) ([]repo.DailyRevenue, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if days < 1 || days > 365 {
		days = 30
	}

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	rows, err := u.orders.DailyPaidRevenue(ctx, start, end)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r.Revenue
	}

	out := make([]repo.DailyRevenue, 0, days)
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d).Format("2006-01-02")
		rev, ok := byDay[day]
		if !ok {
			rev = decimal.Zero
		}
		out = append(out, repo.DailyRevenue{Day: day, Revenue: rev})
	}
	return out, nil
}

// 売れ筋商品（sold_count降順）。実売価格×販売数を売上の概算として添える。
func (u *AnalyticsUsecase) TopProducts(ctx context.Context, actor Actor, limit int) ([]TopProductOutput, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	products, err := u.products.ListTopSelling(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]TopProductOutput, 0, len(products))
	for _, p := range products {
		out = append(out, TopProductOutput{
			ID:        p.ID,
			Name:      p.Name,
			SoldCount: p.SoldCount,
			Revenue:   p.EffectivePrice().Mul(decimal.NewFromInt(p.SoldCount)),
		})
	}
	return out, nil
}

// カテゴリ別の販売数の内訳
func (u *AnalyticsUsecase) CategoryDistribution(ctx context.Context, actor Actor) ([]repo.CategorySales, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	rows, err := u.products.CategorySales(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// 売れ残り（閲覧は多いのに売れていない商品）の確認に使う
func (u *AnalyticsUsecase) LowStock(ctx context.Context, actor Actor, threshold int64) ([]model.Product, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if threshold <= 0 {
		threshold = 10
	}
	items, err := u.products.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
