package repository

import (
	"context"
	"time"

	"cosmeshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)

	//統計用の集計
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	//payment_status=PAIDの売上合計（全期間）
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
	//payment_status=PAIDかつcreated_atが[from,to]の売上合計
	PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	//日別のPAID売上（分析用）
	DailyPaidRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenue, error)
}

type DailyRevenue struct {
	Day     string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}
