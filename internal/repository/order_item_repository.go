package repository

import (
	"context"

	"cosmeshop/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	CountByOrderID(ctx context.Context, orderID int64) (int64, error)
}
