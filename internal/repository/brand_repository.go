package repository

import (
	"context"

	"cosmeshop/internal/domain/model"
)

type BrandRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.Brand, error)
	FindByID(ctx context.Context, id int64) (model.Brand, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, b model.Brand) (model.Brand, error)
	Update(ctx context.Context, b model.Brand) error
	SetActive(ctx context.Context, id int64, isActive bool) error
}
