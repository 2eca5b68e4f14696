package repository

import (
	"context"

	"cosmeshop/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	SetActive(ctx context.Context, id int64, isActive bool) error
}
