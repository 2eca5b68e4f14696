package usecase

import (
	"context"
	"net/http"
	"strings"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx, true)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CategoryUsecase) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	c, err := u.categories.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !c.IsActive {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	return c, nil
}

// カテゴリ作成（管理者）。名前は重複不可。
func (u *CategoryUsecase) Create(ctx context.Context, actor Actor, in CategoryInput) (model.Category, error) {
	if !actor.IsAdmin() {
		return model.Category{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	exists, err := u.categories.ExistsByName(ctx, name)
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category name already exists")
	}

	created, err := u.categories.Create(ctx, model.Category{
		Name:        name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, actor Actor, id int64, in CategoryInput) (model.Category, error) {
	if !actor.IsAdmin() {
		return model.Category{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	c, err := u.categories.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if name != c.Name {
		exists, err := u.categories.ExistsByName(ctx, name)
		if err != nil {
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return model.Category{}, NewHTTPError(http.StatusConflict, "category name already exists")
		}
	}

	c.Name = name
	c.Description = in.Description
	c.ImageURL = in.ImageURL

	if err := u.categories.Update(ctx, c); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 論理削除。商品が参照している可能性があるため物理削除はしない。
func (u *CategoryUsecase) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "access denied")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := u.categories.FindByID(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.categories.SetActive(ctx, id, false); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
