package usecase

import (
	"context"
	"net/http"
	"strings"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"
)

type BrandUsecase struct {
	brands repo.BrandRepository
}

func NewBrandUsecase(brands repo.BrandRepository) *BrandUsecase {
	return &BrandUsecase{brands: brands}
}

type BrandInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

func (u *BrandUsecase) List(ctx context.Context) ([]model.Brand, error) {
	items, err := u.brands.List(ctx, true)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *BrandUsecase) GetByID(ctx context.Context, id int64) (model.Brand, error) {
	if id <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := u.brands.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Brand{}, NewHTTPError(http.StatusNotFound, "brand not found")
	}
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !b.IsActive {
		return model.Brand{}, NewHTTPError(http.StatusNotFound, "brand not found")
	}
	return b, nil
}

// ブランド作成（管理者）。名前は重複不可。
func (u *BrandUsecase) Create(ctx context.Context, actor Actor, in BrandInput) (model.Brand, error) {
	if !actor.IsAdmin() {
		return model.Brand{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	exists, err := u.brands.ExistsByName(ctx, name)
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Brand{}, NewHTTPError(http.StatusConflict, "brand name already exists")
	}

	created, err := u.brands.Create(ctx, model.Brand{
		Name:        name,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		IsActive:    true,
	})
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *BrandUsecase) Update(ctx context.Context, actor Actor, id int64, in BrandInput) (model.Brand, error) {
	if !actor.IsAdmin() {
		return model.Brand{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if id <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	b, err := u.brands.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Brand{}, NewHTTPError(http.StatusNotFound, "brand not found")
	}
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if name != b.Name {
		exists, err := u.brands.ExistsByName(ctx, name)
		if err != nil {
			return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return model.Brand{}, NewHTTPError(http.StatusConflict, "brand name already exists")
		}
	}

	b.Name = name
	b.Description = in.Description
	b.LogoURL = in.LogoURL

	if err := u.brands.Update(ctx, b); err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *BrandUsecase) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "access denied")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := u.brands.FindByID(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "brand not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.brands.SetActive(ctx, id, false); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
