package repository

import (
	"context"
	"errors"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"gorm.io/gorm"
)

type BrandGormRepository struct {
	db *gorm.DB
}

func NewBrandGormRepository(db *gorm.DB) *BrandGormRepository {
	return &BrandGormRepository{db: db}
}

func (r *BrandGormRepository) List(ctx context.Context, activeOnly bool) ([]model.Brand, error) {
	q := r.db.WithContext(ctx).Model(&model.Brand{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var items []model.Brand
	if err := q.Order("name asc").Find(&items).Error; err != nil {
		return []model.Brand{}, err
	}
	return items, nil
}

func (r *BrandGormRepository) FindByID(ctx context.Context, id int64) (model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Brand{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Brand{}, err
	}
	return b, nil
}

func (r *BrandGormRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Brand{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BrandGormRepository) Create(ctx context.Context, b model.Brand) (model.Brand, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Brand{}, err
	}
	return b, nil
}

func (r *BrandGormRepository) Update(ctx context.Context, b model.Brand) error {
	res := r.db.WithContext(ctx).Model(&model.Brand{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"name":        b.Name,
		"description": b.Description,
		"logo_url":    b.LogoURL,
		"is_active":   b.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BrandGormRepository) SetActive(ctx context.Context, id int64, isActive bool) error {
	res := r.db.WithContext(ctx).Model(&model.Brand{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
