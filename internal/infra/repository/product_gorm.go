package repository

import (
	"context"
	"errors"
	"strings"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、検索/カテゴリ/ブランド/価格帯/ソート/ページング付きで返す。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// 公開（is_active=true）のみ。物理削除はしない。
	tx = tx.Where("is_active = ?", true)

	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name ILIKE ?", like)
	}

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.BrandID != nil {
		tx = tx.Where("brand_id = ?", *q.BrandID)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	case "best_selling":
		tx = tx.Order("sold_count desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) ListFeatured(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) ListTopSelling(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sold_count desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"discount_price": p.DiscountPrice,
		"image_url":      p.ImageURL,
		"size":           p.Size,
		"weight":         p.Weight,
		"ingredients":    p.Ingredients,
		"category_id":    p.CategoryID,
		"brand_id":       p.BrandID,
		"is_active":      p.IsActive,
		"is_featured":    p.IsFeatured,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除。行は消さずis_activeを落とすだけ。
func (r *ProductGormRepository) SetActive(ctx context.Context, id int64, isActive bool) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
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

func (r *ProductGormRepository) CategorySales(ctx context.Context) ([]repo.CategorySales, error) {
	var rows []repo.CategorySales
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("categories.name as category_name, SUM(products.sold_count) as sold_count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.sold_count > 0").
		Group("categories.name").
		Scan(&rows).Error
	if err != nil {
		return []repo.CategorySales{}, err
	}
	return rows, nil
}
