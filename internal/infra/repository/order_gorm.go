package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Order{})

	//status 絞り込み
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	//user_id 絞り込み
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	//期間絞り込み
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("id desc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	return total, err
}

func (r *OrderGormRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}

func (r *OrderGormRepository) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumTotalAmount(r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_status = ?", model.PaymentStatusPaid))
}

func (r *OrderGormRepository) PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.sumTotalAmount(r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_status = ?", model.PaymentStatusPaid).
		Where("created_at BETWEEN ? AND ?", from, to))
}

// SUMはNULLになり得るのでNullStringで受けてからdecimalへ
func (r *OrderGormRepository) sumTotalAmount(q *gorm.DB) (decimal.Decimal, error) {
	var sum sql.NullString
	if err := q.Select("SUM(total_amount)").Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(sum.String)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func (r *OrderGormRepository) DailyPaidRevenue(ctx context.Context, from, to time.Time) ([]repo.DailyRevenue, error) {
	var rows []repo.DailyRevenue
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("to_char(created_at, 'YYYY-MM-DD') as day, SUM(total_amount) as revenue").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Where("created_at BETWEEN ? AND ?", from, to).
		Group("to_char(created_at, 'YYYY-MM-DD')").
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.DailyRevenue{}, err
	}
	return rows, nil
}
