package repository

import (
	"context"
	"testing"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderFindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewOrderGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.FindByID(context.Background(), 999)

	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrderUpdateStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewOrderGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET .+ WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := r.UpdateStatus(context.Background(), 999, model.OrderStatusConfirmed)

	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestPaidRevenue_NullSumIsZero(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewOrderGormRepository(db)

	// 対象注文なしならSUMはNULL
	mock.ExpectQuery(`SELECT SUM\(total_amount\) FROM "orders" WHERE payment_status = \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

	got, err := r.PaidRevenue(context.Background())

	assert.NoError(t, err)
	assert.True(t, got.Equal(decimal.Zero))
}

func TestPaidRevenue_Sum(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewOrderGormRepository(db)

	mock.ExpectQuery(`SELECT SUM\(total_amount\) FROM "orders" WHERE payment_status = \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("10600.00"))

	got, err := r.PaidRevenue(context.Background())

	assert.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(10600.00)))
}

func TestDailyPaidRevenue(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewOrderGormRepository(db)

	mock.ExpectQuery(`SELECT to_char\(created_at, 'YYYY-MM-DD'\) as day, SUM\(total_amount\) as revenue FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"day", "revenue"}).
			AddRow("2026-08-28", "5000.00").
			AddRow("2026-08-29", "12000.00"))

	from := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)
	rows, err := r.DailyPaidRevenue(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "2026-08-28", rows[0].Day)
	assert.True(t, rows[1].Revenue.Equal(decimal.NewFromInt(12000)))
}

func TestListByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewOrderGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE user_id = \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE user_id = \$\d+ ORDER BY id desc`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "order_number", "status"}).
			AddRow(2, 7, "ORD-20260829-AAAA0002", "PENDING").
			AddRow(1, 7, "ORD-20260828-AAAA0001", "DELIVERED"))

	items, total, err := r.ListByUserID(context.Background(), 7, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
	assert.Equal(t, "ORD-20260829-AAAA0002", items[0].OrderNumber)
}
