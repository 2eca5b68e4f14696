package usecase

import (
	"context"
	"net/http"
	"testing"

	"cosmeshop/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminUpdateStatus_ForwardTransition(t *testing.T) {
	tx, orders, items, _, _ := newFakeTx()
	users := new(MockUserRepository)
	notifier := &recordingNotifier{}
	uc := NewAdminOrderUsecase(tx, users, notifier)

	order := model.Order{ID: 10, UserID: 7, Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodCreditCard}
	orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusConfirmed).Return(nil)
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)

	out, err := uc.UpdateStatus(context.Background(), adminActor(), 10,
		AdminUpdateOrderStatusInput{Status: "CONFIRMED"})

	assert.NoError(t, err)
	assert.Equal(t, "CONFIRMED", out.Status)

	// 変更前のステータスを添えて通知される
	assert.Len(t, notifier.statusUpdates, 1)
	assert.Equal(t, model.OrderStatusPending, notifier.statusUpdates[0])
}

func TestAdminUpdateStatus_BackwardTransitionRejected(t *testing.T) {
	tx, orders, items, _, _ := newFakeTx()
	uc := NewAdminOrderUsecase(tx, new(MockUserRepository), &recordingNotifier{})

	order := model.Order{ID: 10, UserID: 7, Status: model.OrderStatusShipped}
	orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)

	_, err := uc.UpdateStatus(context.Background(), adminActor(), 10,
		AdminUpdateOrderStatusInput{Status: "CONFIRMED"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_TerminalIsFrozen(t *testing.T) {
	tx, orders, items, _, _ := newFakeTx()
	uc := NewAdminOrderUsecase(tx, new(MockUserRepository), &recordingNotifier{})

	delivered := model.Order{ID: 10, UserID: 7, Status: model.OrderStatusDelivered}
	orders.On("FindByID", mock.Anything, int64(10)).Return(delivered, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)

	_, err := uc.UpdateStatus(context.Background(), adminActor(), 10,
		AdminUpdateOrderStatusInput{Status: "SHIPPED"})

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestAdminUpdateStatus_SameStatusIsNoop(t *testing.T) {
	tx, orders, items, _, _ := newFakeTx()
	notifier := &recordingNotifier{}
	uc := NewAdminOrderUsecase(tx, new(MockUserRepository), notifier)

	order := model.Order{ID: 10, UserID: 7, Status: model.OrderStatusConfirmed}
	orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)

	out, err := uc.UpdateStatus(context.Background(), adminActor(), 10,
		AdminUpdateOrderStatusInput{Status: "CONFIRMED"})

	assert.NoError(t, err)
	assert.Equal(t, "CONFIRMED", out.Status)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.statusUpdates)
}

func TestAdminUpdateStatus_CodDeliveredMarksPaid(t *testing.T) {
	tx, orders, items, _, _ := newFakeTx()
	users := new(MockUserRepository)
	uc := NewAdminOrderUsecase(tx, users, &recordingNotifier{})

	order := model.Order{
		ID: 10, UserID: 7,
		Status:        model.OrderStatusShipped,
		PaymentMethod: model.PaymentMethodCashOnDelivery,
		PaymentStatus: model.PaymentStatusPending,
	}
	orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusDelivered).Return(nil)
	orders.On("UpdatePaymentStatus", mock.Anything, int64(10), model.PaymentStatusPaid).Return(nil)
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)

	out, err := uc.UpdateStatus(context.Background(), adminActor(), 10,
		AdminUpdateOrderStatusInput{Status: "DELIVERED"})

	assert.NoError(t, err)
	assert.Equal(t, string(model.PaymentStatusPaid), out.PaymentStatus)
	orders.AssertCalled(t, "UpdatePaymentStatus", mock.Anything, int64(10), model.PaymentStatusPaid)
}

func TestAdminUpdateStatus_CancelRestoresStock(t *testing.T) {
	tx, orders, items, _, inventory := newFakeTx()
	users := new(MockUserRepository)
	uc := NewAdminOrderUsecase(tx, users, &recordingNotifier{})

	order := model.Order{ID: 10, UserID: 7, Status: model.OrderStatusConfirmed}
	orderItems := []model.OrderItem{{OrderID: 10, ProductID: 3, Quantity: 4}}

	orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return(orderItems, nil)
	inventory.On("RestoreStock", mock.Anything, int64(3), int64(4)).Return(nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCancelled).Return(nil)
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)

	out, err := uc.UpdateStatus(context.Background(), adminActor(), 10,
		AdminUpdateOrderStatusInput{Status: "CANCELLED"})

	assert.NoError(t, err)
	assert.Equal(t, "CANCELLED", out.Status)
	inventory.AssertCalled(t, "RestoreStock", mock.Anything, int64(3), int64(4))
}

func TestAdminUpdateStatus_CancelAfterShipRejected(t *testing.T) {
	tx, orders, items, _, inventory := newFakeTx()
	uc := NewAdminOrderUsecase(tx, new(MockUserRepository), &recordingNotifier{})

	order := model.Order{ID: 10, UserID: 7, Status: model.OrderStatusShipped}
	orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)

	_, err := uc.UpdateStatus(context.Background(), adminActor(), 10,
		AdminUpdateOrderStatusInput{Status: "CANCELLED"})

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusConflict, he.Status)
	inventory.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_NonAdminForbidden(t *testing.T) {
	tx, _, _, _, _ := newFakeTx()
	uc := NewAdminOrderUsecase(tx, new(MockUserRepository), &recordingNotifier{})

	_, err := uc.UpdateStatus(context.Background(), customer(7), 10,
		AdminUpdateOrderStatusInput{Status: "CONFIRMED"})

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusForbidden, he.Status)
}

func TestAdminStatistics(t *testing.T) {
	tx, orders, _, _, _ := newFakeTx()
	uc := NewAdminOrderUsecase(tx, new(MockUserRepository), &recordingNotifier{})

	orders.On("CountAll", mock.Anything).Return(int64(42), nil)
	orders.On("CountByStatus", mock.Anything, model.OrderStatusPending).Return(int64(5), nil)
	orders.On("CountByStatus", mock.Anything, model.OrderStatusConfirmed).Return(int64(10), nil)
	orders.On("CountByStatus", mock.Anything, model.OrderStatusShipped).Return(int64(8), nil)
	orders.On("CountByStatus", mock.Anything, model.OrderStatusDelivered).Return(int64(15), nil)
	orders.On("CountByStatus", mock.Anything, model.OrderStatusCancelled).Return(int64(4), nil)
	orders.On("PaidRevenue", mock.Anything).Return(decimal.NewFromInt(123456), nil)
	orders.On("PaidRevenueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(decimal.NewFromInt(999), nil)

	out, err := uc.Statistics(context.Background(), adminActor())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.TotalOrders)
	assert.Equal(t, int64(5), out.PendingOrders)
	assert.Equal(t, int64(4), out.CancelledOrders)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(123456)))
	assert.True(t, out.TodayRevenue.Equal(decimal.NewFromInt(999)))
	assert.True(t, out.MonthRevenue.Equal(decimal.NewFromInt(999)))
}
