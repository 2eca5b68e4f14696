package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cosmeshop/internal/domain/model"
	"cosmeshop/internal/logger"
	repo "cosmeshop/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AdminOrderUsecase struct {
	tx       repo.TransactionManager
	users    repo.UserRepository
	notifier OrderNotifier
}

func NewAdminOrderUsecase(tx repo.TransactionManager, users repo.UserRepository, notifier OrderNotifier) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, users: users, notifier: notifier}
}

type AdminUpdateOrderStatusInput struct {
	Status string `json:"status"`
}

type OrderStatsOutput struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	ConfirmedOrders int64 `json:"confirmed_orders"`
	ShippedOrders   int64 `json:"shipped_orders"`
	DeliveredOrders int64 `json:"delivered_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`

	//売上はpayment_status=PAIDの注文のみ集計
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	MonthRevenue decimal.Decimal `json:"month_revenue"`
}

type OrderSummaryOutput struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	ItemCount   int64           `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// 注文一覧（管理者）
func (u *AdminOrderUsecase) List(ctx context.Context, actor Actor, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if !actor.IsAdmin() {
		return OrderListOutput{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !isKnownOrderStatus(f.Status) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = OrderListOutput{Items: outs, Total: total, Page: f.Page, Limit: f.Limit}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

// 直近の注文（ダッシュボード用、最大10件）
func (u *AdminOrderUsecase) Recent(ctx context.Context, actor Actor) ([]OrderSummaryOutput, error) {
	if !actor.IsAdmin() {
		return []OrderSummaryOutput{}, NewHTTPError(http.StatusForbidden, "access denied")
	}

	var outs []OrderSummaryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListRecent(ctx, 10)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderSummaryOutput, 0, len(orders))
		for _, o := range orders {
			count, err := r.OrderItems().CountByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, OrderSummaryOutput{
				ID:          o.ID,
				OrderNumber: o.OrderNumber,
				TotalAmount: o.TotalAmount,
				Status:      string(o.Status),
				ItemCount:   count,
				CreatedAt:   o.CreatedAt,
			})
		}
		return nil
	})

	if err != nil {
		return []OrderSummaryOutput{}, err
	}
	return outs, nil
}

// ステータス更新。enum順の前進のみ許可し、後退と終端からの変更は拒否。
// CANCELLEDはキャンセル規則（PENDING/CONFIRMEDのみ・在庫戻し）をそのまま通す。
// DELIVERED＋代引きなら支払いをPAIDにする。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, in AdminUpdateOrderStatusInput) (OrderOutput, error) {
	if !actor.IsAdmin() {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !isKnownOrderStatus(string(newStatus)) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput
	var previous model.OrderStatus
	notify := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			out = toOrderOutput(o, items)
			return nil
		}

		previous = o.Status

		if newStatus == model.OrderStatusCancelled {
			if !o.Status.CanCancel() {
				return NewHTTPError(http.StatusConflict,
					fmt.Sprintf("cannot cancel order in %s status", o.Status))
			}
			//在庫戻し
			for _, it := range items {
				if err := r.Inventory().RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		} else if !o.Status.CanAdvanceTo(newStatus) {
			return NewHTTPError(http.StatusConflict,
				fmt.Sprintf("cannot change order status from %s to %s", o.Status, newStatus))
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		o.Status = newStatus

		//代引きは配達完了で集金完了
		if newStatus == model.OrderStatusDelivered &&
			o.PaymentMethod == model.PaymentMethodCashOnDelivery &&
			o.PaymentStatus != model.PaymentStatusPaid {
			if err := r.Orders().UpdatePaymentStatus(ctx, o.ID, model.PaymentStatusPaid); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			o.PaymentStatus = model.PaymentStatusPaid
		}

		out = toOrderOutput(o, items)
		notify = true
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	if notify {
		u.notifyStatusUpdate(ctx, out, previous)
	}

	return out, nil
}

func (u *AdminOrderUsecase) notifyStatusUpdate(ctx context.Context, out OrderOutput, previous model.OrderStatus) {
	//通知は注文の持ち主（管理者ではない）へ
	owner, err := u.users.FindByID(ctx, out.UserID)
	if err != nil {
		logger.FromCtx(ctx).Warn("status update notification skipped: owner lookup failed",
			zap.Int64("user_id", out.UserID),
			zap.Error(err))
		return
	}

	order, _ := fromOrderOutput(out)
	u.notifier.OrderStatusUpdate(*owner, order, previous)
}

// 注文統計（管理者）
func (u *AdminOrderUsecase) Statistics(ctx context.Context, actor Actor) (OrderStatsOutput, error) {
	if !actor.IsAdmin() {
		return OrderStatsOutput{}, NewHTTPError(http.StatusForbidden, "access denied")
	}

	var out OrderStatsOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders := r.Orders()

		var err error
		if out.TotalOrders, err = orders.CountAll(ctx); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		counts := []struct {
			status model.OrderStatus
			dst    *int64
		}{
			{model.OrderStatusPending, &out.PendingOrders},
			{model.OrderStatusConfirmed, &out.ConfirmedOrders},
			{model.OrderStatusShipped, &out.ShippedOrders},
			{model.OrderStatusDelivered, &out.DeliveredOrders},
			{model.OrderStatusCancelled, &out.CancelledOrders},
		}
		for _, c := range counts {
			if *c.dst, err = orders.CountByStatus(ctx, c.status); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if out.TotalRevenue, err = orders.PaidRevenue(ctx); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		if out.TodayRevenue, err = orders.PaidRevenueBetween(ctx, startOfDay, endOfDay); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if out.MonthRevenue, err = orders.PaidRevenueBetween(ctx, startOfMonth, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return OrderStatsOutput{}, err
	}
	return out, nil
}

func isKnownOrderStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending, model.OrderStatusConfirmed,
		model.OrderStatusShipped, model.OrderStatusDelivered,
		model.OrderStatusCancelled:
		return true
	default:
		return false
	}
}
