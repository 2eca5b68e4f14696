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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 注文系の通知。Dispatcherが満たす。
type OrderNotifier interface {
	OrderConfirmation(user model.User, order model.Order, items []model.OrderItem)
	OrderStatusUpdate(user model.User, order model.Order, previousStatus model.OrderStatus)
}

type OrderUsecase struct {
	tx       repo.TransactionManager
	users    repo.UserRepository
	notifier OrderNotifier
}

func NewOrderUsecase(tx repo.TransactionManager, users repo.UserRepository, notifier OrderNotifier) *OrderUsecase {
	return &OrderUsecase{tx: tx, users: users, notifier: notifier}
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderInput struct {
	Items         []OrderItemInput `json:"items"`
	PaymentMethod string           `json:"payment_method"`

	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingState   string `json:"shipping_state"`
	ShippingZipCode string `json:"shipping_zip_code"`
	ShippingCountry string `json:"shipping_country"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	OrderNumber   string            `json:"order_number"`
	UserID        int64             `json:"user_id"`
	Status        string            `json:"status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	PaymentStatus string            `json:"payment_status"`

	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingState   string `json:"shipping_state"`
	ShippingZipCode string `json:"shipping_zip_code"`
	ShippingCountry string `json:"shipping_country"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`

	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文作成。商品ごとに在庫を確認しつつ減算し、実売価格をスナップショット。
// どれか1つでも在庫不足なら全体が失敗する（部分的な注文は作らない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, actor Actor, in PlaceOrderInput) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order items required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
	}

	method, ok := parsePaymentMethod(in.PaymentMethod)
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	//配送先は全て必須
	required := []struct {
		field string
		value string
	}{
		{"shipping_address", in.ShippingAddress},
		{"shipping_city", in.ShippingCity},
		{"shipping_state", in.ShippingState},
		{"shipping_zip_code", in.ShippingZipCode},
		{"shipping_country", in.ShippingCountry},
		{"customer_name", in.CustomerName},
		{"customer_phone", in.CustomerPhone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, f.field+" required")
		}
	}

	var out OrderOutput

	//注文処理は1トランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero
		now := time.Now()

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//非公開商品は存在しない扱い
			if !p.IsActive {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}

			//在庫減算（足りないなら false）。sold_countも同時に加算。
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict,
					fmt.Sprintf("insufficient stock for product: %s", p.Name))
			}

			//実売価格のスナップショット。以後のカタログ変更の影響を受けない。
			unit := p.EffectivePrice()
			subtotal := unit.Mul(decimal.NewFromInt(it.Quantity))

			orderItems = append(orderItems, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   unit,
				Quantity:            it.Quantity,
				Subtotal:            subtotal,
				CreatedAt:           now,
			})

			total = total.Add(subtotal)
		}

		order := model.Order{
			OrderNumber:     newOrderNumber(now),
			UserID:          actor.UserID,
			Status:          model.OrderStatusPending,
			TotalAmount:     total,
			PaymentMethod:   method,
			PaymentStatus:   model.PaymentStatusPending,
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			ShippingCity:    strings.TrimSpace(in.ShippingCity),
			ShippingState:   strings.TrimSpace(in.ShippingState),
			ShippingZipCode: strings.TrimSpace(in.ShippingZipCode),
			ShippingCountry: strings.TrimSpace(in.ShippingCountry),
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//確定メールは非同期・ベストエフォート。失敗しても注文は巻き戻さない。
	u.notifyConfirmation(ctx, out)

	return out, nil
}

func (u *OrderUsecase) notifyConfirmation(ctx context.Context, out OrderOutput) {
	owner, err := u.users.FindByID(ctx, out.UserID)
	if err != nil {
		logger.FromCtx(ctx).Warn("order confirmation skipped: owner lookup failed",
			zap.Int64("user_id", out.UserID),
			zap.Error(err))
		return
	}

	order, items := fromOrderOutput(out)
	u.notifier.OrderConfirmation(*owner, order, items)
}

// 自分の注文の一覧
func (u *OrderUsecase) ListMyOrders(ctx context.Context, actor Actor, page, limit int) (OrderListOutput, error) {
	if actor.UserID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, actor.UserID, page, limit)
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

		out = OrderListOutput{Items: outs, Total: total, Page: page, Limit: limit}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

// IDで取得。所有者か管理者のみ。
func (u *OrderUsecase) GetOrderByID(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.getOrder(ctx, actor, func(r repo.TxRepos) (model.Order, error) {
		return r.Orders().FindByID(ctx, orderID)
	})
}

// 注文番号で取得。所有者か管理者のみ。
func (u *OrderUsecase) GetOrderByOrderNumber(ctx context.Context, actor Actor, orderNumber string) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderNumber) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order number")
	}

	return u.getOrder(ctx, actor, func(r repo.TxRepos) (model.Order, error) {
		return r.Orders().FindByOrderNumber(ctx, orderNumber)
	})
}

func (u *OrderUsecase) getOrder(ctx context.Context, actor Actor, find func(r repo.TxRepos) (model.Order, error)) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := find(r)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.UserID != actor.UserID && !actor.IsAdmin() {
			return NewHTTPError(http.StatusForbidden, "access denied")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// キャンセル。所有者か管理者のみ、PENDING/CONFIRMEDのときだけ。
// 在庫とsold_countを作成時の逆に戻す（1回だけ）。通知は送らない。
func (u *OrderUsecase) CancelOrder(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.UserID != actor.UserID && !actor.IsAdmin() {
			return NewHTTPError(http.StatusForbidden, "access denied")
		}

		if !o.Status.CanCancel() {
			return NewHTTPError(http.StatusConflict,
				fmt.Sprintf("cannot cancel order in %s status", o.Status))
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫戻し
		for _, it := range items {
			if err := r.Inventory().RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func parsePaymentMethod(s string) (model.PaymentMethod, bool) {
	switch model.PaymentMethod(strings.TrimSpace(s)) {
	case model.PaymentMethodCreditCard:
		return model.PaymentMethodCreditCard, true
	case model.PaymentMethodCashOnDelivery:
		return model.PaymentMethodCashOnDelivery, true
	default:
		return "", false
	}
}

// 注文番号は一度振ったら変更しない。一意性はDBのunique indexで担保。
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		ShippingAddress: o.ShippingAddress,
		ShippingCity:    o.ShippingCity,
		ShippingState:   o.ShippingState,
		ShippingZipCode: o.ShippingZipCode,
		ShippingCountry: o.ShippingCountry,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}

// 通知用にOutputからモデルへ戻す
func fromOrderOutput(out OrderOutput) (model.Order, []model.OrderItem) {
	items := make([]model.OrderItem, 0, len(out.Items))
	for _, it := range out.Items {
		items = append(items, model.OrderItem{
			OrderID:             out.ID,
			ProductID:           it.ProductID,
			ProductNameSnapshot: it.Name,
			UnitPriceSnapshot:   it.UnitPrice,
			Quantity:            it.Quantity,
			Subtotal:            it.Subtotal,
		})
	}

	return model.Order{
		ID:              out.ID,
		OrderNumber:     out.OrderNumber,
		UserID:          out.UserID,
		Status:          model.OrderStatus(out.Status),
		TotalAmount:     out.TotalAmount,
		PaymentMethod:   model.PaymentMethod(out.PaymentMethod),
		PaymentStatus:   model.PaymentStatus(out.PaymentStatus),
		ShippingAddress: out.ShippingAddress,
		ShippingCity:    out.ShippingCity,
		ShippingState:   out.ShippingState,
		CustomerName:    out.CustomerName,
		CreatedAt:       out.CreatedAt,
	}, items
}
