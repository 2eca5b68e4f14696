package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 前進専用の順序（CANCELLEDは別経路なので含めない）
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// sがnextへ前進できるか。同じ値はno-op扱いで呼び出し側が判断する。
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	cur, ok1 := orderStatusRank[s]
	nxt, ok2 := orderStatusRank[next]
	if !ok1 || !ok2 {
		return false
	}
	return nxt > cur
}

// キャンセル可能なのはPENDING/CONFIRMEDのみ
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string          `gorm:"type:varchar(30);not null;uniqueIndex" json:"order_number"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`

	ShippingAddress string `gorm:"type:varchar(255);not null" json:"shipping_address"`
	ShippingCity    string `gorm:"type:varchar(100);not null" json:"shipping_city"`
	ShippingState   string `gorm:"type:varchar(100);not null" json:"shipping_state"`
	ShippingZipCode string `gorm:"type:varchar(20);not null" json:"shipping_zip_code"`
	ShippingCountry string `gorm:"type:varchar(100);not null" json:"shipping_country"`

	CustomerName  string `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20);not null" json:"customer_phone"`
	CustomerEmail string `gorm:"type:varchar(100)" json:"customer_email"`
	Notes         string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
