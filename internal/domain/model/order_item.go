package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemは作成後は不変。単価は注文時点の実売価格のスナップショット。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(200);not null" json:"product_name"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	Subtotal            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
