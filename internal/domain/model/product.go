package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string           `gorm:"type:varchar(200);not null" json:"name"`
	Description   string           `gorm:"type:text" json:"description"`
	Price         decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"price"`
	DiscountPrice *decimal.Decimal `gorm:"type:numeric(10,2)" json:"discount_price,omitempty"`
	StockQuantity int64            `gorm:"not null;default:0" json:"stock_quantity"`
	SoldCount     int64            `gorm:"not null;default:0" json:"sold_count"`
	ViewCount     int64            `gorm:"not null;default:0" json:"view_count"`
	ImageURL      string           `gorm:"type:varchar(500)" json:"image_url"`

	// 商品スペック
	Size        string `gorm:"type:varchar(50)" json:"size"`
	Weight      string `gorm:"type:varchar(50)" json:"weight"`
	Ingredients string `gorm:"type:text" json:"ingredients"`

	CategoryID *int64    `gorm:"index" json:"category_id"`
	BrandID    *int64    `gorm:"index" json:"brand_id"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	IsFeatured bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 割引価格がある（price未満）かどうか
func (p Product) HasDiscount() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

// 実売価格。割引があれば割引価格、なければ定価。
func (p Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Product) IsInStock() bool {
	return p.StockQuantity > 0
}
