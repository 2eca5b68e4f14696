package repository

import (
	"context"

	"cosmeshop/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫が足りるときだけ減算し、sold_countを加算する
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセル）。sold_countも減らし、作成時の逆操作になる。
	RestoreStock(ctx context.Context, productID int64, qty int64) error

	// 在庫の現在値を設定（管理者の在庫修正）
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.StockAdjustment) error
}
