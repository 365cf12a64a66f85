package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りて商品が有効なときだけ減算（条件付きUPDATEで直列化）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
