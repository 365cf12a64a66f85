package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	// ステータス遷移用。行ロック付きで取得する
	FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error)

	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	// 注文ID生成の衝突チェック
	Exists(ctx context.Context, orderID string) (bool, error)
}
