package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)

	// 売上計上済みマーク。配達遷移の二重計上ガード
	MarkCredited(ctx context.Context, orderItemID int64, saleTransactionID int64) error
}
