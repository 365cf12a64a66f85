package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, w model.Withdrawal) (model.Withdrawal, error)

	// 処理用。行ロック付きで取得する
	FindByIDForUpdate(ctx context.Context, withdrawalID int64) (model.Withdrawal, error)

	UpdateStatus(ctx context.Context, withdrawalID int64, status model.WithdrawalStatus, processedAt time.Time) error
	ListByStoreID(ctx context.Context, storeID int64) ([]model.Withdrawal, error)
}
