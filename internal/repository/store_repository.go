package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 店舗の永続化。1ユーザー1店舗はuser_idのunique制約で守る。
type StoreRepository interface {
	Create(ctx context.Context, store model.Store) (model.Store, error)
	FindByID(ctx context.Context, storeID int64) (model.Store, error)

	// 出品者本人の店舗を引く（財務系・出品系の起点）
	FindByUserID(ctx context.Context, userID int64) (model.Store, error)

	List(ctx context.Context) ([]model.Store, error)
	Update(ctx context.Context, store model.Store) error
}
