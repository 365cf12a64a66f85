package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//ユーザーが持つ住所一覧を返す
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)

	//住所IDから住所を1件取得
	FindByID(ctx context.Context, addressID int64) (model.Address, error)

	//本人の住所だけ更新できる（他人のものならErrNotFound）
	UpdateOwned(ctx context.Context, userID int64, address model.Address) (model.Address, error)

	//既定住所の切り替え（exceptID以外をis_primary=falseへ）
	ClearPrimary(ctx context.Context, userID int64, exceptID int64) error
}
