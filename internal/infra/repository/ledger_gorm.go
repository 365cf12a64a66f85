package repository

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerGormRepositoryは残高行と取引ログを同じDB接続（通常はTx）で書く。
// 残高は取引ログの実体化ビューなので、ここ以外から更新してはならない。
type LedgerGormRepository struct {
	db *gorm.DB
}

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

func (r *LedgerGormRepository) FindBalanceByStoreID(ctx context.Context, storeID int64) (model.SellerBalance, error) {
	var b model.SellerBalance
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SellerBalance{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SellerBalance{}, err
	}
	return b, nil
}

// 売上計上。残高行が無ければ作成、あれば加算（upsert）。
// 同じ原子単位でsaleの取引ログを追記し、そのIDを返す。
func (r *LedgerGormRepository) Credit(ctx context.Context, storeID int64, amount int64, orderItemID int64, description string) (int64, error) {
	now := time.Now()

	bal := model.SellerBalance{
		StoreID:          storeID,
		AvailableBalance: amount,
		PendingBalance:   0,
		LastUpdated:      now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"available_balance": gorm.Expr("seller_balances.available_balance + ?", amount),
			"last_updated":      now,
		}),
	}).Create(&bal).Error
	if err != nil {
		return 0, err
	}

	tr := model.Transaction{
		StoreID:     storeID,
		OrderItemID: &orderItemID,
		Type:        model.TransactionTypeSale,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&tr).Error; err != nil {
		return 0, err
	}
	return tr.ID, nil
}

// 出金。残高行をFOR UPDATEでロックしてから減算する。
// 同時出金・同時配達によるlost updateを防ぐ
func (r *LedgerGormRepository) Debit(ctx context.Context, storeID int64, amount int64, withdrawalID int64, description string) error {
	var bal model.SellerBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ?", storeID).
		First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrInsufficientFunds
	}
	if err != nil {
		return err
	}
	if bal.AvailableBalance < amount {
		return repo.ErrInsufficientFunds
	}

	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.SellerBalance{}).
		Where("store_id = ?", storeID).
		Updates(map[string]interface{}{
			"available_balance": gorm.Expr("available_balance - ?", amount),
			"last_updated":      now,
		})
	if res.Error != nil {
		return res.Error
	}

	tr := model.Transaction{
		StoreID:      storeID,
		WithdrawalID: &withdrawalID,
		Type:         model.TransactionTypeWithdrawal,
		Amount:       -amount,
		Description:  description,
		CreatedAt:    now,
	}
	return r.db.WithContext(ctx).Create(&tr).Error
}

// 出金失敗時の返金。残高へ戻してrefundのログを残す
func (r *LedgerGormRepository) Refund(ctx context.Context, storeID int64, amount int64, withdrawalID int64, description string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.SellerBalance{}).
		Where("store_id = ?", storeID).
		Updates(map[string]interface{}{
			"available_balance": gorm.Expr("available_balance + ?", amount),
			"last_updated":      now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	tr := model.Transaction{
		StoreID:      storeID,
		WithdrawalID: &withdrawalID,
		Type:         model.TransactionTypeRefund,
		Amount:       amount,
		Description:  description,
		CreatedAt:    now,
	}
	return r.db.WithContext(ctx).Create(&tr).Error
}

// 購入者の注文に紐づく取引履歴
func (r *LedgerGormRepository) ListByBuyer(ctx context.Context, userID int64) ([]repo.BuyerTransaction, error) {
	var items []repo.BuyerTransaction
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("t.id, t.type, t.amount, t.description, t.created_at, o.id AS order_id, s.name AS store_name").
		Joins("JOIN order_items oi ON t.order_item_id = oi.id").
		Joins("JOIN orders o ON oi.order_id = o.id").
		Joins("JOIN stores s ON t.store_id = s.id").
		Where("o.user_id = ?", userID).
		Order("t.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
