package repository

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain/model"
)

var ErrInsufficientFunds = errors.New("not enough balance")

// 購入者向けの取引履歴（注文・店舗名をJOINした結果）
type BuyerTransaction struct {
	ID          int64                 `json:"id"`
	Type        model.TransactionType `json:"type"`
	Amount      int64                 `json:"amount"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"created_at"`
	OrderID     string                `json:"order_id"`
	StoreName   string                `json:"store_name"`
}

// LedgerRepositoryは残高の唯一の変更経路。
// Credit/Debit/Refundはいずれも残高調整と取引ログの追記を同じ原子単位で行う。
// 呼び出しは必ずTransactionManagerのトランザクション内で行うこと。
type LedgerRepository interface {
	FindBalanceByStoreID(ctx context.Context, storeID int64) (model.SellerBalance, error)

	// 売上計上。残高行が無ければ作成、あれば加算し、saleの取引ログを追記する。
	// 追記した取引のIDを返す。
	Credit(ctx context.Context, storeID int64, amount int64, orderItemID int64, description string) (int64, error)

	// 出金。残高行をロックし、available不足ならErrInsufficientFunds。
	// 成功時はwithdrawalの取引ログ（負額）を追記する。
	Debit(ctx context.Context, storeID int64, amount int64, withdrawalID int64, description string) error

	// 出金失敗時の返金。残高へ戻し、refundの取引ログを追記する。
	Refund(ctx context.Context, storeID int64, amount int64, withdrawalID int64, description string) error

	ListByBuyer(ctx context.Context, userID int64) ([]BuyerTransaction, error)
}
