package model

import "time"

type TransactionType string

const (
	TransactionTypeSale       TransactionType = "sale"
	TransactionTypeCommission TransactionType = "commission"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// Transactionは監査証跡。追記のみで、更新・削除はしない。
// Amountは符号付き（debitは負）。
type Transaction struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID      int64           `gorm:"not null;index" json:"store_id"`
	OrderItemID  *int64          `gorm:"index" json:"order_item_id"`
	WithdrawalID *int64          `gorm:"index" json:"withdrawal_id"`
	Type         TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Amount       int64           `gorm:"not null" json:"amount"`
	Description  string          `gorm:"type:text" json:"description"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
