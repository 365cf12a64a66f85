package model

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusProcessed WithdrawalStatus = "processed"
	WithdrawalStatusFailed    WithdrawalStatus = "failed"
)

// 申請時点で残高から引き落とす（処理完了時ではない）。
type Withdrawal struct {
	ID              int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID         int64            `gorm:"not null;index" json:"store_id"`
	Amount          int64            `gorm:"not null" json:"amount"`
	Status          WithdrawalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	BankAccountInfo string           `gorm:"type:text" json:"bank_account_info"`
	RequestedAt     time.Time        `gorm:"not null;autoCreateTime" json:"requested_at"`
	ProcessedAt     *time.Time       `json:"processed_at"`
}
