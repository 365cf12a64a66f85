package model

import "time"

// SellerBalanceは店舗ごとに1行。クライアントから直接書き換えることはなく、
// Ledgerのcredit/debit経由でのみ増減する（取引ログの実体化ビュー）。
type SellerBalance struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID          int64     `gorm:"not null;uniqueIndex" json:"store_id"`
	AvailableBalance int64     `gorm:"not null;default:0" json:"available_balance"`
	PendingBalance   int64     `gorm:"not null;default:0" json:"pending_balance"`
	LastUpdated      time.Time `gorm:"not null" json:"last_updated"`
}
