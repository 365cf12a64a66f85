package model

import "time"

// 金額は最小通貨単位のint64で持つ（小数なし）。
type Product struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID       int64     `gorm:"not null;index" json:"store_id"`
	CategoryID    *int64    `gorm:"index" json:"category_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         int64     `gorm:"not null" json:"price"`
	StockQuantity int64     `gorm:"not null;default:0" json:"stock_quantity"`
	SKU           string    `gorm:"type:varchar(100)" json:"sku"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
