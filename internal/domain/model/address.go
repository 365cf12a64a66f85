package model

import "time"

type Address struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	AddressLine string    `gorm:"type:text;not null" json:"address_line"`
	City        string    `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode  string    `gorm:"type:varchar(10);not null" json:"postal_code"`
	IsPrimary   bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
