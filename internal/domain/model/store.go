package model

import "time"

// Storeは出品者の店舗。1ユーザー1店舗。
type Store struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	LogoURL     string    `gorm:"type:varchar(255)" json:"logo_url"`
	IsVerified  bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
