package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
)

// レビュー一覧用（投稿者名をJOINした結果）
type ReviewListing struct {
	ID           int64     `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	ReviewerName string    `json:"reviewer_name"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (model.Review, error)
	ListByProductID(ctx context.Context, productID int64) ([]ReviewListing, error)
}
