package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]repo.ReviewListing, error) {
	var items []repo.ReviewListing
	err := r.db.WithContext(ctx).
		Table("reviews AS r").
		Select("r.id, r.rating, r.comment, r.created_at, u.full_name AS reviewer_name").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.product_id = ?", productID).
		Order("r.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
