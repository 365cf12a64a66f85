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

type WithdrawalGormRepository struct {
	db *gorm.DB
}

func NewWithdrawalGormRepository(db *gorm.DB) *WithdrawalGormRepository {
	return &WithdrawalGormRepository{db: db}
}

func (r *WithdrawalGormRepository) Create(ctx context.Context, w model.Withdrawal) (model.Withdrawal, error) {
	if err := r.db.WithContext(ctx).Create(&w).Error; err != nil {
		return model.Withdrawal{}, err
	}
	return w, nil
}

func (r *WithdrawalGormRepository) FindByIDForUpdate(ctx context.Context, withdrawalID int64) (model.Withdrawal, error) {
	var w model.Withdrawal
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", withdrawalID).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Withdrawal{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Withdrawal{}, err
	}
	return w, nil
}

func (r *WithdrawalGormRepository) UpdateStatus(ctx context.Context, withdrawalID int64, status model.WithdrawalStatus, processedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Withdrawal{}).
		Where("id = ?", withdrawalID).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": processedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WithdrawalGormRepository) ListByStoreID(ctx context.Context, storeID int64) ([]model.Withdrawal, error) {
	var items []model.Withdrawal
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("requested_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
