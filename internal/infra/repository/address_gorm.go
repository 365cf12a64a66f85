package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type AddressGormRepository struct {
	db *gorm.DB
}

func NewAddressGormRepository(db *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{db: db}
}

func (r *AddressGormRepository) Create(ctx context.Context, address model.Address) (model.Address, error) {
	if err := r.db.WithContext(ctx).Create(&address).Error; err != nil {
		return model.Address{}, err
	}
	return address, nil
}

func (r *AddressGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	var items []model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary desc, created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AddressGormRepository) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

// 本人の行だけ更新。0件なら存在しないか他人の住所
func (r *AddressGormRepository) UpdateOwned(ctx context.Context, userID int64, address model.Address) (model.Address, error) {
	res := r.db.WithContext(ctx).Model(&model.Address{}).
		Where("id = ? AND user_id = ?", address.ID, userID).
		Updates(map[string]interface{}{
			"address_line": address.AddressLine,
			"city":         address.City,
			"postal_code":  address.PostalCode,
			"is_primary":   address.IsPrimary,
		})

	if res.Error != nil {
		return model.Address{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Address{}, repo.ErrNotFound
	}

	return r.FindByID(ctx, address.ID)
}

func (r *AddressGormRepository) ClearPrimary(ctx context.Context, userID int64, exceptID int64) error {
	q := r.db.WithContext(ctx).Model(&model.Address{}).Where("user_id = ?", userID)
	if exceptID > 0 {
		q = q.Where("id != ?", exceptID)
	}
	return q.Update("is_primary", false).Error
}
