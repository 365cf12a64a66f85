package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) Create(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	err := r.db.WithContext(ctx).Create(&category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ProductCategory{}, repo.ErrConflict
	}
	if err != nil {
		return model.ProductCategory{}, err
	}
	return category, nil
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.ProductCategory, error) {
	var items []model.ProductCategory
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	res := r.db.WithContext(ctx).Model(&model.ProductCategory{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
		})

	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return model.ProductCategory{}, repo.ErrConflict
	}
	if res.Error != nil {
		return model.ProductCategory{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.ProductCategory{}, repo.ErrNotFound
	}

	var out model.ProductCategory
	if err := r.db.WithContext(ctx).Where("id = ?", category.ID).First(&out).Error; err != nil {
		return model.ProductCategory{}, err
	}
	return out, nil
}
