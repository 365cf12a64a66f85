package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error)
	List(ctx context.Context) ([]model.ProductCategory, error)
	Update(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error)
}
