package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

type CategoryInput struct {
	Name        string
	Description string
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.ProductCategory, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.ProductCategory{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "category name is required")
	}

	created, err := u.categories.Create(ctx, model.ProductCategory{
		Name:        in.Name,
		Description: in.Description,
	})
	if errors.Is(err, repo.ErrConflict) {
		return model.ProductCategory{}, NewHTTPError(http.StatusConflict, CodeConflict, "category name already exists")
	}
	if err != nil {
		return model.ProductCategory{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return created, nil
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.ProductCategory, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return items, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, categoryID int64, in CategoryInput) (model.ProductCategory, error) {
	if categoryID <= 0 {
		return model.ProductCategory{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.ProductCategory{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "category name is required")
	}

	updated, err := u.categories.Update(ctx, model.ProductCategory{
		ID:          categoryID,
		Name:        in.Name,
		Description: in.Description,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.ProductCategory{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "category not found")
	}
	if errors.Is(err, repo.ErrConflict) {
		return model.ProductCategory{}, NewHTTPError(http.StatusConflict, CodeConflict, "category name already exists")
	}
	if err != nil {
		return model.ProductCategory{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return updated, nil
}
