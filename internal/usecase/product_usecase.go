package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
	stores   repo.StoreRepository
}

func NewProductUsecase(products repo.ProductRepository, stores repo.StoreRepository) *ProductUsecase {
	return &ProductUsecase{products: products, stores: stores}
}

type ProductCreateInput struct {
	CategoryID    *int64
	Name          string
	Description   string
	Price         int64
	StockQuantity int64
	SKU           string
}

// 商品作成。先に店舗を持っている必要がある
func (u *ProductUsecase) Create(ctx context.Context, identity model.Identity, in ProductCreateInput) (model.Product, error) {
	if identity.UserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 || in.StockQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "name, price and stock_quantity are required")
	}

	store, err := u.stores.FindByUserID(ctx, identity.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusForbidden, CodeForbidden, "you must create a store before selling products")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	created, err := u.products.Create(ctx, model.Product{
		StoreID:       store.ID,
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		SKU:           in.SKU,
		IsActive:      true,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) ListPublic(ctx context.Context) ([]repo.ProductListing, error) {
	items, err := u.products.ListActive(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return items, nil
}

// 部分更新の入力。nilのフィールドは現状維持（COALESCE相当）
type ProductUpdateInput struct {
	Name          *string
	Description   *string
	Price         *int64
	StockQuantity *int64
	CategoryID    *int64
	IsActive      *bool
}

func (u *ProductUsecase) Update(ctx context.Context, identity model.Identity, productID int64, in ProductUpdateInput) (model.Product, error) {
	if identity.UserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	//オーナーチェック（店舗経由）
	store, err := u.stores.FindByID(ctx, p.StoreID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	if store.UserID != identity.UserID && !identity.IsAdmin() {
		return model.Product{}, NewHTTPError(http.StatusForbidden, CodeForbidden, "you are not the owner of this product")
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "price must be positive")
		}
		p.Price = *in.Price
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "stock_quantity must not be negative")
		}
		p.StockQuantity = *in.StockQuantity
	}
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := u.products.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return p, nil
}
