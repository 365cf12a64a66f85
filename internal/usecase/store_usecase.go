package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type StoreUsecase struct {
	stores repo.StoreRepository
}

func NewStoreUsecase(stores repo.StoreRepository) *StoreUsecase {
	return &StoreUsecase{stores: stores}
}

type StoreInput struct {
	Name        string
	Description string
	LogoURL     string
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// 店名からslugを作る
func slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// 店舗作成。1ユーザー1店舗
func (u *StoreUsecase) Create(ctx context.Context, identity model.Identity, in StoreInput) (model.Store, error) {
	if identity.UserID <= 0 {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "store name is required")
	}

	//既に持っていたら409
	if _, err := u.stores.FindByUserID(ctx, identity.UserID); err == nil {
		return model.Store{}, NewHTTPError(http.StatusConflict, CodeConflict, "you already have a store")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	created, err := u.stores.Create(ctx, model.Store{
		UserID:      identity.UserID,
		Name:        in.Name,
		Slug:        slugify(in.Name),
		Description: in.Description,
		LogoURL:     in.LogoURL,
	})
	if errors.Is(err, repo.ErrConflict) {
		return model.Store{}, NewHTTPError(http.StatusConflict, CodeConflict, "store name or slug already taken")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return created, nil
}

func (u *StoreUsecase) List(ctx context.Context) ([]model.Store, error) {
	items, err := u.stores.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return items, nil
}

func (u *StoreUsecase) Get(ctx context.Context, storeID int64) (model.Store, error) {
	if storeID <= 0 {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}
	s, err := u.stores.FindByID(ctx, storeID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Store{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "store not found")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return s, nil
}

// 店舗更新。オーナーかadminのみ
func (u *StoreUsecase) Update(ctx context.Context, identity model.Identity, storeID int64, in StoreInput) (model.Store, error) {
	if identity.UserID <= 0 {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "store name is required")
	}

	s, err := u.stores.FindByID(ctx, storeID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Store{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "store not found")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	if s.UserID != identity.UserID && !identity.IsAdmin() {
		return model.Store{}, NewHTTPError(http.StatusForbidden, CodeForbidden, "you are not the owner of this store")
	}

	s.Name = in.Name
	s.Slug = slugify(in.Name)
	s.Description = in.Description
	s.LogoURL = in.LogoURL

	err = u.stores.Update(ctx, s)
	if errors.Is(err, repo.ErrConflict) {
		return model.Store{}, NewHTTPError(http.StatusConflict, CodeConflict, "store name or slug already taken")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return s, nil
}
