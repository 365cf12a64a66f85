package usecase

import (
	"context"
	"errors"
	"net/http"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type AddressInput struct {
	AddressLine string
	City        string
	PostalCode  string
	IsPrimary   bool
}

func (u *AddressUsecase) Create(ctx context.Context, identity model.Identity, in AddressInput) (model.Address, error) {
	if identity.UserID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if in.AddressLine == "" || in.City == "" || in.PostalCode == "" {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "address_line, city and postal_code are required")
	}

	//新しい住所を既定にするなら他を外す
	if in.IsPrimary {
		if err := u.addresses.ClearPrimary(ctx, identity.UserID, 0); err != nil {
			return model.Address{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
	}

	created, err := u.addresses.Create(ctx, model.Address{
		UserID:      identity.UserID,
		AddressLine: in.AddressLine,
		City:        in.City,
		PostalCode:  in.PostalCode,
		IsPrimary:   in.IsPrimary,
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return created, nil
}

func (u *AddressUsecase) List(ctx context.Context, identity model.Identity) ([]model.Address, error) {
	if identity.UserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	items, err := u.addresses.ListByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return items, nil
}

func (u *AddressUsecase) Update(ctx context.Context, identity model.Identity, addressID int64, in AddressInput) (model.Address, error) {
	if identity.UserID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}
	if in.AddressLine == "" || in.City == "" || in.PostalCode == "" {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "address_line, city and postal_code are required")
	}

	updated, err := u.addresses.UpdateOwned(ctx, identity.UserID, model.Address{
		ID:          addressID,
		AddressLine: in.AddressLine,
		City:        in.City,
		PostalCode:  in.PostalCode,
		IsPrimary:   in.IsPrimary,
	})
	if errors.Is(err, repo.ErrNotFound) {
		//他人の住所は「存在しない扱い」
		return model.Address{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "address not found")
	}
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	if in.IsPrimary {
		if err := u.addresses.ClearPrimary(ctx, identity.UserID, addressID); err != nil {
			return model.Address{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
	}
	return updated, nil
}
