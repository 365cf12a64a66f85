package usecase

import (
	"context"
	"errors"
	"net/http"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ReviewUsecase struct {
	reviews  repo.ReviewRepository
	products repo.ProductRepository
}

func NewReviewUsecase(reviews repo.ReviewRepository, products repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, products: products}
}

type ReviewInput struct {
	ProductID int64
	Rating    int
	Comment   string
}

func (u *ReviewUsecase) Create(ctx context.Context, identity model.Identity, in ReviewInput) (model.Review, error) {
	if identity.UserID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 || in.Rating == 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "product_id and rating are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "rating must be between 1 and 5")
	}

	//商品の存在確認
	if _, err := u.products.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Review{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "product not found")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	created, err := u.reviews.Create(ctx, model.Review{
		UserID:    identity.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	})
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return created, nil
}

func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID int64) ([]repo.ReviewListing, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid product id")
	}
	items, err := u.reviews.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return items, nil
}
