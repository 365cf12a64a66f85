package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductUsecase_Create_RequiresStore(t *testing.T) {
	products := new(ProductRepoMock)
	stores := new(StoreRepoMock)
	uc := usecase.NewProductUsecase(products, stores)

	stores.On("FindByUserID", mock.Anything, int64(2)).Return(model.Store{}, repo.ErrNotFound)

	_, err := uc.Create(context.Background(), seller, usecase.ProductCreateInput{
		Name: "Coffee Beans", Price: 1200, StockQuantity: 10,
	})
	assertHTTPError(t, err, http.StatusForbidden, usecase.CodeForbidden)
}

func TestProductUsecase_Create_Success(t *testing.T) {
	products := new(ProductRepoMock)
	stores := new(StoreRepoMock)
	uc := usecase.NewProductUsecase(products, stores)

	stores.On("FindByUserID", mock.Anything, int64(2)).Return(model.Store{ID: 7, UserID: 2}, nil)

	var created model.Product
	products.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(model.Product)
	}).Return(model.Product{ID: 10, StoreID: 7, Name: "Coffee Beans", Price: 1200, IsActive: true}, nil)

	out, err := uc.Create(context.Background(), seller, usecase.ProductCreateInput{
		Name: "Coffee Beans", Price: 1200, StockQuantity: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
	//店舗IDは本人の店舗に固定され、新商品は必ずactive
	assert.Equal(t, int64(7), created.StoreID)
	assert.True(t, created.IsActive)
}

func TestProductUsecase_Create_InvalidPrice(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(StoreRepoMock))

	_, err := uc.Create(context.Background(), seller, usecase.ProductCreateInput{
		Name: "Coffee Beans", Price: 0, StockQuantity: 10,
	})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeValidation)
}

func TestProductUsecase_Update_PartialFieldsOnly(t *testing.T) {
	products := new(ProductRepoMock)
	stores := new(StoreRepoMock)
	uc := usecase.NewProductUsecase(products, stores)

	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{
		ID: 10, StoreID: 7, Name: "Coffee Beans", Description: "dark roast",
		Price: 1200, StockQuantity: 10, IsActive: true,
	}, nil)
	stores.On("FindByID", mock.Anything, int64(7)).Return(model.Store{ID: 7, UserID: 2}, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	newPrice := int64(1500)
	out, err := uc.Update(context.Background(), seller, 10, usecase.ProductUpdateInput{Price: &newPrice})

	assert.NoError(t, err)
	//渡したpriceだけ変わり、他のフィールドは維持される
	assert.Equal(t, int64(1500), out.Price)
	assert.Equal(t, "Coffee Beans", out.Name)
	assert.Equal(t, "dark roast", out.Description)
	assert.Equal(t, int64(10), out.StockQuantity)
}

func TestProductUsecase_Update_NotOwner(t *testing.T) {
	products := new(ProductRepoMock)
	stores := new(StoreRepoMock)
	uc := usecase.NewProductUsecase(products, stores)

	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, StoreID: 8}, nil)
	stores.On("FindByID", mock.Anything, int64(8)).Return(model.Store{ID: 8, UserID: 99}, nil)

	newPrice := int64(1500)
	_, err := uc.Update(context.Background(), seller, 10, usecase.ProductUpdateInput{Price: &newPrice})
	assertHTTPError(t, err, http.StatusForbidden, usecase.CodeForbidden)
}

func TestProductUsecase_Update_NegativeStock(t *testing.T) {
	products := new(ProductRepoMock)
	stores := new(StoreRepoMock)
	uc := usecase.NewProductUsecase(products, stores)

	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, StoreID: 7}, nil)
	stores.On("FindByID", mock.Anything, int64(7)).Return(model.Store{ID: 7, UserID: 2}, nil)

	bad := int64(-1)
	_, err := uc.Update(context.Background(), seller, 10, usecase.ProductUpdateInput{StockQuantity: &bad})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeValidation)
}
