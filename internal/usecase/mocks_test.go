package usecase_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.User)
	return items, args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, address model.Address) (model.Address, error) {
	args := m.Called(ctx, address)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Address)
	return items, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) UpdateOwned(ctx context.Context, userID int64, address model.Address) (model.Address, error) {
	args := m.Called(ctx, userID, address)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ClearPrimary(ctx context.Context, userID int64, exceptID int64) error {
	args := m.Called(ctx, userID, exceptID)
	return args.Error(0)
}

type StoreRepoMock struct{ mock.Mock }

func (m *StoreRepoMock) Create(ctx context.Context, store model.Store) (model.Store, error) {
	args := m.Called(ctx, store)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) FindByID(ctx context.Context, storeID int64) (model.Store, error) {
	args := m.Called(ctx, storeID)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Store, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) List(ctx context.Context) ([]model.Store, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Store)
	return items, args.Error(1)
}

func (m *StoreRepoMock) Update(ctx context.Context, store model.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) Create(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	args := m.Called(ctx, category)
	c, _ := args.Get(0).(model.ProductCategory)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.ProductCategory, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.ProductCategory)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	args := m.Called(ctx, category)
	c, _ := args.Get(0).(model.ProductCategory)
	return c, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListActive(ctx context.Context) ([]repo.ProductListing, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]repo.ProductListing)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Exists(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, items []model.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) MarkCredited(ctx context.Context, orderItemID int64, saleTransactionID int64) error {
	args := m.Called(ctx, orderItemID, saleTransactionID)
	return args.Error(0)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, review model.Review) (model.Review, error) {
	args := m.Called(ctx, review)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]repo.ReviewListing, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]repo.ReviewListing)
	return items, args.Error(1)
}

type LedgerRepoMock struct{ mock.Mock }

func (m *LedgerRepoMock) FindBalanceByStoreID(ctx context.Context, storeID int64) (model.SellerBalance, error) {
	args := m.Called(ctx, storeID)
	b, _ := args.Get(0).(model.SellerBalance)
	return b, args.Error(1)
}

func (m *LedgerRepoMock) Credit(ctx context.Context, storeID int64, amount int64, orderItemID int64, description string) (int64, error) {
	args := m.Called(ctx, storeID, amount, orderItemID, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LedgerRepoMock) Debit(ctx context.Context, storeID int64, amount int64, withdrawalID int64, description string) error {
	args := m.Called(ctx, storeID, amount, withdrawalID, description)
	return args.Error(0)
}

func (m *LedgerRepoMock) Refund(ctx context.Context, storeID int64, amount int64, withdrawalID int64, description string) error {
	args := m.Called(ctx, storeID, amount, withdrawalID, description)
	return args.Error(0)
}

func (m *LedgerRepoMock) ListByBuyer(ctx context.Context, userID int64) ([]repo.BuyerTransaction, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]repo.BuyerTransaction)
	return items, args.Error(1)
}

type WithdrawalRepoMock struct{ mock.Mock }

func (m *WithdrawalRepoMock) Create(ctx context.Context, w model.Withdrawal) (model.Withdrawal, error) {
	args := m.Called(ctx, w)
	created, _ := args.Get(0).(model.Withdrawal)
	return created, args.Error(1)
}

func (m *WithdrawalRepoMock) FindByIDForUpdate(ctx context.Context, withdrawalID int64) (model.Withdrawal, error) {
	args := m.Called(ctx, withdrawalID)
	w, _ := args.Get(0).(model.Withdrawal)
	return w, args.Error(1)
}

func (m *WithdrawalRepoMock) UpdateStatus(ctx context.Context, withdrawalID int64, status model.WithdrawalStatus, processedAt time.Time) error {
	args := m.Called(ctx, withdrawalID, status, processedAt)
	return args.Error(0)
}

func (m *WithdrawalRepoMock) ListByStoreID(ctx context.Context, storeID int64) ([]model.Withdrawal, error) {
	args := m.Called(ctx, storeID)
	items, _ := args.Get(0).([]model.Withdrawal)
	return items, args.Error(1)
}

// =====================
// TxManager（固定のTxReposに対してクロージャを即実行する）
// =====================

type txReposStub struct {
	orders      *OrderRepoMock
	orderItems  *OrderItemRepoMock
	products    *ProductRepoMock
	inventory   *InventoryRepoMock
	addresses   *AddressRepoMock
	stores      *StoreRepoMock
	ledger      *LedgerRepoMock
	withdrawals *WithdrawalRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		orders:      new(OrderRepoMock),
		orderItems:  new(OrderItemRepoMock),
		products:    new(ProductRepoMock),
		inventory:   new(InventoryRepoMock),
		addresses:   new(AddressRepoMock),
		stores:      new(StoreRepoMock),
		ledger:      new(LedgerRepoMock),
		withdrawals: new(WithdrawalRepoMock),
	}
}

func (s *txReposStub) Orders() repo.OrderRepository           { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository   { return s.orderItems }
func (s *txReposStub) Products() repo.ProductRepository       { return s.products }
func (s *txReposStub) Inventory() repo.InventoryRepository    { return s.inventory }
func (s *txReposStub) Addresses() repo.AddressRepository      { return s.addresses }
func (s *txReposStub) Stores() repo.StoreRepository           { return s.stores }
func (s *txReposStub) Ledger() repo.LedgerRepository          { return s.ledger }
func (s *txReposStub) Withdrawals() repo.WithdrawalRepository { return s.withdrawals }

var _ repo.TxRepos = (*txReposStub)(nil)

type txManagerStub struct {
	repos *txReposStub
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// ヘルパー
// =====================

func assertHTTPError(t *testing.T, err error, wantStatus int, wantCode string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, wantStatus, he.Status)
		assert.Equal(t, wantCode, he.Code)
	}
}
