package repository

import (
	"context"

	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	products    repo.ProductRepository
	inventory   repo.InventoryRepository
	addresses   repo.AddressRepository
	stores      repo.StoreRepository
	ledger      repo.LedgerRepository
	withdrawals repo.WithdrawalRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository           { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *txReposGorm) Products() repo.ProductRepository       { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository    { return r.inventory }
func (r *txReposGorm) Addresses() repo.AddressRepository      { return r.addresses }
func (r *txReposGorm) Stores() repo.StoreRepository           { return r.stores }
func (r *txReposGorm) Ledger() repo.LedgerRepository          { return r.ledger }
func (r *txReposGorm) Withdrawals() repo.WithdrawalRepository { return r.withdrawals }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返せばgormがロールバックする。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:      NewOrderGormRepository(tx),
			orderItems:  NewOrderItemGormRepository(tx),
			products:    NewProductGormRepository(tx),
			inventory:   NewInventoryGormRepository(tx),
			addresses:   NewAddressGormRepository(tx),
			stores:      NewStoreGormRepository(tx),
			ledger:      NewLedgerGormRepository(tx),
			withdrawals: NewWithdrawalGormRepository(tx),
		}
		return fn(r)
	})
}
