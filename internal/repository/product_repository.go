package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// unique制約違反（email重複・slug重複など）
var ErrConflict = errors.New("conflict")

// 公開一覧用（店舗名・カテゴリ名をJOINした結果）
type ProductListing struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         int64   `json:"price"`
	StockQuantity int64   `json:"stock_quantity"`
	IsActive      bool    `json:"is_active"`
	StoreName     string  `json:"store_name"`
	CategoryName  *string `json:"category_name"`
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListActive(ctx context.Context) ([]ProductListing, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
}
