package model

// PricePerItemは注文時点のスナップショット。商品価格が変わっても不変。
// SaleTransactionIDは配達時の売上計上済みマーク（二重計上ガード）。
type OrderItem struct {
	ID                int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           string `gorm:"type:varchar(50);not null;index" json:"order_id"`
	ProductID         int64  `gorm:"not null;index" json:"product_id"`
	StoreID           int64  `gorm:"not null;index" json:"store_id"`
	Quantity          int64  `gorm:"not null" json:"quantity"`
	PricePerItem      int64  `gorm:"not null" json:"price_per_item"`
	SaleTransactionID *int64 `gorm:"index" json:"-"`
}
