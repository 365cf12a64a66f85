package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusFailed    OrderStatus = "failed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusFailed:
		return true
	}
	return false
}

// 許可される遷移。同一ステータスへの再設定はusecase側でno-op扱い。
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusShipped: {OrderStatusDelivered, OrderStatusFailed},
	// delivered / cancelled / failed は終端
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderのIDは "ORD-XXXXXXXX" 形式の不透明な文字列。
// TotalAmountとShippingAddressは作成時のスナップショットで、以後再計算しない。
type Order struct {
	ID               string      `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID           int64       `gorm:"not null;index" json:"user_id"`
	TotalAmount      int64       `gorm:"not null" json:"total_amount"`
	ShippingAddress  string      `gorm:"type:text;not null" json:"shipping_address"`
	ShippingProvider string      `gorm:"type:varchar(50)" json:"shipping_provider"`
	TrackingNumber   string      `gorm:"type:varchar(100)" json:"tracking_number"`
	Status           OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt        time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
