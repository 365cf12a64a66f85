package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	logger *zap.SugaredLogger
}

func NewOrderUsecase(tx repo.TransactionManager, logger *zap.SugaredLogger) *OrderUsecase {
	return &OrderUsecase{tx: tx, logger: logger}
}

type CheckoutItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CheckoutInput struct {
	Items            []CheckoutItemInput
	AddressID        int64
	ShippingProvider string
}

type CheckoutOutput struct {
	OrderID     string    `json:"order_id"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ItemsCount  int       `json:"items_count"`
}

type OrderItemOutput struct {
	ProductID    int64  `json:"product_id"`
	StoreID      int64  `json:"store_id"`
	Quantity     int64  `json:"quantity"`
	PricePerItem int64  `json:"price_per_item"`
}

type OrderOutput struct {
	ID               string            `json:"id"`
	UserID           int64             `json:"user_id"`
	Status           string            `json:"status"`
	TotalAmount      int64             `json:"total_amount"`
	ShippingAddress  string            `json:"shipping_address"`
	ShippingProvider string            `json:"shipping_provider"`
	CreatedAt        time.Time         `json:"created_at"`
	Items            []OrderItemOutput `json:"items,omitempty"`
}

const defaultShippingProvider = "default_courier"

// チェックアウト。住所スナップショット→在庫減算→注文+明細作成を
// 1トランザクションで行う。途中で失敗したら在庫減算ごと全部戻る。
func (u *OrderUsecase) Checkout(ctx context.Context, identity model.Identity, in CheckoutInput) (CheckoutOutput, error) {
	if identity.UserID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "order items are required")
	}
	if in.AddressID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "address_id is required")
	}
	for _, item := range in.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid product_id or quantity")
		}
	}

	provider := strings.TrimSpace(in.ShippingProvider)
	if provider == "" {
		provider = defaultShippingProvider
	}

	var out CheckoutOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//住所の存在確認＋所有チェック。スナップショットとして固定する
		addr, err := r.Addresses().FindByID(ctx, in.AddressID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "address not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		if addr.UserID != identity.UserID {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "address not found")
		}
		shippingAddress := fmt.Sprintf("%s, %s, %s", addr.AddressLine, addr.City, addr.PostalCode)

		//注文ID生成（衝突したら引き直す）
		orderID, err := u.newOrderID(ctx, r.Orders())
		if err != nil {
			return err
		}

		//在庫を確認しながら減らし、スナップショット価格で合計する
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total int64 = 0

		for _, item := range in.Items {
			p, err := r.Products().FindByID(ctx, item.ProductID)
			if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
				return NewHTTPError(http.StatusBadRequest, CodeInsufficientStock,
					fmt.Sprintf("product %d is unavailable or out of stock", item.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, CodeInsufficientStock,
					fmt.Sprintf("product %d is unavailable or out of stock", item.ProductID))
			}

			orderItems = append(orderItems, model.OrderItem{
				OrderID:      orderID,
				ProductID:    item.ProductID,
				StoreID:      p.StoreID,
				Quantity:     item.Quantity,
				PricePerItem: p.Price,
			})
			total += p.Price * item.Quantity
		}

		// 注文作成（pendingで固定）
		order := model.Order{
			ID:               orderID,
			UserID:           identity.UserID,
			TotalAmount:      total,
			ShippingAddress:  shippingAddress,
			ShippingProvider: provider,
			Status:           model.OrderStatusPending,
			CreatedAt:        now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		out = CheckoutOutput{
			OrderID:     orderID,
			TotalAmount: total,
			Status:      string(model.OrderStatusPending),
			CreatedAt:   now,
			ItemsCount:  len(orderItems),
		}
		return nil
	})

	if err != nil {
		return CheckoutOutput{}, err
	}

	u.logger.Infow("order placed",
		"order_id", out.OrderID,
		"user_id", identity.UserID,
		"total_amount", out.TotalAmount,
		"items", out.ItemsCount,
	)
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, identity model.Identity) ([]OrderOutput, error) {
	if identity.UserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}

	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, identity.UserID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o, nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrderDetail(ctx context.Context, identity model.Identity, orderID string) (OrderOutput, error) {
	if identity.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderID) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid order id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		//他人の注文は「存在しない扱い」にする（adminは可）
		if o.UserID != identity.UserID && !identity.IsAdmin() {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type UpdateStatusInput struct {
	NewStatus string
}

type UpdateStatusOutput struct {
	OrderID   string `json:"order_id"`
	NewStatus string `json:"new_status"`
}

// ステータス遷移。deliveredに到達した瞬間、各明細を1回だけ売上計上する。
// 残高加算・取引ログ・ステータス更新は同一トランザクション。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, identity model.Identity, orderID string, in UpdateStatusInput) (UpdateStatusOutput, error) {
	if identity.UserID <= 0 {
		return UpdateStatusOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if !identity.IsSeller() && !identity.IsAdmin() {
		return UpdateStatusOutput{}, NewHTTPError(http.StatusForbidden, CodeForbidden, "seller or admin role required")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.NewStatus))
	if !newStatus.Valid() {
		return UpdateStatusOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid status")
	}

	var credited int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文行をロックして同時遷移を直列化する
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		//出品者は自店舗の明細を含む注文だけ触れる
		if identity.IsSeller() {
			store, err := r.Stores().FindByUserID(ctx, identity.UserID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusForbidden, CodeForbidden, "you do not own a store in this order")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}
			owns := false
			for _, it := range items {
				if it.StoreID == store.ID {
					owns = true
					break
				}
			}
			if !owns {
				return NewHTTPError(http.StatusForbidden, CodeForbidden, "you do not own a store in this order")
			}
		}

		// 同じステータスへの再設定はno-op（再配達しても再計上しない）
		if o.Status == newStatus {
			return nil
		}
		if !o.Status.CanTransitionTo(newStatus) {
			return NewHTTPError(http.StatusBadRequest, CodeValidation,
				fmt.Sprintf("cannot transition from %s to %s", o.Status, newStatus))
		}

		//配達完了: 明細ごとに1回だけ売上計上
		if newStatus == model.OrderStatusDelivered {
			for _, it := range items {
				if it.SaleTransactionID != nil {
					continue // 計上済み
				}
				credit := it.PricePerItem * it.Quantity
				txID, err := r.Ledger().Credit(ctx, it.StoreID, credit, it.ID,
					fmt.Sprintf("sale of order item %d (order %s)", it.ID, orderID))
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
				}
				if err := r.OrderItems().MarkCredited(ctx, it.ID, txID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
				}
				credited += credit
			}
		}

		//キャンセル: 在庫を戻す
		if newStatus == model.OrderStatusCancelled {
			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		return nil
	})

	if err != nil {
		return UpdateStatusOutput{}, err
	}

	if credited > 0 {
		u.logger.Infow("order delivered, seller balances credited",
			"order_id", orderID,
			"credited_total", credited,
		)
	}
	return UpdateStatusOutput{OrderID: orderID, NewStatus: string(newStatus)}, nil
}

// "ORD-XXXXXXXX"。uuid由来の8桁hexで十分散るが、念のため衝突チェック
func (u *OrderUsecase) newOrderID(ctx context.Context, orders repo.OrderRepository) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		raw := uuid.New()
		id := "ORD-" + strings.ToUpper(hex.EncodeToString(raw[:4]))

		exists, err := orders.Exists(ctx, id)
		if err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		if !exists {
			return id, nil
		}
	}
	return "", NewHTTPError(http.StatusInternalServerError, CodeInternal, "could not allocate order id")
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:    it.ProductID,
			StoreID:      it.StoreID,
			Quantity:     it.Quantity,
			PricePerItem: it.PricePerItem,
		})
	}

	return OrderOutput{
		ID:               o.ID,
		UserID:           o.UserID,
		Status:           string(o.Status),
		TotalAmount:      o.TotalAmount,
		ShippingAddress:  o.ShippingAddress,
		ShippingProvider: o.ShippingProvider,
		CreatedAt:        o.CreatedAt,
		Items:            outItems,
	}
}
