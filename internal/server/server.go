package server

import (
	"time"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/handler"
	mw "marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Address  *handler.AddressHandler
	Store    *handler.StoreHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Finance  *handler.FinanceHandler
	Review   *handler.ReviewHandler
}

// ルーティングとミドルウェアを組み立てたechoを返す
func New(cfg config.Config, logger *zap.SugaredLogger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(logger))

	authRequired := mw.AuthJWT(cfg)
	adminOnly := mw.RequireRole(model.RoleAdmin)
	sellerOrAdmin := mw.RequireRole(model.RoleSeller, model.RoleAdmin)

	//認証
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.GET("/auth/users", h.Auth.ListUsers, authRequired, adminOnly)
	e.GET("/auth/users/:id", h.Auth.GetUser, authRequired, adminOnly)

	//住所
	e.POST("/auth/addresses", h.Address.Create, authRequired)
	e.GET("/auth/addresses", h.Address.List, authRequired)
	e.PUT("/auth/addresses/:id", h.Address.Update, authRequired)

	//カタログ
	e.GET("/catalog/products", h.Product.ListPublic)
	e.POST("/catalog/products", h.Product.Create, authRequired, sellerOrAdmin)
	e.PUT("/catalog/products/:id", h.Product.Update, authRequired, sellerOrAdmin)
	e.GET("/catalog/stores", h.Store.List)
	e.GET("/catalog/stores/:id", h.Store.Get)
	e.POST("/catalog/stores", h.Store.Create, authRequired, sellerOrAdmin)
	e.PUT("/catalog/stores/:id", h.Store.Update, authRequired, sellerOrAdmin)
	e.GET("/catalog/categories", h.Category.List)
	e.POST("/catalog/categories", h.Category.Create, authRequired, adminOnly)
	e.PUT("/catalog/categories/:id", h.Category.Update, authRequired, adminOnly)

	//注文
	e.POST("/orders/checkout", h.Order.Checkout, authRequired)
	e.GET("/orders", h.Order.ListMine, authRequired)
	e.GET("/orders/:id", h.Order.Get, authRequired)
	e.PATCH("/orders/:id/status", h.Order.UpdateStatus, authRequired, sellerOrAdmin)

	//売上・出金
	e.GET("/finance/balances", h.Finance.GetBalance, authRequired, sellerOrAdmin)
	e.POST("/finance/withdrawals", h.Finance.RequestWithdrawal, authRequired, sellerOrAdmin)
	e.GET("/finance/withdrawals", h.Finance.ListMyWithdrawals, authRequired, sellerOrAdmin)
	e.PUT("/finance/withdrawals/:id", h.Finance.ProcessWithdrawal, authRequired, adminOnly)
	e.GET("/finance/transactions/me", h.Finance.ListMyTransactions, authRequired)

	//レビュー
	e.POST("/reviews", h.Review.Create, authRequired)
	e.GET("/reviews/products/:product_id/reviews", h.Review.ListByProduct)

	return e
}

// アクセスログ。メソッド・パス・ステータス・所要時間
func requestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Infow("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}
