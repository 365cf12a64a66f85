package main

import (
	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/server"
	"marketplace/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatalw("db connect failed", "error", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Store{},
		&model.ProductCategory{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.SellerBalance{},
		&model.Transaction{},
		&model.Withdrawal{},
	); err != nil {
		logger.Fatalw("auto migrate failed", "error", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	storeRepo := infraRepo.NewStoreGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	ledgerRepo := infraRepo.NewLedgerGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	storeUC := usecase.NewStoreUsecase(storeRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	productUC := usecase.NewProductUsecase(productRepo, storeRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, logger)
	financeUC := usecase.NewFinanceUsecase(txManager, storeRepo, ledgerRepo, logger)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Address:  handler.NewAddressHandler(addressUC),
		Store:    handler.NewStoreHandler(storeUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Product:  handler.NewProductHandler(productUC),
		Order:    handler.NewOrderHandler(orderUC),
		Finance:  handler.NewFinanceHandler(financeUC),
		Review:   handler.NewReviewHandler(reviewUC),
	}

	//Server起動
	e := server.New(cfg, logger, handlers)
	logger.Infow("server starting", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
