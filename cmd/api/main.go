package main

import (
	"net/smtp"

	"cosmeshop/internal/config"
	"cosmeshop/internal/domain/model"
	"cosmeshop/internal/handler"
	"cosmeshop/internal/infra/db"
	infrarepo "cosmeshop/internal/infra/repository"
	"cosmeshop/internal/logger"
	"cosmeshop/internal/notification"
	"cosmeshop/internal/server"
	"cosmeshop/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()

	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Error("failed to connect database", zap.Error(err))
		return
	}

	if err := conn.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockAdjustment{},
		&model.ChatRoom{},
		&model.ChatMessage{},
	); err != nil {
		logger.Error("failed to migrate database", zap.Error(err))
		return
	}

	txManager := infrarepo.NewTxManagerGorm(conn)
	userRepo := infrarepo.NewUserGormRepository(conn)
	productRepo := infrarepo.NewProductGormRepository(conn)
	categoryRepo := infrarepo.NewCategoryGormRepository(conn)
	brandRepo := infrarepo.NewBrandGormRepository(conn)
	orderRepo := infrarepo.NewOrderGormRepository(conn)
	chatRepo := infrarepo.NewChatGormRepository(conn)

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	mailer := notification.NewSMTPMailer(cfg.SMTPAddr(), cfg.MailFrom, cfg.AppName, auth)
	dispatcher := notification.NewDispatcher(mailer)

	authUC := usecase.NewAuthUsecase(userRepo, dispatcher, cfg.JWTSecret, cfg.TokenTTL)
	approvalUC := usecase.NewApprovalUsecase(userRepo, dispatcher)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, brandRepo, txManager)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	brandUC := usecase.NewBrandUsecase(brandRepo)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, dispatcher)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, userRepo, dispatcher)
	analyticsUC := usecase.NewAnalyticsUsecase(orderRepo, productRepo)
	chatUC := usecase.NewChatUsecase(chatRepo, userRepo)
	importUC := usecase.NewBulkImportUsecase(productRepo, categoryRepo, brandRepo)

	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC, importUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Brand:        handler.NewBrandHandler(brandUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(approvalUC),
		Analytics:    handler.NewAnalyticsHandler(analyticsUC),
		Chat:         handler.NewChatHandler(chatUC),
	}

	srv := server.New(cfg, handlers)
	logger.Info("starting server", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
	if err := srv.Start(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
