package server

import (
	"net/http"

	"cosmeshop/internal/config"
	appmw "cosmeshop/internal/middleware"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	// 認証不要
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	api.GET("/products", h.Product.List)
	api.GET("/products/featured", h.Product.Featured)
	api.GET("/products/top-selling", h.Product.TopSelling)
	api.GET("/products/:id", h.Product.Get)

	api.GET("/categories", h.Category.List)
	api.GET("/categories/:id", h.Category.Get)
	api.GET("/brands", h.Brand.List)
	api.GET("/brands/:id", h.Brand.Get)

	// ログイン必須
	auth := api.Group("", appmw.JWTAuth(cfg.JWTSecret))
	auth.GET("/auth/me", h.Auth.Me)

	// 注文とチャットは承認済みアカウントのみ
	approved := auth.Group("", appmw.ApprovedOnly)
	approved.POST("/orders", h.Order.Place)
	approved.GET("/orders", h.Order.ListMine)
	approved.GET("/orders/number/:orderNumber", h.Order.GetByNumber)
	approved.GET("/orders/:id", h.Order.Get)
	approved.POST("/orders/:id/cancel", h.Order.Cancel)

	approved.GET("/chat/room", h.Chat.MyRoom)
	approved.POST("/chat/messages", h.Chat.Send)

	// 管理者のみ
	admin := auth.Group("/admin", appmw.AdminOnly)

	admin.POST("/products", h.AdminProduct.Create)
	admin.GET("/products/low-stock", h.AdminProduct.LowStock)
	admin.POST("/products/import", h.AdminProduct.Import)
	admin.PUT("/products/:id", h.AdminProduct.Update)
	admin.DELETE("/products/:id", h.AdminProduct.Delete)
	admin.PUT("/products/:id/inventory", h.AdminProduct.AdjustInventory)

	admin.POST("/categories", h.Category.Create)
	admin.PUT("/categories/:id", h.Category.Update)
	admin.DELETE("/categories/:id", h.Category.Delete)

	admin.POST("/brands", h.Brand.Create)
	admin.PUT("/brands/:id", h.Brand.Update)
	admin.DELETE("/brands/:id", h.Brand.Delete)

	admin.GET("/orders", h.AdminOrder.List)
	admin.GET("/orders/recent", h.AdminOrder.Recent)
	admin.GET("/orders/stats", h.AdminOrder.Stats)
	admin.PUT("/orders/:id/status", h.AdminOrder.UpdateStatus)

	admin.GET("/users", h.AdminUser.ListCustomers)
	admin.GET("/users/pending", h.AdminUser.ListPending)
	admin.POST("/users/:id/approve", h.AdminUser.Approve)
	admin.POST("/users/:id/reject", h.AdminUser.Reject)
	admin.PUT("/users/:id/active", h.AdminUser.SetActive)

	admin.GET("/analytics/sales-trend", h.Analytics.SalesTrend)
	admin.GET("/analytics/top-products", h.Analytics.TopProducts)
	admin.GET("/analytics/category-distribution", h.Analytics.CategoryDistribution)

	admin.GET("/chat/rooms", h.Chat.ListRooms)
	admin.GET("/chat/rooms/:roomKey", h.Chat.OpenRoom)
	admin.POST("/chat/rooms/:roomKey/messages", h.Chat.Reply)
}
