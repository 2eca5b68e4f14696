package server

import (
	"fmt"

	"cosmeshop/internal/config"
	"cosmeshop/internal/handler"
	appmw "cosmeshop/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Category     *handler.CategoryHandler
	Brand        *handler.BrandHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminUser    *handler.AdminUserHandler
	Analytics    *handler.AnalyticsHandler
	Chat         *handler.ChatHandler
}

type Server struct {
	echo *echo.Echo
	cfg  config.Config
}

func New(cfg config.Config, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(appmw.RequestLogger)

	limiter := appmw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	e.Use(limiter.Middleware)

	registerRoutes(e, cfg, h)

	return &Server{echo: e, cfg: cfg}
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%d", s.cfg.Port))
}
