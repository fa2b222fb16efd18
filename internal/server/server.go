package server

import (
	"context"
	"net/http"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	appmw "storefront-api/internal/middleware"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo           *echo.Echo
	db             *gorm.DB
	variantHandler *handler.VariantHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	catalogHandler *handler.CatalogHandler
}

func NewServer(
	cfg config.HTTPServer,
	log *logger.Logger,
	db *gorm.DB,
	variantService service.VariantService,
	cartService service.CartService,
	orderService service.OrderService,
	catalogService service.CatalogService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	s := &Server{
		echo:           e,
		db:             db,
		variantHandler: handler.NewVariantHandler(log, variantService),
		cartHandler:    handler.NewCartHandler(log, cartService),
		orderHandler:   handler.NewOrderHandler(log, orderService),
		catalogHandler: handler.NewCatalogHandler(log, catalogService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		if err := client.PingDB(c.Request().Context(), s.db); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- orders --------
	api.POST("/process-order", s.orderHandler.PlaceOrder)

	// -------- variants & cart --------
	s.echo.POST("/get-variant-id", s.variantHandler.Resolve)
	s.echo.POST("/save-cart", s.cartHandler.Save)
	s.echo.GET("/get-cart", s.cartHandler.Get)
	s.echo.POST("/clear-cart", s.cartHandler.Clear)

	// -------- catalog (read-only) --------
	s.echo.GET("/products", s.catalogHandler.ListProducts)
	s.echo.GET("/variants/:model", s.catalogHandler.ListVariants)
	s.echo.GET("/specs/:model", s.catalogHandler.ListSpecs)
	s.echo.GET("/country-features/:model", s.catalogHandler.ListCountryFeatures)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown stops accepting connections and waits for in-flight requests, and
// therefore their transactions, until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
