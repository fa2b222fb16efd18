package handler

import (
	"net/http"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	log            *logger.Logger
	catalogService service.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:            log,
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.ListProducts(ctx)
	if err != nil {
		h.log.Error("list products failed", "request_id", requestID(c), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load products")
	}

	return c.JSON(http.StatusOK, products)
}

// ListVariants and its siblings take the product name from the path. Echo has
// already unescaped it, so it is used as is.
func (h *CatalogHandler) ListVariants(c echo.Context) error {
	ctx := c.Request().Context()
	model := c.Param("model")

	variants, err := h.catalogService.ListVariants(ctx, model)
	if err != nil {
		h.log.Error("list variants failed", "request_id", requestID(c), "model", model, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load variants")
	}

	return c.JSON(http.StatusOK, variants)
}

func (h *CatalogHandler) ListSpecs(c echo.Context) error {
	ctx := c.Request().Context()
	model := c.Param("model")

	specs, err := h.catalogService.ListSpecs(ctx, model)
	if err != nil {
		h.log.Error("list specs failed", "request_id", requestID(c), "model", model, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load specs")
	}

	return c.JSON(http.StatusOK, specs)
}

func (h *CatalogHandler) ListCountryFeatures(c echo.Context) error {
	ctx := c.Request().Context()
	model := c.Param("model")

	features, err := h.catalogService.ListCountryFeatures(ctx, model)
	if err != nil {
		h.log.Error("list country features failed", "request_id", requestID(c), "model", model, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load country features")
	}

	return c.JSON(http.StatusOK, features)
}
