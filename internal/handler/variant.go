package handler

import (
	"errors"
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type VariantHandler struct {
	log            *logger.Logger
	variantService service.VariantService
}

func NewVariantHandler(log *logger.Logger, variantService service.VariantService) *VariantHandler {
	return &VariantHandler{
		log:            log,
		variantService: variantService,
	}
}

// Resolve answers 400 for a missing attribute and 200 with success=false when
// nothing matches.
func (h *VariantHandler) Resolve(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResolveVariantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.ResolveVariantResponse{Message: "invalid request body"})
	}
	req.Normalize()

	variantID, err := h.variantService.Resolve(ctx, &req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, &dto.ResolveVariantResponse{Success: true, VariantID: variantID})
	case errors.Is(err, service.ErrMissingRequiredAttribute):
		return c.JSON(http.StatusBadRequest, &dto.ResolveVariantResponse{Message: err.Error()})
	case errors.Is(err, service.ErrVariantNotFound):
		return c.JSON(http.StatusOK, &dto.ResolveVariantResponse{Message: err.Error()})
	default:
		h.log.Error("resolve variant failed", "request_id", requestID(c), "model", req.Model, "error", err)
		return c.JSON(http.StatusInternalServerError, &dto.ResolveVariantResponse{Message: "internal server error"})
	}
}
