package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	log         *logger.Logger
	cartService service.CartService
}

func NewCartHandler(log *logger.Logger, cartService service.CartService) *CartHandler {
	return &CartHandler{
		log:         log,
		cartService: cartService,
	}
}

func (h *CartHandler) Save(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SaveCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.StatusResponse{Message: "invalid request body"})
	}

	if err := h.cartService.Save(ctx, req.UserID, req.CartItems); err != nil {
		h.log.Error("save cart failed", "request_id", requestID(c), "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, &dto.StatusResponse{Message: "internal server error"})
	}

	return c.JSON(http.StatusOK, &dto.StatusResponse{Success: true})
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := strconv.ParseUint(c.QueryParam("userId"), 10, 0)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, &dto.StatusResponse{Message: "userId query parameter is required"})
	}

	lines, err := h.cartService.Get(ctx, uint(userID))
	if err != nil {
		h.log.Error("get cart failed", "request_id", requestID(c), "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, &dto.StatusResponse{Message: "internal server error"})
	}

	cart := make([]*dto.CartLine, len(lines))
	for i, line := range lines {
		cart[i] = &dto.CartLine{
			VariantID: line.VariantID,
			Model:     line.ProductName,
			Color:     line.Color,
			Memory:    line.Memory,
			Image:     line.ImageURL,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}

	return c.JSON(http.StatusOK, &dto.GetCartResponse{Success: true, Cart: cart})
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ClearCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.StatusResponse{Error: "invalid request body"})
	}

	if err := h.cartService.Clear(ctx, req.UserID); err != nil {
		h.log.Error("clear cart failed", "request_id", requestID(c), "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, &dto.StatusResponse{Error: "internal server error"})
	}

	return c.JSON(http.StatusOK, &dto.StatusResponse{Success: true})
}
