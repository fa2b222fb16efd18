package handler

import (
	"net/http"
	"storefront-api/internal/dto"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	log          *logger.Logger
	orderService service.OrderService
}

func NewOrderHandler(log *logger.Logger, orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		log:          log,
		orderService: orderService,
	}
}

// PlaceOrder writes the order header and its lines in one transaction.
// It answers 400 when totalAmount is not a number or numeric string, and also
// when the cart is empty: an order is never stored without lines.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.StatusResponse{Error: "invalid request body"})
	}

	order, err := h.orderService.PlaceOrder(ctx, &req)
	if err != nil {
		if service.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, &dto.StatusResponse{Error: err.Error()})
		}
		h.log.Error("place order failed", "request_id", requestID(c), "user_id", req.UserID, "lines", len(req.Cart), "error", err)
		return c.JSON(http.StatusInternalServerError, &dto.StatusResponse{Error: "could not place order"})
	}

	h.log.Info("order placed", "request_id", requestID(c), "order_id", order.ID, "lines", len(req.Cart))

	return c.JSON(http.StatusOK, &dto.PlaceOrderResponse{
		Success:     true,
		OrderID:     order.ID,
		TotalAmount: req.TotalAmount,
	})
}
