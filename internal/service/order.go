package service

import (
	"context"
	"encoding/json"
	"fmt"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// PlaceOrder writes the order header and all of its items in one
	// transaction and returns the created header.
	PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*model.Order, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*model.Order, error) {
	total, err := parseAmount(req.TotalAmount)
	if err != nil {
		return nil, err
	}
	if len(req.Cart) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &model.Order{
		UserID:      req.UserID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		TotalAmount: total,
		Status:      model.OrderStatusPending,
	}

	txCtx := context.WithoutCancel(ctx)
	err = s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(txCtx, tx, order); err != nil {
			return err
		}

		items := make([]*model.OrderItem, 0, len(req.Cart))
		for _, line := range req.Cart {
			items = append(items, &model.OrderItem{
				OrderID:   order.ID,
				VariantID: line.VariantID,
				Model:     line.Model,
				Category:  line.Category,
				Color:     line.Color,
				Memory:    line.Memory,
				Country:   line.Country,
				Price:     line.Price,
				Quantity:  line.Quantity,
			})
		}

		return s.orderRepo.CreateOrderItems(txCtx, tx, items)
	})
	if err != nil {
		return nil, &TransactionError{Op: "place order", Err: err}
	}

	return order, nil
}

// parseAmount accepts a JSON number or a JSON string holding a number.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		text = strings.TrimSpace(s)
	}
	if text == "" || text == "null" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, text)
	}
	return amount, nil
}
