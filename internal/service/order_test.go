package service

import (
	"context"
	"encoding/json"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"storefront-api/internal/testutil"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (OrderService, *gorm.DB) {
	db := testutil.OpenDB(t)
	testutil.SeedVariant(t, db, &model.Variant{ID: 42, ProductName: "iPhone 15", Color: "Black", Memory: testutil.Str("128GB"), Price: decimal.NewFromInt(999)})
	testutil.SeedVariant(t, db, &model.Variant{ID: 43, ProductName: "iPhone 15", Color: "Black", Memory: testutil.Str("256GB"), Price: decimal.NewFromInt(1099)})
	return NewOrderService(db, repository.NewOrderRepository(db)), db
}

func line(variantID uint, price int64, qty int) *dto.OrderLine {
	return &dto.OrderLine{
		VariantID: variantID,
		Model:     "iPhone 15",
		Category:  "phone",
		Color:     "Black",
		Memory:    "128GB",
		Country:   "US",
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	svc, db := newOrderService(t)
	userID := uint(7)

	order, err := svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "+100000000",
		UserID:      &userID,
		Cart:        []*dto.OrderLine{line(42, 999, 1), line(43, 1099, 2)},
		TotalAmount: json.RawMessage(`3197`),
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	var stored model.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, model.OrderStatusPending, stored.Status)
	assert.True(t, decimal.NewFromInt(3197).Equal(stored.TotalAmount))
	require.NotNil(t, stored.UserID)
	assert.Equal(t, userID, *stored.UserID)

	var stored2 []model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&stored2).Error)
	require.Len(t, stored2, 2)
	assert.Equal(t, uint(42), stored2[0].VariantID)
	assert.Equal(t, "US", stored2[0].Country)
	assert.Equal(t, "phone", stored2[0].Category)
	assert.Equal(t, 2, stored2[1].Quantity)
}

func TestPlaceOrder_ConcreteScenario(t *testing.T) {
	svc, db := newOrderService(t)

	order, err := svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		Cart:        []*dto.OrderLine{{VariantID: 42, Price: decimal.NewFromInt(999), Quantity: 1}},
		TotalAmount: json.RawMessage(`999`),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), testutil.Count(t, db, &model.Order{}, "status = ? AND total_amount = ?", "pending", 999))
	assert.Equal(t, int64(1), testutil.Count(t, db, &model.OrderItem{}, "order_id = ? AND variant_id = ?", order.ID, 42))
}

func TestPlaceOrder_GuestCheckout(t *testing.T) {
	svc, db := newOrderService(t)

	order, err := svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		Cart:        []*dto.OrderLine{line(42, 999, 1)},
		TotalAmount: json.RawMessage(`"999.00"`),
	})
	require.NoError(t, err)

	var stored model.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Nil(t, stored.UserID)
}

func TestPlaceOrder_NonNumericAmountWritesNothing(t *testing.T) {
	svc, db := newOrderService(t)

	for _, raw := range []string{`"abc"`, `null`, ``, `"12abc"`, `true`} {
		t.Run(raw, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
				Cart:        []*dto.OrderLine{line(42, 999, 1)},
				TotalAmount: json.RawMessage(raw),
			})
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.True(t, IsValidation(err))
		})
	}

	assert.Equal(t, int64(0), testutil.Count(t, db, &model.Order{}, ""))
	assert.Equal(t, int64(0), testutil.Count(t, db, &model.OrderItem{}, ""))
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc, db := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{TotalAmount: json.RawMessage(`0`)})
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Equal(t, int64(0), testutil.Count(t, db, &model.Order{}, ""))
}

func TestPlaceOrder_ItemFailureRollsBackEverything(t *testing.T) {
	svc, db := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		Cart:        []*dto.OrderLine{line(42, 999, 1), line(4242, 1, 1)},
		TotalAmount: json.RawMessage(`1000`),
	})
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.False(t, IsValidation(err))

	assert.Equal(t, int64(0), testutil.Count(t, db, &model.Order{}, ""))
	assert.Equal(t, int64(0), testutil.Count(t, db, &model.OrderItem{}, ""))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`999`, "999", true},
		{`999.99`, "999.99", true},
		{`"1299.5"`, "1299.5", true},
		{`" 42 "`, "42", true},
		{`1e3`, "1000", true},
		{`"NaN"`, "", false},
		{`"abc"`, "", false},
		{`""`, "", false},
		{`null`, "", false},
		{`{}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAmount(json.RawMessage(tt.raw))
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
