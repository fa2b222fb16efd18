package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/service"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVariantService struct {
	id  uint
	err error
	got *dto.ResolveVariantRequest
}

func (f *fakeVariantService) Resolve(_ context.Context, req *dto.ResolveVariantRequest) (uint, error) {
	f.got = req
	return f.id, f.err
}

type fakeCartService struct {
	savedUser  uint
	savedItems []*dto.CartItem
	cleared    uint
	lines      []*model.CartLine
	err        error
}

func (f *fakeCartService) Save(_ context.Context, userID uint, items []*dto.CartItem) error {
	f.savedUser = userID
	f.savedItems = items
	return f.err
}

func (f *fakeCartService) Get(context.Context, uint) ([]*model.CartLine, error) {
	return f.lines, f.err
}

func (f *fakeCartService) Clear(_ context.Context, userID uint) error {
	f.cleared = userID
	return f.err
}

type fakeOrderService struct {
	order *model.Order
	err   error
}

func (f *fakeOrderService) PlaceOrder(context.Context, *dto.PlaceOrderRequest) (*model.Order, error) {
	return f.order, f.err
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestResolveHandler(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeVariantService
		wantStatus int
		wantOK     bool
	}{
		{"found", &fakeVariantService{id: 42}, http.StatusOK, true},
		{"missing attribute", &fakeVariantService{err: fmt.Errorf("%w: color", service.ErrMissingRequiredAttribute)}, http.StatusBadRequest, false},
		{"not found", &fakeVariantService{err: service.ErrVariantNotFound}, http.StatusOK, false},
		{"storage failure", &fakeVariantService{err: errors.New("connection refused")}, http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewVariantHandler(logger.Nop(), tt.svc)
			c, rec := newContext(http.MethodPost, "/get-variant-id", `{"model":"iPhone 15","color":"Black","memory":"128GB","screenSize":"6.1"}`)

			require.NoError(t, h.Resolve(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, tt.wantOK, body["success"])
			if tt.wantOK {
				assert.Equal(t, float64(42), body["variantId"])
			} else {
				assert.NotEmpty(t, body["message"])
				assert.NotContains(t, body["message"], "connection refused")
			}
			assert.Equal(t, "6.1", tt.svc.got.ScreenSize)
		})
	}
}

func TestResolveHandler_AttributeSpellings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"camelCase", `{"model":"Apple Watch Series 9","color":"Silver","bandSize":"M/L","dialSize":"45mm","screenSize":"1.9"}`},
		{"snake_case", `{"model":"Apple Watch Series 9","color":"Silver","band_size":"M/L","dial_size":"45mm","screen_size":"1.9"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeVariantService{id: 61}
			h := NewVariantHandler(logger.Nop(), svc)
			c, rec := newContext(http.MethodPost, "/get-variant-id", tt.body)

			require.NoError(t, h.Resolve(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			require.NotNil(t, svc.got)
			assert.Equal(t, "M/L", svc.got.BandSize)
			assert.Equal(t, "45mm", svc.got.DialSize)
			assert.Equal(t, "1.9", svc.got.ScreenSize)
		})
	}
}

func TestSaveCartHandler(t *testing.T) {
	svc := &fakeCartService{}
	h := NewCartHandler(logger.Nop(), svc)
	c, rec := newContext(http.MethodPost, "/save-cart", `{"userId":7,"cartItems":[{"variantId":42,"model":"iPhone 15","quantity":2,"price":999}]}`)

	require.NoError(t, h.Save(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	assert.Equal(t, uint(7), svc.savedUser)
	require.Len(t, svc.savedItems, 1)
	assert.Equal(t, uint(42), svc.savedItems[0].VariantID)
	assert.True(t, decimal.NewFromInt(999).Equal(svc.savedItems[0].Price))
}

func TestSaveCartHandler_EmptyCart(t *testing.T) {
	svc := &fakeCartService{}
	h := NewCartHandler(logger.Nop(), svc)
	c, rec := newContext(http.MethodPost, "/save-cart", `{"userId":7,"cartItems":[]}`)

	require.NoError(t, h.Save(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), svc.savedUser)
	assert.Empty(t, svc.savedItems)
}

func TestSaveCartHandler_Errors(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		h := NewCartHandler(logger.Nop(), &fakeCartService{})
		c, rec := newContext(http.MethodPost, "/save-cart", `{"cartItems":[]}`)
		require.NoError(t, h.Save(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &fakeCartService{err: &service.TransactionError{Op: "save cart", Err: errors.New("deadlock")}}
		h := NewCartHandler(logger.Nop(), svc)
		c, rec := newContext(http.MethodPost, "/save-cart", `{"userId":7,"cartItems":[]}`)
		require.NoError(t, h.Save(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.NotContains(t, body["message"], "deadlock")
	})
}

func TestGetCartHandler(t *testing.T) {
	color, memory := "Black", "128GB"
	svc := &fakeCartService{lines: []*model.CartLine{
		{VariantID: 42, ProductName: "iPhone 15", Color: &color, Memory: &memory, ImageURL: "/img.png", Quantity: 1, Price: decimal.NewFromInt(999)},
	}}
	h := NewCartHandler(logger.Nop(), svc)
	c, rec := newContext(http.MethodGet, "/get-cart?userId=7", "")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Cart    []struct {
			VariantID uint   `json:"variantId"`
			Model     string `json:"model"`
			Color     string `json:"color"`
			Memory    string `json:"memory"`
			Image     string `json:"image"`
			Quantity  int    `json:"quantity"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Cart, 1)
	assert.Equal(t, uint(42), resp.Cart[0].VariantID)
	assert.Equal(t, "iPhone 15", resp.Cart[0].Model)
	assert.Equal(t, "Black", resp.Cart[0].Color)
	assert.Equal(t, "/img.png", resp.Cart[0].Image)
}

func TestGetCartHandler_BadUserID(t *testing.T) {
	h := NewCartHandler(logger.Nop(), &fakeCartService{})
	for _, target := range []string{"/get-cart", "/get-cart?userId=abc", "/get-cart?userId=0"} {
		c, rec := newContext(http.MethodGet, target, "")
		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestClearCartHandler(t *testing.T) {
	svc := &fakeCartService{}
	h := NewCartHandler(logger.Nop(), svc)
	c, rec := newContext(http.MethodPost, "/clear-cart", `{"userId":7}`)

	require.NoError(t, h.Clear(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), svc.cleared)

	svc.err = errors.New("boom")
	c, rec = newContext(http.MethodPost, "/clear-cart", `{"userId":7}`)
	require.NoError(t, h.Clear(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["error"])
}

func TestPlaceOrderHandler(t *testing.T) {
	h := NewOrderHandler(logger.Nop(), &fakeOrderService{order: &model.Order{ID: 11}})
	c, rec := newContext(http.MethodPost, "/api/process-order",
		`{"firstName":"Ada","email":"ada@example.com","cart":[{"variantId":42,"price":999,"quantity":1}],"totalAmount":999}`)

	require.NoError(t, h.PlaceOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(11), body["orderId"])
	assert.Equal(t, float64(999), body["totalAmount"])
}

func TestPlaceOrderHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"invalid amount", `{"cart":[{"variantId":42}],"totalAmount":"abc"}`, fmt.Errorf("%w: bad", service.ErrInvalidAmount), http.StatusBadRequest},
		{"empty cart", `{"cart":[],"totalAmount":0}`, service.ErrEmptyOrder, http.StatusBadRequest},
		{"invalid email", `{"email":"nope","cart":[{"variantId":42}],"totalAmount":1}`, nil, http.StatusBadRequest},
		{"line without variant", `{"cart":[{"model":"x"}],"totalAmount":1}`, nil, http.StatusBadRequest},
		{"write failure", `{"cart":[{"variantId":42}],"totalAmount":1}`, &service.TransactionError{Op: "place order", Err: errors.New("fk")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrderHandler(logger.Nop(), &fakeOrderService{err: tt.err})
			c, rec := newContext(http.MethodPost, "/api/process-order", tt.body)

			require.NoError(t, h.PlaceOrder(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}
