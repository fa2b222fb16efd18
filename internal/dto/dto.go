package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ResolveVariantRequest accepts the size attributes in camelCase and in the
// snake_case older storefront clients send; Normalize folds the latter in.
type ResolveVariantRequest struct {
	Model      string `json:"model"`
	Color      string `json:"color"`
	Memory     string `json:"memory"`
	ScreenSize string `json:"screenSize"`
	RAM        string `json:"ram"`
	BandSize   string `json:"bandSize"`
	DialSize   string `json:"dialSize"`

	ScreenSizeSnake string `json:"screen_size"`
	BandSizeSnake   string `json:"band_size"`
	DialSizeSnake   string `json:"dial_size"`
}

// Normalize fills empty camelCase attributes from their snake_case spelling.
func (r *ResolveVariantRequest) Normalize() {
	if r.ScreenSize == "" {
		r.ScreenSize = r.ScreenSizeSnake
	}
	if r.BandSize == "" {
		r.BandSize = r.BandSizeSnake
	}
	if r.DialSize == "" {
		r.DialSize = r.DialSizeSnake
	}
	r.ScreenSizeSnake, r.BandSizeSnake, r.DialSizeSnake = "", "", ""
}

type ResolveVariantResponse struct {
	Success   bool   `json:"success"`
	VariantID uint   `json:"variantId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// CartItem is one line of a save-cart request. Lines without a variantId are
// dropped on save.
type CartItem struct {
	VariantID uint            `json:"variantId"`
	Model     string          `json:"model"`
	Color     string          `json:"color"`
	Memory    string          `json:"memory"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	Price     decimal.Decimal `json:"price"`
}

type SaveCartRequest struct {
	UserID    uint        `json:"userId" validate:"required"`
	CartItems []*CartItem `json:"cartItems" validate:"dive"`
}

type ClearCartRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

type CartLine struct {
	VariantID uint            `json:"variantId"`
	Model     string          `json:"model"`
	Color     *string         `json:"color"`
	Memory    *string         `json:"memory"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type GetCartResponse struct {
	Success bool        `json:"success"`
	Cart    []*CartLine `json:"cart"`
}

type OrderLine struct {
	VariantID uint            `json:"variantId" validate:"required"`
	Model     string          `json:"model"`
	Category  string          `json:"category"`
	Color     string          `json:"color"`
	Memory    string          `json:"memory"`
	Country   string          `json:"country"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
}

// PlaceOrderRequest keeps totalAmount raw: clients send it either as a JSON
// number or as a numeric string, and it is validated by the order service.
type PlaceOrderRequest struct {
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone"`
	Cart        []*OrderLine    `json:"cart" validate:"dive,required"`
	UserID      *uint           `json:"userId"`
	TotalAmount json.RawMessage `json:"totalAmount"`
}

type PlaceOrderResponse struct {
	Success     bool            `json:"success"`
	OrderID     uint            `json:"orderId"`
	TotalAmount json.RawMessage `json:"totalAmount"`
}

// StatusResponse is the envelope for endpoints that return no payload.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
