package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryGeneral ProductCategory = "general"
	CategoryWatch   ProductCategory = "watch"
)

// IsWatch reports whether variants of this category are keyed by band/dial size
// instead of memory.
func (c ProductCategory) IsWatch() bool {
	return c == CategoryWatch
}

type OrderStatus string

// Pending is the only status this service ever writes.
const OrderStatusPending OrderStatus = "pending"

type Product struct {
	ID       uint            `gorm:"primaryKey" json:"-"`
	Name     string          `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Category ProductCategory `gorm:"size:32;index;not null;default:general" json:"category"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image    string          `gorm:"size:255" json:"image"`
}

type Variant struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProductName string          `gorm:"size:128;index;not null" json:"-"`
	Color       string          `gorm:"size:64;not null" json:"color"`
	Memory      *string         `gorm:"size:32" json:"memory"`
	ScreenSize  *string         `gorm:"size:32" json:"screen_size"`
	RAM         *string         `gorm:"column:ram;size:32" json:"ram"`
	BandSize    *string         `gorm:"size:32" json:"band_size"`
	DialSize    *string         `gorm:"size:32" json:"dial_size"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"size:255" json:"image"`
}

// Spec is one name/value line of a product's technical sheet.
type Spec struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	ProductName string `gorm:"size:128;not null;uniqueIndex:idx_specs_product_name" json:"-"`
	Name        string `gorm:"size:128;not null;uniqueIndex:idx_specs_product_name" json:"name"`
	Value       string `gorm:"size:255" json:"value"`
}

// CountryFeature describes what differs in a product's regional edition. Its
// country code is what order lines carry in their country field.
type CountryFeature struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	ProductName string `gorm:"size:128;not null;uniqueIndex:idx_country_features_product_country" json:"-"`
	CountryCode string `gorm:"size:8;not null;uniqueIndex:idx_country_features_product_country" json:"country_code"`
	Description string `gorm:"size:512" json:"description"`
}

// CartItem denormalizes the variant's display fields at save time.
type CartItem struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	VariantID   uint            `gorm:"index;not null"`
	Variant     *Variant        `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	ProductName string          `gorm:"size:128;not null"`
	Color       *string         `gorm:"size:64"`
	Memory      *string         `gorm:"size:32"`
	ImageURL    string          `gorm:"size:255"`
	Quantity    int             `gorm:"not null;default:1"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

type Order struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      *uint           `gorm:"index"` // nil for guest checkout
	FirstName   string          `gorm:"size:64"`
	LastName    string          `gorm:"size:64"`
	Email       string          `gorm:"size:128"`
	Phone       string          `gorm:"size:32"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      OrderStatus     `gorm:"size:32;index;not null"`
	CreatedAt   time.Time
}

// OrderItem is a snapshot of a cart line at checkout; it does not follow later
// changes to the referenced variant.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	Order     *Order          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	VariantID uint            `gorm:"index;not null"`
	Variant   *Variant        `gorm:"foreignKey:VariantID;constraint:OnDelete:RESTRICT"`
	Model     string          `gorm:"size:128"`
	Category  string          `gorm:"size:32"`
	Color     string          `gorm:"size:64"`
	Memory    string          `gorm:"size:32"`
	Country   string          `gorm:"size:8"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// CartLine is a cart row joined with its variant, as returned to clients.
type CartLine struct {
	VariantID   uint
	ProductName string
	Color       *string
	Memory      *string
	ImageURL    string
	Quantity    int
	Price       decimal.Decimal
}
