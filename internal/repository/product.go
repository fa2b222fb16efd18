package repository

import (
	"context"
	"storefront-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	ListSpecs(ctx context.Context, productName string) ([]*model.Spec, error)
	ListCountryFeatures(ctx context.Context, productName string) ([]*model.CountryFeature, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

// Seed inserts a small demo catalog. Rows that already exist are left alone.
func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{Name: "iPhone 15", Category: model.CategoryGeneral, Price: decimal.NewFromInt(999), Image: "/images/iphone15.png"},
		{Name: "MacBook Air", Category: model.CategoryGeneral, Price: decimal.NewFromInt(1299), Image: "/images/macbook-air.png"},
		{Name: "Apple Watch Series 9", Category: model.CategoryWatch, Price: decimal.NewFromInt(399), Image: "/images/watch-s9.png"},
	}

	variants := []model.Variant{
		{ID: 42, ProductName: "iPhone 15", Color: "Black", Memory: ptr("128GB"), Price: decimal.NewFromInt(999), Image: "/images/iphone15-black.png"},
		{ID: 43, ProductName: "iPhone 15", Color: "Black", Memory: ptr("256GB"), Price: decimal.NewFromInt(1099), Image: "/images/iphone15-black.png"},
		{ID: 44, ProductName: "iPhone 15", Color: "Pink", Memory: ptr("128GB"), Price: decimal.NewFromInt(999), Image: "/images/iphone15-pink.png"},
		{ID: 50, ProductName: "MacBook Air", Color: "Midnight", Memory: ptr("256GB"), ScreenSize: ptr("13"), RAM: ptr("8GB"), Price: decimal.NewFromInt(1299), Image: "/images/macbook-air-midnight.png"},
		{ID: 51, ProductName: "MacBook Air", Color: "Midnight", Memory: ptr("512GB"), ScreenSize: ptr("15"), RAM: ptr("16GB"), Price: decimal.NewFromInt(1699), Image: "/images/macbook-air-midnight.png"},
		{ID: 60, ProductName: "Apple Watch Series 9", Color: "Silver", BandSize: ptr("S/M"), DialSize: ptr("41mm"), Price: decimal.NewFromInt(399), Image: "/images/watch-s9-silver.png"},
		{ID: 61, ProductName: "Apple Watch Series 9", Color: "Silver", BandSize: ptr("M/L"), DialSize: ptr("45mm"), Price: decimal.NewFromInt(429), Image: "/images/watch-s9-silver.png"},
	}

	specs := []model.Spec{
		{ProductName: "iPhone 15", Name: "Display", Value: "6.1-inch Super Retina XDR"},
		{ProductName: "iPhone 15", Name: "Chip", Value: "A16 Bionic"},
		{ProductName: "MacBook Air", Name: "Chip", Value: "Apple M3"},
		{ProductName: "Apple Watch Series 9", Name: "Water resistance", Value: "50 m"},
	}

	features := []model.CountryFeature{
		{ProductName: "iPhone 15", CountryCode: "US", Description: "eSIM only"},
		{ProductName: "iPhone 15", CountryCode: "CN", Description: "Dual physical nano-SIM"},
		{ProductName: "Apple Watch Series 9", CountryCode: "US", Description: "ECG and blood oxygen available"},
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rows := range []interface{}{&products, &variants, &specs, &features} {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productRepoImpl) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListSpecs(ctx context.Context, productName string) ([]*model.Spec, error) {
	specs := []*model.Spec{}
	err := r.db.WithContext(ctx).
		Where("product_name = ?", productName).
		Order("id").
		Find(&specs).
		Error

	if err != nil {
		return nil, err
	}

	return specs, nil
}

func (r *productRepoImpl) ListCountryFeatures(ctx context.Context, productName string) ([]*model.CountryFeature, error) {
	features := []*model.CountryFeature{}
	err := r.db.WithContext(ctx).
		Where("product_name = ?", productName).
		Order("id").
		Find(&features).
		Error

	if err != nil {
		return nil, err
	}

	return features, nil
}

func ptr(s string) *string {
	return &s
}
