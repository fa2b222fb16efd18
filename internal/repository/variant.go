package repository

import (
	"context"
	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VariantFilter selects variants by attribute. ProductName and Color always
// constrain; a nil optional attribute leaves its column unconstrained.
type VariantFilter struct {
	ProductName string
	Color       string
	Memory      *string
	ScreenSize  *string
	RAM         *string
	BandSize    *string
	DialSize    *string
}

// Conditions compiles the filter into bound equality comparisons over a fixed
// column set. Request input only ever reaches the query as bound values.
func (f VariantFilter) Conditions() []clause.Expression {
	exprs := []clause.Expression{
		clause.Eq{Column: clause.Column{Name: "product_name"}, Value: f.ProductName},
		clause.Eq{Column: clause.Column{Name: "color"}, Value: f.Color},
	}

	optional := []struct {
		column string
		value  *string
	}{
		{"memory", f.Memory},
		{"screen_size", f.ScreenSize},
		{"ram", f.RAM},
		{"band_size", f.BandSize},
		{"dial_size", f.DialSize},
	}
	for _, o := range optional {
		if o.value == nil {
			continue
		}
		exprs = append(exprs, clause.Eq{Column: clause.Column{Name: o.column}, Value: *o.value})
	}

	return exprs
}

type VariantRepository interface {
	// FindFirst returns the lowest-id variant matching the filter, or
	// gorm.ErrRecordNotFound. A sparse filter may match several rows.
	FindFirst(ctx context.Context, filter VariantFilter) (*model.Variant, error)
	ListByProduct(ctx context.Context, productName string) ([]*model.Variant, error)
}

type variantRepoImpl struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepoImpl{
		db: db,
	}
}

func (r *variantRepoImpl) FindFirst(ctx context.Context, filter VariantFilter) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.WithContext(ctx).
		Where(clause.And(filter.Conditions()...)).
		Order("id").
		Take(&variant).Error
	if err != nil {
		return nil, err
	}

	return &variant, nil
}

func (r *variantRepoImpl) ListByProduct(ctx context.Context, productName string) ([]*model.Variant, error) {
	variants := []*model.Variant{}
	err := r.db.WithContext(ctx).
		Where("product_name = ?", productName).
		Order("id").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	return variants, nil
}
