package service

import (
	"context"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	ListVariants(ctx context.Context, productName string) ([]*model.Variant, error)
	ListSpecs(ctx context.Context, productName string) ([]*model.Spec, error)
	ListCountryFeatures(ctx context.Context, productName string) ([]*model.CountryFeature, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogServiceImpl) ListVariants(ctx context.Context, productName string) ([]*model.Variant, error) {
	return s.variantRepo.ListByProduct(ctx, productName)
}

func (s *catalogServiceImpl) ListSpecs(ctx context.Context, productName string) ([]*model.Spec, error) {
	return s.productRepo.ListSpecs(ctx, productName)
}

func (s *catalogServiceImpl) ListCountryFeatures(ctx context.Context, productName string) ([]*model.CountryFeature, error) {
	return s.productRepo.ListCountryFeatures(ctx, productName)
}
