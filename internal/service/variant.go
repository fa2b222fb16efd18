package service

import (
	"context"
	"errors"
	"fmt"
	"storefront-api/internal/dto"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type VariantService interface {
	// Resolve maps a partial attribute set to a variant id. When several
	// variants match, the one with the lowest id wins.
	Resolve(ctx context.Context, req *dto.ResolveVariantRequest) (uint, error)
}

type variantServiceImpl struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewVariantService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) VariantService {
	return &variantServiceImpl{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *variantServiceImpl) Resolve(ctx context.Context, req *dto.ResolveVariantRequest) (uint, error) {
	if req.Model == "" {
		return 0, fmt.Errorf("%w: model", ErrMissingRequiredAttribute)
	}
	if req.Color == "" {
		return 0, fmt.Errorf("%w: color", ErrMissingRequiredAttribute)
	}

	product, err := s.productRepo.FindByName(ctx, req.Model)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrVariantNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("look up product %q: %w", req.Model, err)
	}

	filter := repository.VariantFilter{
		ProductName: req.Model,
		Color:       req.Color,
		ScreenSize:  optional(req.ScreenSize),
		RAM:         optional(req.RAM),
	}

	if product.Category.IsWatch() {
		// memory does not apply to watches, even when sent
		filter.BandSize = optional(req.BandSize)
		filter.DialSize = optional(req.DialSize)
	} else {
		if req.Memory == "" {
			return 0, fmt.Errorf("%w: memory", ErrMissingRequiredAttribute)
		}
		filter.Memory = optional(req.Memory)
	}

	variant, err := s.variantRepo.FindFirst(ctx, filter)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrVariantNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find variant: %w", err)
	}

	return variant.ID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
