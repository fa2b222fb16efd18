package cache

import (
	"context"
	"errors"
	"storefront-api/internal/model"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrStaleVersion is returned by Set when the cart was written after the
	// version passed in was read.
	ErrStaleVersion = errors.New("cart changed since version was read")
)

// CartCache holds the rendered cart of a user between writes.
//
// Every committed cart write bumps a per-user version through Invalidate. A
// reader takes the Version before loading rows from the database and hands it
// back to Set, so a fill computed from rows older than the last write is
// refused instead of overwriting it.
type CartCache interface {
	Get(ctx context.Context, userID uint) ([]*model.CartLine, error)
	Version(ctx context.Context, userID uint) (int64, error)
	Set(ctx context.Context, userID uint, version int64, lines []*model.CartLine) error
	Invalidate(ctx context.Context, userID uint) error
}

// NopCache always misses. It is used when no redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, uint) ([]*model.CartLine, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Version(context.Context, uint) (int64, error) {
	return 0, nil
}

func (NopCache) Set(context.Context, uint, int64, []*model.CartLine) error {
	return nil
}

func (NopCache) Invalidate(context.Context, uint) error {
	return nil
}
