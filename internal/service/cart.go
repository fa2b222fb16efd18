package service

import (
	"context"
	"errors"
	"storefront-api/internal/cache"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/repository"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type CartService interface {
	// Save replaces the user's whole cart. Items without a variant id are
	// dropped. On failure the previous cart is left untouched.
	Save(ctx context.Context, userID uint, items []*dto.CartItem) error
	Get(ctx context.Context, userID uint) ([]*model.CartLine, error)
	Clear(ctx context.Context, userID uint) error
}

const (
	cartReadTimeout   = 10 * time.Second
	invalidateTimeout = 2 * time.Second
	invalidateTries   = 3
)

type cartServiceImpl struct {
	db       *gorm.DB
	log      *logger.Logger
	cartRepo repository.CartRepository
	cache    cache.CartCache
	sfg      singleflight.Group

	// users whose cached cart may predate a committed write because the
	// invalidation after it failed; reads skip the cache until one succeeds
	unsynced sync.Map
}

func NewCartService(
	db *gorm.DB,
	log *logger.Logger,
	cartRepo repository.CartRepository,
	cartCache cache.CartCache,
) CartService {
	if cartCache == nil {
		cartCache = cache.NopCache{}
	}
	return &cartServiceImpl{
		db:       db,
		log:      log,
		cartRepo: cartRepo,
		cache:    cartCache,
	}
}

func (s *cartServiceImpl) Save(ctx context.Context, userID uint, items []*dto.CartItem) error {
	rows := make([]*model.CartItem, 0, len(items))
	for _, item := range items {
		if item == nil || item.VariantID == 0 {
			continue
		}
		rows = append(rows, toCartItem(userID, item))
	}

	return s.replace(ctx, "save cart", userID, rows)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID uint) error {
	return s.replace(ctx, "clear cart", userID, nil)
}

// replace runs delete+insert on one dedicated transaction, for empty and
// non-empty carts alike. The unit of work is detached from the request context
// so a client disconnect cannot leave it half done.
func (s *cartServiceImpl) replace(ctx context.Context, op string, userID uint, rows []*model.CartItem) error {
	txCtx := context.WithoutCancel(ctx)

	err := s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		return s.cartRepo.Replace(txCtx, tx, userID, rows)
	})
	if err != nil {
		return &TransactionError{Op: op, Err: err}
	}

	s.invalidate(userID)
	// later readers must not join a load that started before this write
	s.sfg.Forget(flightKey(userID))
	return nil
}

func (s *cartServiceImpl) Get(ctx context.Context, userID uint) ([]*model.CartLine, error) {
	// the load is shared by every caller waiting on this user, so it must not
	// die with the first caller's request
	loadCtx := context.WithoutCancel(ctx)

	v, err, _ := s.sfg.Do(flightKey(userID), func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(loadCtx, cartReadTimeout)
		defer cancel()
		return s.load(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	return v.([]*model.CartLine), nil
}

func (s *cartServiceImpl) load(ctx context.Context, userID uint) ([]*model.CartLine, error) {
	if !s.cacheInSync(ctx, userID) {
		return s.cartRepo.ListByUser(ctx, userID)
	}

	lines, err := s.cache.Get(ctx, userID)
	if err == nil {
		return lines, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("cart cache get failed", "user_id", userID, "error", err)
	}

	// the version is read before the rows so a write committed in between
	// makes the fill below stale
	version, verErr := s.cache.Version(ctx, userID)
	if verErr != nil {
		s.log.Warn("cart cache version failed", "user_id", userID, "error", verErr)
	}

	lines, err = s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if verErr == nil {
		err := s.cache.Set(ctx, userID, version, lines)
		switch {
		case errors.Is(err, cache.ErrStaleVersion):
			s.log.Debug("cart cache fill skipped, cart changed", "user_id", userID)
		case err != nil:
			s.log.Warn("cart cache set failed", "user_id", userID, "error", err)
		}
	}
	return lines, nil
}

func (s *cartServiceImpl) cacheInSync(ctx context.Context, userID uint) bool {
	if _, ok := s.unsynced.Load(userID); !ok {
		return true
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		return false
	}
	s.unsynced.Delete(userID)
	return true
}

func (s *cartServiceImpl) invalidate(userID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, s.cache.Invalidate(ctx, userID)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(invalidateTries))
	if err != nil {
		s.unsynced.Store(userID, struct{}{})
		s.log.Warn("cart cache invalidate failed, bypassing cache for user", "user_id", userID, "error", err)
		return
	}
	s.unsynced.Delete(userID)
}

func flightKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func toCartItem(userID uint, item *dto.CartItem) *model.CartItem {
	quantity := item.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return &model.CartItem{
		UserID:      userID,
		VariantID:   item.VariantID,
		ProductName: item.Model,
		Color:       optional(item.Color),
		Memory:      optional(item.Memory),
		ImageURL:    item.Image,
		Quantity:    quantity,
		Price:       item.Price,
	}
}
