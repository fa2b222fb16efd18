package repository

import (
	"context"
	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	// Replace deletes every row of the user's cart and inserts items in its
	// place. It must run on a transaction handle so both steps commit together.
	Replace(ctx context.Context, tx *gorm.DB, userID uint, items []*model.CartItem) error
	ListByUser(ctx context.Context, userID uint) ([]*model.CartLine, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Replace(ctx context.Context, tx *gorm.DB, userID uint, items []*model.CartItem) error {
	err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
	if err != nil {
		return wrapStorageErr("delete cart items", err)
	}

	if len(items) == 0 {
		return nil
	}

	for _, item := range items {
		item.UserID = userID
	}

	if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
		return wrapStorageErr("insert cart items", err)
	}
	return nil
}

// ListByUser returns the user's cart joined with variants; color and memory are
// read from the variant row, the rest from the cart snapshot.
func (r *cartRepoImpl) ListByUser(ctx context.Context, userID uint) ([]*model.CartLine, error) {
	lines := make([]*model.CartLine, 0)
	err := r.db.WithContext(ctx).
		Table("cart_items AS c").
		Select("c.variant_id, c.product_name, v.color, v.memory, c.image_url, c.quantity, c.price").
		Joins("JOIN variants v ON v.id = c.variant_id").
		Where("c.user_id = ?", userID).
		Order("c.id").
		Scan(&lines).Error
	if err != nil {
		return nil, wrapStorageErr("list cart items", err)
	}

	return lines, nil
}
