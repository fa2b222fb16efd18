package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrUnknownVariant is returned when a write references a variant id that does
// not exist.
var ErrUnknownVariant = errors.New("referenced variant does not exist")

func wrapStorageErr(op string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnknownVariant, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
