// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"fmt"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/model"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// OpenDB returns a migrated in-memory sqlite database with foreign keys
// enforced. Each call gets its own database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := client.InitDBClient(config.Database{
		Driver:       "sqlite",
		URL:          dsn,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func SeedProduct(t *testing.T, db *gorm.DB, name string, category model.ProductCategory) {
	t.Helper()
	require.NoError(t, db.Create(&model.Product{
		Name:     name,
		Category: category,
		Price:    decimal.NewFromInt(100),
	}).Error)
}

func SeedVariant(t *testing.T, db *gorm.DB, v *model.Variant) *model.Variant {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
	return v
}

func Str(s string) *string {
	return &s
}

// Count returns the number of rows of m matching the optional condition.
func Count(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
