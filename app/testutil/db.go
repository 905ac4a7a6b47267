// Package testutil builds throwaway databases for repository and service tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/models/migrations"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every statement, transactions included, on the
// same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Password: "x", Role: models.RoleCustomer, IsVerified: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateCategory(t *testing.T, db *gorm.DB, name string, parent *models.Category) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int, category *models.Category) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: decimal.NewFromInt(price), StockQuantity: stock}
	if category != nil {
		p.CategoryID = &category.ID
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
