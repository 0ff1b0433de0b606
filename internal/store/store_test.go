package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	dbutil "github.com/kamaltrader/luxecraft/internal/db"
	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, errOpen)
	require.NoError(t, dbutil.Migrate(conn))
	require.NoError(t, dbutil.Seed(context.Background(), conn, dbutil.SeedOptions{}))
	return conn
}

func belt() ProductFields {
	return ProductFields{
		Name:        "Belt",
		Price:       decimal.NewFromInt(1299),
		Category:    "Belts & Accessories",
		Description: "Full grain",
	}
}

func TestProductStoreCreateGetDelete(t *testing.T) {
	conn := setupStoreTestDB(t)
	products := NewProductStore(conn)
	ctx := context.Background()

	created, err := products.Create(ctx, belt(), "1700000000000-belt.png")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "1700000000000-belt.png", created.ImageFilename)

	got, err := products.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(1299)), "price = %s", got.Price)
	assert.Equal(t, "Belts & Accessories", got.Category)

	referenced, err := products.ReferencesImage(ctx, created.ImageFilename)
	require.NoError(t, err)
	assert.True(t, referenced)

	deleted, err := products.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ImageFilename, deleted.ImageFilename)

	_, err = products.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = products.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductStoreRejectsUnknownCategory(t *testing.T) {
	conn := setupStoreTestDB(t)
	products := NewProductStore(conn)
	ctx := context.Background()

	fields := belt()
	fields.Category = "Saddles"
	_, err := products.Create(ctx, fields, "x.png")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	created, err := products.Create(ctx, belt(), "x.png")
	require.NoError(t, err)
	_, err = products.Update(ctx, created.ID, fields)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestProductStoreUpdateKeepsImage(t *testing.T) {
	conn := setupStoreTestDB(t)
	products := NewProductStore(conn)
	ctx := context.Background()

	created, err := products.Create(ctx, belt(), "belt.png")
	require.NoError(t, err)

	fields := belt()
	fields.Name = "Reversible Belt"
	fields.Price = decimal.RequireFromString("1499.50")
	fields.Category = "Custom Products"
	updated, err := products.Update(ctx, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "Reversible Belt", updated.Name)
	assert.Equal(t, "Custom Products", updated.Category)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("1499.5")), "price = %s", updated.Price)
	assert.Equal(t, "belt.png", updated.ImageFilename)

	_, err = products.Update(ctx, 9999, fields)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductStoreListFilters(t *testing.T) {
	conn := setupStoreTestDB(t)
	products := NewProductStore(conn)
	ctx := context.Background()

	all, err := products.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	leather, err := products.List(ctx, "LEATHER")
	require.NoError(t, err)
	assert.Len(t, leather, 3)

	wallets, err := products.ListByCategory(ctx, "Wallets & Cardholders")
	require.NoError(t, err)
	assert.Len(t, wallets, 2)
}

func TestCategoryStoreCreateDuplicate(t *testing.T) {
	conn := setupStoreTestDB(t)
	categories := NewCategoryStore(conn)
	ctx := context.Background()

	created, err := categories.Create(ctx, "  Gloves ")
	require.NoError(t, err)
	assert.Equal(t, "Gloves", created.Name)

	_, err = categories.Create(ctx, "Gloves")
	assert.ErrorIs(t, err, ErrCategoryExists)

	rows, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, len(dbutil.DefaultCategories)+1)
	assert.Equal(t, "Bags & Briefcases", rows[0].Name)
}

func TestCategoryStoreRenameCarriesProducts(t *testing.T) {
	conn := setupStoreTestDB(t)
	categories := NewCategoryStore(conn)
	products := NewProductStore(conn)
	ctx := context.Background()

	var wallets models.Category
	require.NoError(t, conn.Where("name = ?", "Wallets & Cardholders").First(&wallets).Error)

	renamed, err := categories.Rename(ctx, wallets.ID, "Wallets")
	require.NoError(t, err)
	assert.Equal(t, "Wallets", renamed.Name)

	moved, err := products.ListByCategory(ctx, "Wallets")
	require.NoError(t, err)
	assert.Len(t, moved, 2)
	left, err := products.ListByCategory(ctx, "Wallets & Cardholders")
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = categories.Rename(ctx, wallets.ID, "Custom Products")
	assert.ErrorIs(t, err, ErrCategoryExists)
	_, err = categories.Rename(ctx, 9999, "Anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryStoreDeleteRestrictsReferencedCategory(t *testing.T) {
	conn := setupStoreTestDB(t)
	categories := NewCategoryStore(conn)
	ctx := context.Background()

	var belts models.Category
	require.NoError(t, conn.Where("name = ?", "Belts & Accessories").First(&belts).Error)
	assert.ErrorIs(t, categories.Delete(ctx, belts.ID), ErrCategoryInUse)

	var custom models.Category
	require.NoError(t, conn.Where("name = ?", "Custom Products").First(&custom).Error)
	require.NoError(t, categories.Delete(ctx, custom.ID))
	assert.ErrorIs(t, categories.Delete(ctx, custom.ID), ErrNotFound)

	exists, err := categories.Exists(ctx, "Custom Products")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEmailConfigStoreKeepsPasswordWhenBlank(t *testing.T) {
	conn := setupStoreTestDB(t)
	configs := NewEmailConfigStore(conn)
	ctx := context.Background()

	_, err := configs.Update(ctx, EmailConfigUpdate{User: "u@example.com", Password: "s3cret", Host: "smtp.example.com", Port: 465, Recipient: "r@example.com"})
	require.NoError(t, err)

	updated, err := configs.Update(ctx, EmailConfigUpdate{User: "u2@example.com", Host: "smtp.example.com", Port: 587, Recipient: "r@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", updated.EmailPassword)
	assert.Equal(t, "u2@example.com", updated.EmailUser)
	assert.Equal(t, 587, updated.EmailPort)
}

func TestContactDetailsStoreUpdate(t *testing.T) {
	conn := setupStoreTestDB(t)
	details := NewContactDetailsStore(conn)
	ctx := context.Background()

	updated, err := details.Update(ctx, models.ContactDetails{Address: "Workshop 4", Phone: "+91 1", Email: "hi@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Workshop 4", updated.Address)
	assert.Equal(t, "", updated.Facebook)

	var count int64
	conn.Model(&models.ContactDetails{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
