package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dbutil "github.com/kamaltrader/luxecraft/internal/db"
	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductStore reads and writes catalog products.
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore constructs a ProductStore.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// ProductFields holds the mutable product columns. The image is fixed at creation.
type ProductFields struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
}

// List returns products newest first, optionally filtered by a name keyword.
func (s *ProductStore) List(ctx context.Context, keyword string) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		pattern := dbutil.NormalizeLikePattern(s.db, "%"+keyword+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(s.db, "name"), pattern)
	}
	var rows []models.Product
	if errFind := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("list products: %w", errFind)
	}
	return rows, nil
}

// ListByCategory returns the products of one category, newest first.
func (s *ProductStore) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var rows []models.Product
	if errFind := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("list products by category: %w", errFind)
	}
	return rows, nil
}

// Get returns a product by ID.
func (s *ProductStore) Get(ctx context.Context, id uint64) (*models.Product, error) {
	var row models.Product
	if errFind := s.db.WithContext(ctx).First(&row, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", errFind)
	}
	return &row, nil
}

// Create inserts a product whose image is already in the media store.
func (s *ProductStore) Create(ctx context.Context, fields ProductFields, imageFilename string) (*models.Product, error) {
	row := models.Product{
		Name:          fields.Name,
		Price:         fields.Price,
		Category:      fields.Category,
		ImageFilename: imageFilename,
		Description:   fields.Description,
	}
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, errExists := categoryExists(tx, fields.Category)
		if errExists != nil {
			return errExists
		}
		if !exists {
			return ErrUnknownCategory
		}
		if errCreate := tx.Create(&row).Error; errCreate != nil {
			return errCreate
		}
		return tx.First(&row, row.ID).Error
	})
	if errTx != nil {
		if errors.Is(errTx, ErrUnknownCategory) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("create product: %w", errTx)
	}
	return &row, nil
}

// Update overwrites the mutable columns of a product and returns the stored row.
func (s *ProductStore) Update(ctx context.Context, id uint64, fields ProductFields) (*models.Product, error) {
	var row models.Product
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errFind := tx.First(&row, id).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return errFind
		}
		exists, errExists := categoryExists(tx, fields.Category)
		if errExists != nil {
			return errExists
		}
		if !exists {
			return ErrUnknownCategory
		}
		updates := map[string]any{
			"name":        fields.Name,
			"price":       fields.Price,
			"category":    fields.Category,
			"description": fields.Description,
		}
		if errUpdate := tx.Model(&row).Updates(updates).Error; errUpdate != nil {
			return errUpdate
		}
		return tx.First(&row, id).Error
	})
	if errTx != nil {
		if errors.Is(errTx, ErrNotFound) || errors.Is(errTx, ErrUnknownCategory) {
			return nil, errTx
		}
		return nil, fmt.Errorf("update product: %w", errTx)
	}
	return &row, nil
}

// Delete removes a product row and returns it so the caller can reclaim its image.
func (s *ProductStore) Delete(ctx context.Context, id uint64) (*models.Product, error) {
	var row models.Product
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errFind := tx.First(&row, id).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return errFind
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if errTx != nil {
		if errors.Is(errTx, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete product: %w", errTx)
	}
	return &row, nil
}

// ReferencesImage reports whether any product uses the given media filename.
func (s *ProductStore) ReferencesImage(ctx context.Context, filename string) (bool, error) {
	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("image_filename = ?", filename).
		Count(&count).Error; errCount != nil {
		return false, fmt.Errorf("lookup image reference: %w", errCount)
	}
	return count > 0, nil
}
