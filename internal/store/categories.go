package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kamaltrader/luxecraft/internal/models"
	"gorm.io/gorm"
)

// CategoryStore reads and writes categories.
//
// Products reference categories by name. The store keeps that link intact:
// renames rewrite the products in the same transaction and deletes are
// refused while any product still points at the category.
type CategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore constructs a CategoryStore.
func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if errFind := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("list categories: %w", errFind)
	}
	return rows, nil
}

// Get returns a category by ID.
func (s *CategoryStore) Get(ctx context.Context, id uint64) (*models.Category, error) {
	var row models.Category
	if errFind := s.db.WithContext(ctx).First(&row, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", errFind)
	}
	return &row, nil
}

// Exists reports whether a category with the exact name exists.
func (s *CategoryStore) Exists(ctx context.Context, name string) (bool, error) {
	return categoryExists(s.db.WithContext(ctx), name)
}

// Create inserts a category with the given name.
func (s *CategoryStore) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	row := models.Category{Name: name}
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, errExists := categoryExists(tx, name)
		if errExists != nil {
			return errExists
		}
		if exists {
			return ErrCategoryExists
		}
		return tx.Create(&row).Error
	})
	if errTx != nil {
		if errors.Is(errTx, ErrCategoryExists) || isUniqueViolation(errTx) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", errTx)
	}
	return &row, nil
}

// Rename changes a category name and carries the new name over to its products.
func (s *CategoryStore) Rename(ctx context.Context, id uint64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	var row models.Category
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errFind := tx.First(&row, id).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return errFind
		}
		if row.Name == name {
			return nil
		}
		exists, errExists := categoryExists(tx, name)
		if errExists != nil {
			return errExists
		}
		if exists {
			return ErrCategoryExists
		}
		oldName := row.Name
		if errUpdate := tx.Model(&row).Update("name", name).Error; errUpdate != nil {
			return errUpdate
		}
		row.Name = name
		return tx.Model(&models.Product{}).
			Where("category = ?", oldName).
			Update("category", name).Error
	})
	if errTx != nil {
		switch {
		case errors.Is(errTx, ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(errTx, ErrCategoryExists) || isUniqueViolation(errTx):
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("rename category: %w", errTx)
	}
	return &row, nil
}

// Delete removes a category that no product references.
func (s *CategoryStore) Delete(ctx context.Context, id uint64) error {
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Category
		if errFind := tx.First(&row, id).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return errFind
		}
		var refs int64
		if errCount := tx.Model(&models.Product{}).Where("category = ?", row.Name).Count(&refs).Error; errCount != nil {
			return errCount
		}
		if refs > 0 {
			return ErrCategoryInUse
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	if errTx != nil {
		if errors.Is(errTx, ErrNotFound) || errors.Is(errTx, ErrCategoryInUse) {
			return errTx
		}
		return fmt.Errorf("delete category: %w", errTx)
	}
	return nil
}

func categoryExists(tx *gorm.DB, name string) (bool, error) {
	var count int64
	if errCount := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; errCount != nil {
		return false, fmt.Errorf("lookup category: %w", errCount)
	}
	return count > 0, nil
}
