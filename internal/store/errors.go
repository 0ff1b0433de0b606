// Package store owns every row of the storefront schema. Handlers reach the
// database only through the stores defined here.
package store

import (
	"errors"
	"strings"
)

// Store errors surfaced to the HTTP layer.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCategoryExists indicates a category with the same name already exists.
	ErrCategoryExists = errors.New("category already exists")
	// ErrUnknownCategory indicates a product references a category that does not exist.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrCategoryInUse indicates a category is still referenced by products.
	ErrCategoryInUse = errors.New("category in use")
)

// isUniqueViolation reports whether err is a unique-constraint failure on SQLite or Postgres.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "sqlstate 23505")
}
