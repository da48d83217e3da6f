// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"strings"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// readDB returns the read-replica handle when one is configured, otherwise the
// primary. Read-only queries (feeds, lookups) go through this.
func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

// storeErr wraps a driver failure as a STORE_ERROR unless it already carries an
// application error code.
func storeErr(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewStoreError(err)
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
