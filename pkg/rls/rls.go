package rls

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WithCompany scopes the current transaction to one tenant for
// row-level-security policies. Postgres only; a no-op elsewhere.
func WithCompany(tx *gorm.DB, companyID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		"SET LOCAL app.current_company_id = ?",
		companyID.String(),
	).Error
}
