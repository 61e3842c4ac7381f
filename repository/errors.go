package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the services react to.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqExclusionViolation  = "23P01"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports a unique index violation on any driver.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pqCode(err) == pqUniqueViolation
}

// IsForeignKeyViolation reports a missing or still referenced parent row.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || pqCode(err) == pqForeignKeyViolation {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// IsOverlap reports a violation of the bookings_no_overlap exclusion constraint.
func IsOverlap(err error) bool {
	return pqCode(err) == pqExclusionViolation
}
