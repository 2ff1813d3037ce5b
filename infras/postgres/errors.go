package postgres

import (
	"errors"

	"github.com/lib/pq"

	"utabox/shared/constant"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}

	return ""
}

// IsUniqueViolation reports whether err wraps a Postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

// IsExclusionViolation reports whether err wraps a Postgres exclusion
// constraint violation, raised by the bookings no-overlap constraint when two
// transactions race for the same slot.
func IsExclusionViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeExclusionViolation
}

func IsFkViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}
