package services

import (
	"errors"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
)

// isNotFound reports whether err is (or wraps) the not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// isConflict reports whether err is (or wraps) the state-conflict sentinel.
func isConflict(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}
