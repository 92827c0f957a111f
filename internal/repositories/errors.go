package repositories

import apperrors "amlwatch/internal/errors"

var (
	ErrProfileNotFound   = apperrors.ErrProfileNotFound
	ErrCaseNotFound      = apperrors.ErrCaseNotFound
	ErrDuplicateCase     = apperrors.ErrDuplicateCase
	ErrWatchlistNotFound = apperrors.ErrWatchlistNotFound
	ErrExemptionNotFound = apperrors.ErrExemptionNotFound
)
