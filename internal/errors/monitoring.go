package errors

import "net/http"

var (
	ErrInternal = &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	}
	ErrValidation = &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "invalid request",
		Status:  http.StatusBadRequest,
	}
)

var (
	ErrProfileNotFound = &DomainError{
		Code:    "PROFILE_NOT_FOUND",
		Message: "customer profile not found",
		Status:  http.StatusNotFound,
	}
	ErrCaseNotFound = &DomainError{
		Code:    "CASE_NOT_FOUND",
		Message: "suspicious case not found",
		Status:  http.StatusNotFound,
	}
	ErrDuplicateCase = &DomainError{
		Code:    "DUPLICATE_CASE",
		Message: "case number already used by another transaction",
		Status:  http.StatusConflict,
	}
	ErrWatchlistNotFound = &DomainError{
		Code:    "WATCHLIST_NOT_FOUND",
		Message: "watchlist entry not found",
		Status:  http.StatusNotFound,
	}
	ErrExemptionNotFound = &DomainError{
		Code:    "EXEMPTION_NOT_FOUND",
		Message: "exemption not found",
		Status:  http.StatusNotFound,
	}
)
