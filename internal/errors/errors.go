// Package errors holds the domain errors surfaced to API clients.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// DomainError is an error with a stable machine-readable code and the HTTP
// status it maps to.
type DomainError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies compare equal to their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap returns a copy of e carrying err as its cause.
func (e *DomainError) Wrap(err error) *DomainError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithMessage returns a copy of e with a different message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	cp := *e
	cp.Message = msg
	return &cp
}

// HTTPStatus returns the status code for err, defaulting to 500.
func HTTPStatus(err error) int {
	var de *DomainError
	if stderrors.As(err, &de) && de.Status != 0 {
		return de.Status
	}
	return http.StatusInternalServerError
}

// Code returns the domain code for err, or INTERNAL_ERROR.
func Code(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ErrInternal.Code
}
