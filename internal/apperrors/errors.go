// Package apperrors holds the error taxonomy shared by the services and the
// HTTP boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by every NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing post or user.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such %s: %v", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError for entity and id.
func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError, keeping nil as nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// UnsupportedProviderError is returned when attributes are requested for a
// provider key with no registered extractor.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported oauth provider %q", e.Provider)
}

// InvalidAttributesError is returned when a provider attribute map lacks a
// field the login needs.
type InvalidAttributesError struct {
	Reason string
}

func (e *InvalidAttributesError) Error() string {
	return "invalid oauth attributes: " + e.Reason
}

// HTTPStatus maps err onto the status code the boundary responds with.
func HTTPStatus(err error) int {
	var (
		unsupported *UnsupportedProviderError
		invalid     *InvalidAttributesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &unsupported), errors.As(err, &invalid):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
