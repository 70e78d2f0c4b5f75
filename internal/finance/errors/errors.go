package errors

import (
	"errors"
	"fmt"
)

// Reference kinds for ForbiddenReferenceError. The API distinguishes the two
// cases so the client can point at the right form field.
const (
	ReferenceCategory = "category"
	ReferenceWallet   = "wallet"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// NotFoundError marks an entity that is absent or not owned by the caller.
// The two cases are deliberately indistinguishable to the client.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

// ForbiddenReferenceError marks a transaction payload referencing a category
// or bank account the caller does not own.
type ForbiddenReferenceError struct {
	Reference string // ReferenceCategory or ReferenceWallet
}

func (e *ForbiddenReferenceError) Error() string {
	return fmt.Sprintf("referenced %s does not belong to the caller", e.Reference)
}

func NewForbiddenReferenceError(reference string) error {
	return &ForbiddenReferenceError{Reference: reference}
}

func IsForbiddenReferenceError(err error) bool {
	var forbiddenError *ForbiddenReferenceError
	return errors.As(err, &forbiddenError)
}

// ResourceInUseError blocks deletion of a bank account or category while
// transactions still reference it.
type ResourceInUseError struct {
	Resource string
}

func (e *ResourceInUseError) Error() string {
	return fmt.Sprintf("%s still has transactions attached", e.Resource)
}

func NewResourceInUseError(resource string) error {
	return &ResourceInUseError{Resource: resource}
}

func IsResourceInUseError(err error) bool {
	var inUseError *ResourceInUseError
	return errors.As(err, &inUseError)
}

// ConflictError marks a uniqueness violation on insert.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	return errors.As(err, &conflictError)
}
