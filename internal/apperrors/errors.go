package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrStorage indicates that the persistence layer could not complete an operation.
var ErrStorage = errors.New("storage error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUpstream indicates that an external service returned an error.
var ErrUpstream = errors.New("upstream service error")

// ErrUnavailable indicates that an external dependency is temporarily unavailable.
var ErrUnavailable = errors.New("service unavailable")

// Kind is the machine readable reason attached to an AppError.
type Kind string

const (
	KindInvalidRequest Kind = "InvalidRequest"

	// Journal posting
	KindEmptyEntry      Kind = "EmptyEntry"
	KindMalformedLine   Kind = "MalformedLine"
	KindUnbalanced      Kind = "Unbalanced"
	KindUnknownAccount  Kind = "UnknownAccount"
	KindUnknownEntry    Kind = "UnknownEntry"
	KindAlreadyReversed Kind = "AlreadyReversed"

	// Chart of accounts
	KindInvalidAccountType    Kind = "InvalidAccountType"
	KindNormalBalanceMismatch Kind = "NormalBalanceMismatch"
	KindDuplicateAccount      Kind = "DuplicateAccount"
	KindAccountInUse          Kind = "AccountInUse"

	// Contacts and invoices
	KindUnknownContact          Kind = "UnknownContact"
	KindContactInUse            Kind = "ContactInUse"
	KindUnknownInvoice          Kind = "UnknownInvoice"
	KindDuplicateInvoice        Kind = "DuplicateInvoice"
	KindInvalidStatusTransition Kind = "InvalidStatusTransition"
	KindPDFNotFound             Kind = "PDFNotFound"

	// Reconciliations
	KindUnknownReconciliation  Kind = "UnknownReconciliation"
	KindReconciliationMismatch Kind = "ReconciliationMismatch"
	KindAlreadyCompleted       Kind = "AlreadyCompleted"

	KindDuplicate          Kind = "Duplicate"
	KindStorage            Kind = "StorageError"
	KindUnauthorized       Kind = "Unauthorized"
	KindUpstream           Kind = "UpstreamError"
	KindServiceUnavailable Kind = "ServiceUnavailable"
)

// AppError carries a category sentinel, a machine readable kind and a human readable reason.
// errors.Is matches it against its category, so callers can keep using apperrors.ErrX checks.
type AppError struct {
	Category error
	Kind     Kind
	Reason   string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	return target == e.Category
}

// NewAppError builds an AppError in the given category.
func NewAppError(category error, kind Kind, reason string, err error) *AppError {
	return &AppError{Category: category, Kind: kind, Reason: reason, Err: err}
}

func NewValidationError(kind Kind, reason string) *AppError {
	return NewAppError(ErrValidation, kind, reason, nil)
}

func NewNotFoundError(kind Kind, reason string) *AppError {
	return NewAppError(ErrNotFound, kind, reason, nil)
}

func NewConflictError(kind Kind, reason string) *AppError {
	return NewAppError(ErrConflict, kind, reason, nil)
}

// NewStorageError wraps a persistence failure. The underlying error is kept for logging
// but never exposed to clients.
func NewStorageError(reason string, err error) *AppError {
	return NewAppError(ErrStorage, KindStorage, reason, err)
}

// AsStorageError returns err unchanged when it already carries a category, otherwise it is
// wrapped as a storage failure.
func AsStorageError(reason string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return NewStorageError(reason, err)
}

// KindOf extracts the kind and reason from err. Errors without an AppError in their chain
// are reported as storage failures with a generic reason.
func KindOf(err error) (Kind, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, appErr.Reason
	}
	return KindStorage, "internal error"
}
