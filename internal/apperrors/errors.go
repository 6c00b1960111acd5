package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that no live, cached, or fallback rate exists
// for a currency pair. Recoverable: callers retry or degrade, never abort.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrDuplicateConfirmation indicates a confirmation token was submitted more
// than once. The second submission must fail loudly, not be silently ignored.
var ErrDuplicateConfirmation = errors.New("confirmation token already applied")

// ErrNotSettled indicates a confirmation was attempted while the entry
// session was mid-conversion or over limit.
var ErrNotSettled = errors.New("entry session is not settled")

// ErrInsufficientBalance indicates a withdrawal would push the stored
// balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")
