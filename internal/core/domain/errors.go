package domain

import "errors"

var (
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrItemUnavailable     = errors.New("menu item is not available")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// ErrStorageUnavailable is returned by the persistence layer when the
// backing store cannot be read or written.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrKeyNotFound is returned by a key-value store when the key has never been set.
var ErrKeyNotFound = errors.New("key not found")
