package domain

import "errors"

var (
	// ErrNotFound is returned when a store lookup misses.
	ErrNotFound = errors.New("entity not found")
	// ErrVersionConflict signals a stale concurrency token on update.
	ErrVersionConflict = errors.New("version conflict")
	// ErrValidation covers malformed or missing required fields.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyCart is returned by checkout when no cart line survives.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock rejects a cart quantity above current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrUsernameTaken enforces login handle uniqueness across customers.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrCustomerReferenced refuses deleting a customer with orders on file.
	ErrCustomerReferenced = errors.New("customer is referenced by orders")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsVersionConflict(err error) bool { return errors.Is(err, ErrVersionConflict) }
