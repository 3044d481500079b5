package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the restock domain. Use errors.Is() to check these;
// the message text attached at the failure site is for display only.
var (
	// ErrValidation indicates malformed input to a constructor or mutator.
	// Always caller-recoverable: fix the input and retry.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateItem indicates an attempt to add a product that is already
	// in the session. Matches ErrValidation via errors.Is.
	ErrDuplicateItem = fmt.Errorf("%w: duplicate item", ErrValidation)

	// ErrInvalidTransition indicates a lifecycle operation called outside its
	// required source status. Matches ErrValidation via errors.Is.
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrValidation)

	// ErrSessionNotFound indicates the requested restock session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists indicates a session with the same ID already exists.
	ErrSessionExists = errors.New("session already exists")

	// ErrItemNotFound indicates the session has no item for the given product.
	ErrItemNotFound = errors.New("item not found")

	// ErrProductNotFound indicates a referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrSupplierNotFound indicates a referenced supplier does not exist.
	ErrSupplierNotFound = errors.New("supplier not found")
)
