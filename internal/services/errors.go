package services

import "errors"

// Domain errors. Controllers match these with errors.Is and map them to
// HTTP status codes; validation details are wrapped around ErrValidation.
var (
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicatePlate    = errors.New("plate already registered")
	ErrHasVehicles       = errors.New("customer still owns vehicles")
	ErrInvalidStatus     = errors.New("unrecognized order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidState      = errors.New("order is not in progress")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)
