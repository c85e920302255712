package booking

import "errors"

var (
	ErrInvalidBookingStatus       = errors.New("invalid booking status")
	ErrInvalidPaymentStatus       = errors.New("invalid payment status")
	ErrInvalidReference           = errors.New("invalid booking reference")
	ErrNegativeAmount             = errors.New("amount cannot be negative")
	ErrNonFiniteAmount            = errors.New("amount must be a finite number")
	ErrAmountTooLarge             = errors.New("amount exceeds the storable maximum")
	ErrAmountPrecision            = errors.New("amount has more than two decimal places")
	ErrInvalidUnitPrice           = errors.New("unit price must be positive and fit the maximum group total")
	ErrDuplicateDestination       = errors.New("destination listed more than once")
	ErrCancellationNotAllowed     = errors.New("booking cannot be cancelled")
	ErrStatusTransitionNotAllowed = errors.New("status transition not allowed")
	ErrPaymentNotAllowed          = errors.New("booking is not payable")
	ErrEmptyStatusUpdate          = errors.New("no status supplied")
)
