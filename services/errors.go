package services

import "errors"

// Validation and guard failures returned to callers. Controllers map these to
// HTTP status codes; none of them are ever coerced into a success response.
var (
	ErrInvalidDateRange     = errors.New("invalid_date_range")
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrCapacityExceeded     = errors.New("capacity_exceeded")
	ErrRoomUnavailable      = errors.New("room_unavailable")
	ErrInvalidTransition    = errors.New("invalid_transition")
	ErrPaymentRequired      = errors.New("payment_required")
	ErrMissingPaymentMethod = errors.New("missing_payment_method")
	ErrInvalidRefundState   = errors.New("invalid_refund_state")
	ErrNotFound             = errors.New("not_found")

	// ErrStaleVersion signals a lost optimistic-concurrency race on a booking
	// mutation. Retryable, unlike the guard violations above.
	ErrStaleVersion = errors.New("stale_version")

	// ErrBookingNotPending guards stay modifications: dates, room and services
	// may only change while the booking is still pending.
	ErrBookingNotPending = errors.New("booking_not_pending")
)
