package services

import (
	"fmt"

	"hotel-booking-engine/models"
)

// statusGraph lists the legal next statuses from each status. Anything not
// listed is rejected. Guards that also depend on payment state are checked in
// CheckStatusTransition, not encoded here.
var statusGraph = map[string][]string{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusCheckedIn, models.StatusCancelled},
	models.StatusCheckedIn:  {models.StatusCheckedOut, models.StatusCancelled},
	models.StatusCheckedOut: {models.StatusCompleted},
	models.StatusCancelled:  {},
	models.StatusCompleted:  {},
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	_, ok := statusGraph[s]
	return ok
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	return s == models.PaymentPending || s == models.PaymentPaid || s == models.PaymentRefunded
}

// CheckStatusTransition decides whether a booking currently at (status,
// paymentStatus) may move to next. Returns nil when the transition is legal,
// otherwise a typed error naming the current state and the failed guard.
func CheckStatusTransition(status, paymentStatus, next string) error {
	if !ValidStatus(next) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	allowed := false
	for _, s := range statusGraph[status] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: cannot move booking from %q to %q", ErrInvalidTransition, status, next)
	}

	// A guest cannot be checked out while payment is still pending.
	if next == models.StatusCheckedOut && paymentStatus != models.PaymentPaid {
		return fmt.Errorf("%w: cannot check out while payment is %q", ErrPaymentRequired, paymentStatus)
	}

	return nil
}

// CheckPaymentTransition decides whether a booking currently at (status,
// paymentStatus) may move its payment status to next. method is required for
// pending -> paid. Refunds are all-or-nothing and only valid for a cancelled,
// previously paid booking.
func CheckPaymentTransition(status, paymentStatus, next, method string) error {
	if !ValidPaymentStatus(next) {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidTransition, next)
	}

	switch {
	case paymentStatus == models.PaymentPending && next == models.PaymentPaid:
		if method == "" {
			return fmt.Errorf("%w: a payment method is required to mark a booking paid", ErrMissingPaymentMethod)
		}
		return nil

	case paymentStatus == models.PaymentPaid && next == models.PaymentRefunded:
		if status != models.StatusCancelled {
			return fmt.Errorf("%w: refund requires a cancelled booking, status is %q", ErrInvalidRefundState, status)
		}
		return nil
	}

	return fmt.Errorf("%w: cannot move payment from %q to %q", ErrInvalidTransition, paymentStatus, next)
}
