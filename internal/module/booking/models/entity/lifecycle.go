package entity

import (
	"fmt"

	"training-booking-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow},
}

// a failed attempt can be followed by a successful retry
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusFailed:  {PaymentStatusPaid},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// Active bookings hold seats on their schedule.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (b *Booking) TransitionTo(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return errors.InvalidTransition(fmt.Sprintf("booking %s cannot move from %s to %s", b.BookingReference, b.Status, next))
	}
	b.Status = next
	return nil
}

// PaymentOutcome is what the gateway reports for a transaction.
type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeFailed    PaymentOutcome = "failed"
	OutcomeRefunded  PaymentOutcome = "refunded"
)

func (o PaymentOutcome) TransactionStatus() TransactionStatus {
	switch o {
	case OutcomeSucceeded:
		return TransactionStatusSucceeded
	case OutcomeFailed:
		return TransactionStatusFailed
	default:
		return TransactionStatusRefunded
	}
}

func (o PaymentOutcome) PaymentStatus() PaymentStatus {
	switch o {
	case OutcomeSucceeded:
		return PaymentStatusPaid
	case OutcomeFailed:
		return PaymentStatusFailed
	default:
		return PaymentStatusRefunded
	}
}

// ApplyPayment moves the payment status for a gateway outcome. A successful
// payment also confirms a pending booking; a payment landing on a booking that
// was cancelled meanwhile is kept and flagged for a manual refund. A refund
// made at the gateway records amount, capped at what was paid, and flags a
// booking that still holds its seats for review.
// It reports whether anything changed.
func (b *Booking) ApplyPayment(outcome PaymentOutcome, amount decimal.Decimal) (bool, error) {
	next := outcome.PaymentStatus()
	if b.PaymentStatus == next {
		return false, nil
	}
	if !b.PaymentStatus.CanTransitionTo(next) {
		return false, errors.InvalidTransition(fmt.Sprintf("booking %s payment cannot move from %s to %s", b.BookingReference, b.PaymentStatus, next))
	}

	b.PaymentStatus = next
	switch next {
	case PaymentStatusPaid:
		switch b.Status {
		case BookingStatusPending:
			b.Status = BookingStatusConfirmed
		case BookingStatusCancelled:
			b.RefundReviewRequired = true
		}
	case PaymentStatusRefunded:
		b.RefundAmount = decimal.Min(amount, b.PaymentAmount)
		if b.Status != BookingStatusCancelled {
			b.RefundReviewRequired = true
		}
	}
	return true, nil
}
