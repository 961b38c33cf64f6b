package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Booking struct {
	ID                    uuid.UUID       `db:"id"`
	UserID                int64           `db:"user_id"`
	CourseScheduleID      int64           `db:"course_schedule_id"`
	DiscountCodeID        sql.NullInt64   `db:"discount_code_id"`
	BookingReference      string          `db:"booking_reference"`
	Status                BookingStatus   `db:"status"`
	PaymentStatus         PaymentStatus   `db:"payment_status"`
	PartySize             int             `db:"party_size"`
	FullName              string          `db:"full_name"`
	Email                 string          `db:"email"`
	PaymentAmount         decimal.Decimal `db:"payment_amount"`
	DiscountApplied       decimal.Decimal `db:"discount_applied"`
	RefundAmount          decimal.Decimal `db:"refund_amount"`
	RefundReviewRequired  bool            `db:"refund_review_required"`
	ConfirmationSent      bool            `db:"confirmation_sent"`
	ReminderSent          bool            `db:"reminder_sent"`
	CertificateIssued     bool            `db:"certificate_issued"`
	CertificateIssuedDate sql.NullTime    `db:"certificate_issued_date"`
	CancellationReason    sql.NullString  `db:"cancellation_reason"`
	CancelledAt           sql.NullTime    `db:"cancelled_at"`
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             sql.NullTime    `db:"updated_at"`
}

type TransactionKind string

const (
	TransactionKindPayment TransactionKind = "payment"
	TransactionKindRefund  TransactionKind = "refund"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSucceeded TransactionStatus = "succeeded"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// PaymentTransaction is one gateway event for a booking. A booking has many;
// the latest decides its payment status.
type PaymentTransaction struct {
	ID                   uuid.UUID         `db:"id"`
	BookingID            uuid.UUID         `db:"booking_id"`
	Reference            string            `db:"reference"`
	Kind                 TransactionKind   `db:"kind"`
	Amount               decimal.Decimal   `db:"amount"`
	Currency             string            `db:"currency"`
	PaymentMethod        string            `db:"payment_method"`
	GatewayTransactionID sql.NullString    `db:"gateway_transaction_id"`
	Status               TransactionStatus `db:"status"`
	CreatedAt            time.Time         `db:"created_at"`
	UpdatedAt            sql.NullTime      `db:"updated_at"`
}

type RequirementCategory string

const (
	RequirementAccessibility RequirementCategory = "accessibility"
	RequirementMedical       RequirementCategory = "medical"
	RequirementDietary       RequirementCategory = "dietary"
	RequirementOther         RequirementCategory = "other"
)

type SpecialRequirement struct {
	ID        uuid.UUID           `db:"id"`
	BookingID uuid.UUID           `db:"booking_id"`
	Category  RequirementCategory `db:"category"`
	Details   string              `db:"details"`
	CreatedAt time.Time           `db:"created_at"`
}

type AttendanceRecord struct {
	ID               uuid.UUID `db:"id"`
	BookingID        uuid.UUID `db:"booking_id"`
	CourseScheduleID int64     `db:"course_schedule_id"`
	Present          bool      `db:"present"`
	RecordedBy       int64     `db:"recorded_by"`
	RecordedAt       time.Time `db:"recorded_at"`
}
