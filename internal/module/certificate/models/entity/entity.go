package entity

import (
	"database/sql"
	"fmt"
	"time"

	"training-booking-service/internal/pkg/errors"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
	StatusExpired Status = "expired"
)

type Certificate struct {
	ID                uuid.UUID      `db:"id"`
	BookingID         uuid.UUID      `db:"booking_id"`
	CertificateNumber string         `db:"certificate_number"`
	HolderName        string         `db:"holder_name"`
	CourseName        string         `db:"course_name"`
	DurationHours     int            `db:"duration_hours"`
	IssueDate         time.Time      `db:"issue_date"`
	ExpiryDate        time.Time      `db:"expiry_date"`
	Status            Status         `db:"status"`
	PDFBlob           []byte         `db:"pdf_blob"`
	VerificationCode  string         `db:"verification_code"`
	Emailed           bool           `db:"emailed"`
	EmailedAt         sql.NullTime   `db:"emailed_at"`
	DownloadCount     int            `db:"download_count"`
	RevocationReason  sql.NullString `db:"revocation_reason"`
	RevokedAt         sql.NullTime   `db:"revoked_at"`
	SupersededBy      uuid.NullUUID  `db:"superseded_by"`
	IssuedBy          sql.NullInt64  `db:"issued_by"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         sql.NullTime   `db:"updated_at"`

	// joined from bookings
	BookingReference string `db:"booking_reference"`
	HolderUserID     int64  `db:"holder_user_id"`
	HolderEmail      string `db:"holder_email"`
}

// Revoke is final: a revoked certificate never becomes active again.
func (c *Certificate) Revoke(reason string, now time.Time) error {
	if c.Status == StatusRevoked {
		return errors.InvalidTransition(fmt.Sprintf("certificate %s is already revoked", c.CertificateNumber))
	}
	c.Status = StatusRevoked
	c.RevocationReason = sql.NullString{String: reason, Valid: true}
	c.RevokedAt = sql.NullTime{Time: now, Valid: true}
	return nil
}

// Eligibility is the booking state a certificate is issued from.
type Eligibility struct {
	BookingID             uuid.UUID     `db:"booking_id"`
	BookingReference      string        `db:"booking_reference"`
	BookingStatus         string        `db:"booking_status"`
	UserID                int64         `db:"user_id"`
	FullName              string        `db:"full_name"`
	Email                 string        `db:"email"`
	CertificateIssuedDate sql.NullTime  `db:"certificate_issued_date"`
	CourseName            string        `db:"course_name"`
	DurationHours         int           `db:"duration_hours"`
	ValidityYears         sql.NullInt32 `db:"certification_validity_years"`
	ScheduleEnd           time.Time     `db:"end_time"`
	Present               sql.NullBool  `db:"present"`
}

func (e Eligibility) Check() error {
	switch {
	case e.BookingStatus != "completed":
		return errors.NotEligible(fmt.Sprintf("booking %s is %s, certificates are issued for completed bookings", e.BookingReference, e.BookingStatus))
	case !e.Present.Valid || !e.Present.Bool:
		return errors.NotEligible(fmt.Sprintf("booking %s has no recorded attendance", e.BookingReference))
	case !e.ValidityYears.Valid || e.ValidityYears.Int32 <= 0:
		return errors.NotEligible(fmt.Sprintf("course %s does not award a certificate", e.CourseName))
	}
	return nil
}

// IssueDay truncates t to the UTC calendar day certificates are dated with.
func IssueDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ExpiryDate(issue time.Time, validityYears int) time.Time {
	return issue.AddDate(validityYears, 0, 0)
}
