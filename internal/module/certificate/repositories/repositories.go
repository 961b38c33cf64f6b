package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"training-booking-service/internal/module/certificate/models/entity"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/reference"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type repositories struct {
	db  *sqlx.DB
	log *otelzap.Logger
}

type Repositories interface {
	// LockEligibility locks the booking row; it must run inside a transaction.
	LockEligibility(ctx context.Context, bookingReference string) (entity.Eligibility, error)
	FindCurrentByBookingID(ctx context.Context, bookingID uuid.UUID) (entity.Certificate, error)
	FindByNumber(ctx context.Context, certificateNumber string) (entity.Certificate, error)
	LockByNumber(ctx context.Context, certificateNumber string) (entity.Certificate, error)
	InsertCertificate(ctx context.Context, certificate entity.Certificate) error
	MarkBookingCertificateIssued(ctx context.Context, bookingID uuid.UUID, issueDate time.Time) error
	UpdateStatus(ctx context.Context, certificate entity.Certificate) error
	MarkEmailed(ctx context.Context, certificateID uuid.UUID, at time.Time) (bool, error)
	IncrementDownload(ctx context.Context, certificateID uuid.UUID) (int, error)
	ExpireDue(ctx context.Context, now time.Time) ([]entity.Certificate, error)
}

func New(db *sqlx.DB, log *otelzap.Logger) Repositories {
	return &repositories{
		db:  db,
		log: log,
	}
}

const certificateColumns = `
	cert.id, cert.booking_id, cert.certificate_number, cert.holder_name, cert.course_name,
	cert.duration_hours, cert.issue_date, cert.expiry_date, cert.status, cert.pdf_blob,
	cert.verification_code, cert.emailed, cert.emailed_at, cert.download_count,
	cert.revocation_reason, cert.revoked_at, cert.superseded_by, cert.issued_by,
	cert.created_at, cert.updated_at,
	b.booking_reference, b.user_id AS holder_user_id, b.email AS holder_email`

// LockEligibility implements Repositories.
func (r *repositories) LockEligibility(ctx context.Context, bookingReference string) (entity.Eligibility, error) {
	if !database.InTransaction(ctx) {
		return entity.Eligibility{}, errors.InternalServerError("eligibility lock requires a transaction")
	}

	query := `
		SELECT b.id AS booking_id, b.booking_reference, b.status AS booking_status, b.user_id, b.full_name,
			b.email, b.certificate_issued_date, c.name AS course_name, c.duration_hours,
			c.certification_validity_years, cs.end_time, a.present
		FROM bookings b
		JOIN course_schedules cs ON cs.id = b.course_schedule_id
		JOIN courses c ON c.id = cs.course_id
		LEFT JOIN attendance_records a ON a.booking_id = b.id
		WHERE b.booking_reference = $1
		FOR UPDATE OF b`

	var eligibility entity.Eligibility
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &eligibility, query, bookingReference)
	if err == sql.ErrNoRows {
		return entity.Eligibility{}, errors.NotFound(fmt.Sprintf("booking %s not found", bookingReference))
	}
	if err != nil {
		if database.IsRetryable(err) {
			return entity.Eligibility{}, err
		}
		r.log.Ctx(ctx).Error("error lock certificate eligibility", zap.String("booking_reference", bookingReference), zap.Error(err))
		return entity.Eligibility{}, errors.InternalServerError("error lock certificate eligibility")
	}
	return eligibility, nil
}

// FindCurrentByBookingID implements Repositories. Revoked certificates are
// never current.
func (r *repositories) FindCurrentByBookingID(ctx context.Context, bookingID uuid.UUID) (entity.Certificate, error) {
	query := `SELECT ` + certificateColumns + `
		FROM certificates cert
		JOIN bookings b ON b.id = cert.booking_id
		WHERE cert.booking_id = $1 AND cert.status <> 'revoked'`

	return r.get(ctx, "error find certificate by booking", query, bookingID)
}

// FindByNumber implements Repositories.
func (r *repositories) FindByNumber(ctx context.Context, certificateNumber string) (entity.Certificate, error) {
	query := `SELECT ` + certificateColumns + `
		FROM certificates cert
		JOIN bookings b ON b.id = cert.booking_id
		WHERE cert.certificate_number = $1`

	return r.get(ctx, "error find certificate by number", query, certificateNumber)
}

// LockByNumber implements Repositories.
func (r *repositories) LockByNumber(ctx context.Context, certificateNumber string) (entity.Certificate, error) {
	if !database.InTransaction(ctx) {
		return entity.Certificate{}, errors.InternalServerError("certificate lock requires a transaction")
	}

	query := `SELECT ` + certificateColumns + `
		FROM certificates cert
		JOIN bookings b ON b.id = cert.booking_id
		WHERE cert.certificate_number = $1
		FOR UPDATE OF cert`

	return r.get(ctx, "error lock certificate", query, certificateNumber)
}

func (r *repositories) get(ctx context.Context, msg, query string, arg interface{}) (entity.Certificate, error) {
	var certificate entity.Certificate
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &certificate, query, arg)
	if err == sql.ErrNoRows {
		return entity.Certificate{}, errors.NotFound(fmt.Sprintf("certificate %v not found", arg))
	}
	if err != nil {
		if database.IsRetryable(err) {
			return entity.Certificate{}, err
		}
		r.log.Ctx(ctx).Error(msg, zap.Any("key", arg), zap.Error(err))
		return entity.Certificate{}, errors.InternalServerError(msg)
	}
	return certificate, nil
}

// InsertCertificate implements Repositories.
func (r *repositories) InsertCertificate(ctx context.Context, certificate entity.Certificate) error {
	query := `
		INSERT INTO certificates (id, booking_id, certificate_number, holder_name, course_name, duration_hours,
			issue_date, expiry_date, status, pdf_blob, verification_code, issued_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (certificate_number) DO NOTHING`

	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query,
		certificate.ID, certificate.BookingID, certificate.CertificateNumber, certificate.HolderName,
		certificate.CourseName, certificate.DurationHours, certificate.IssueDate, certificate.ExpiryDate,
		certificate.Status, certificate.PDFBlob, certificate.VerificationCode, certificate.IssuedBy)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error insert certificate", zap.String("certificate_number", certificate.CertificateNumber), zap.Error(err))
		return errors.InternalServerError("error insert certificate")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return reference.ErrTaken
	}
	return nil
}

// MarkBookingCertificateIssued implements Repositories. The first issue date
// is kept on reissue.
func (r *repositories) MarkBookingCertificateIssued(ctx context.Context, bookingID uuid.UUID, issueDate time.Time) error {
	query := `
		UPDATE bookings
		SET certificate_issued = TRUE, certificate_issued_date = COALESCE(certificate_issued_date, $2), updated_at = NOW()
		WHERE id = $1`

	_, err := database.Conn(ctx, r.db).ExecContext(ctx, query, bookingID, issueDate)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error mark booking certificate issued", zap.String("booking_id", bookingID.String()), zap.Error(err))
		return errors.InternalServerError("error mark booking certificate issued")
	}
	return nil
}

// UpdateStatus implements Repositories.
func (r *repositories) UpdateStatus(ctx context.Context, certificate entity.Certificate) error {
	query := `
		UPDATE certificates
		SET status = $1, revocation_reason = $2, revoked_at = $3, superseded_by = $4, updated_at = NOW()
		WHERE id = $5`

	_, err := database.Conn(ctx, r.db).ExecContext(ctx, query,
		certificate.Status, certificate.RevocationReason, certificate.RevokedAt, certificate.SupersededBy, certificate.ID)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error update certificate status", zap.String("certificate_number", certificate.CertificateNumber), zap.Error(err))
		return errors.InternalServerError("error update certificate status")
	}
	return nil
}

// MarkEmailed implements Repositories. It reports false when the certificate
// was already marked.
func (r *repositories) MarkEmailed(ctx context.Context, certificateID uuid.UUID, at time.Time) (bool, error) {
	query := `UPDATE certificates SET emailed = TRUE, emailed_at = $2 WHERE id = $1 AND emailed = FALSE`

	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query, certificateID, at)
	if err != nil {
		r.log.Ctx(ctx).Error("error mark certificate emailed", zap.String("certificate_id", certificateID.String()), zap.Error(err))
		return false, errors.InternalServerError("error mark certificate emailed")
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// IncrementDownload implements Repositories.
func (r *repositories) IncrementDownload(ctx context.Context, certificateID uuid.UUID) (int, error) {
	query := `UPDATE certificates SET download_count = download_count + 1 WHERE id = $1 RETURNING download_count`

	var count int
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &count, query, certificateID)
	if err != nil {
		r.log.Ctx(ctx).Error("error increment certificate download", zap.String("certificate_id", certificateID.String()), zap.Error(err))
		return 0, errors.InternalServerError("error increment certificate download")
	}
	return count, nil
}

// ExpireDue implements Repositories.
func (r *repositories) ExpireDue(ctx context.Context, now time.Time) ([]entity.Certificate, error) {
	query := `
		UPDATE certificates
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND expiry_date <= $1
		RETURNING id, certificate_number, status, expiry_date`

	certificates := []entity.Certificate{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &certificates, query, now)
	if err != nil {
		if database.IsRetryable(err) {
			return nil, err
		}
		r.log.Ctx(ctx).Error("error expire certificates", zap.Error(err))
		return nil, errors.InternalServerError("error expire certificates")
	}
	return certificates, nil
}
