package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"

	"training-booking-service/config"
	"training-booking-service/internal/module/booking/models/entity"
	"training-booking-service/internal/module/booking/models/response"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/reference"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type repositories struct {
	db             *sqlx.DB
	log            *otelzap.Logger
	httpClient     *circuit.HTTPClient
	cfgUserService *config.UserServiceConfig
}

type Repositories interface {
	// http
	ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error)
	// db
	FindDiscountByCode(ctx context.Context, code string) (entity.DiscountCode, error)
	ConsumeDiscount(ctx context.Context, discountID int64) error
	InsertBooking(ctx context.Context, booking entity.Booking) error
	InsertSpecialRequirements(ctx context.Context, requirements []entity.SpecialRequirement) error
	FindBookingByReference(ctx context.Context, bookingReference string) (entity.Booking, error)
	FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error)
	// Lock* must run inside a transaction; rows stay locked until it ends.
	LockBookingByReference(ctx context.Context, bookingReference string) (entity.Booking, error)
	LockBookingsBySchedule(ctx context.Context, scheduleID int64) ([]entity.Booking, error)
	UpdateBooking(ctx context.Context, booking entity.Booking) error
	FindTransactionByGatewayID(ctx context.Context, gatewayTransactionID string) (entity.PaymentTransaction, error)
	InsertTransaction(ctx context.Context, transaction entity.PaymentTransaction) error
	UpdateTransactionStatus(ctx context.Context, transaction entity.PaymentTransaction) error
	UpsertAttendance(ctx context.Context, record entity.AttendanceRecord) error
}

func New(db *sqlx.DB, log *otelzap.Logger, httpClient *circuit.HTTPClient, cfgUserService *config.UserServiceConfig) Repositories {
	return &repositories{
		db:             db,
		log:            log,
		httpClient:     httpClient,
		cfgUserService: cfgUserService,
	}
}

const bookingColumns = `
	id, user_id, course_schedule_id, discount_code_id, booking_reference, status, payment_status,
	party_size, full_name, email, payment_amount, discount_applied, refund_amount,
	refund_review_required, confirmation_sent, reminder_sent, certificate_issued,
	certificate_issued_date, cancellation_reason, cancelled_at, created_at, updated_at`

// FindDiscountByCode implements Repositories.
func (r *repositories) FindDiscountByCode(ctx context.Context, code string) (entity.DiscountCode, error) {
	query := `
		SELECT id, code, discount_type, discount_value, max_uses, used_count, valid_from, valid_until, is_active
		FROM discount_codes WHERE UPPER(code) = UPPER($1)`

	var discount entity.DiscountCode
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &discount, query, code)
	if err == sql.ErrNoRows {
		return entity.DiscountCode{}, errors.InvalidDiscount(fmt.Sprintf("discount code %s does not exist", code))
	}
	if err != nil {
		r.log.Ctx(ctx).Error("error find discount code", zap.String("code", code), zap.Error(err))
		return entity.DiscountCode{}, errors.InternalServerError("error find discount code")
	}
	return discount, nil
}

// ConsumeDiscount implements Repositories. The usage cap is enforced by the
// update itself so concurrent bookings cannot overspend a code.
func (r *repositories) ConsumeDiscount(ctx context.Context, discountID int64) error {
	query := `
		UPDATE discount_codes SET used_count = used_count + 1
		WHERE id = $1 AND (max_uses IS NULL OR used_count < max_uses)`

	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query, discountID)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error consume discount code", zap.Int64("discount_id", discountID), zap.Error(err))
		return errors.InternalServerError("error consume discount code")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.InvalidDiscount("discount code has been used up")
	}
	return nil
}

// InsertBooking implements Repositories.
func (r *repositories) InsertBooking(ctx context.Context, booking entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, course_schedule_id, discount_code_id, booking_reference, status,
			payment_status, party_size, full_name, email, payment_amount, discount_applied, refund_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (booking_reference) DO NOTHING`

	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.CourseScheduleID, booking.DiscountCodeID, booking.BookingReference,
		booking.Status, booking.PaymentStatus, booking.PartySize, booking.FullName, booking.Email,
		booking.PaymentAmount, booking.DiscountApplied, booking.RefundAmount)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error insert booking", zap.String("booking_reference", booking.BookingReference), zap.Error(err))
		return errors.InternalServerError("error insert booking")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return reference.ErrTaken
	}
	return nil
}

// InsertSpecialRequirements implements Repositories.
func (r *repositories) InsertSpecialRequirements(ctx context.Context, requirements []entity.SpecialRequirement) error {
	query := `INSERT INTO special_requirements (id, booking_id, category, details) VALUES ($1, $2, $3, $4)`

	for _, req := range requirements {
		_, err := database.Conn(ctx, r.db).ExecContext(ctx, query, req.ID, req.BookingID, req.Category, req.Details)
		if err != nil {
			if database.IsRetryable(err) {
				return err
			}
			r.log.Ctx(ctx).Error("error insert special requirement", zap.String("booking_id", req.BookingID.String()), zap.Error(err))
			return errors.InternalServerError("error insert special requirement")
		}
	}
	return nil
}

// FindBookingByReference implements Repositories.
func (r *repositories) FindBookingByReference(ctx context.Context, bookingReference string) (entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = $1`

	var booking entity.Booking
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &booking, query, bookingReference)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound(fmt.Sprintf("booking %s not found", bookingReference))
	}
	if err != nil {
		r.log.Ctx(ctx).Error("error find booking by reference", zap.String("booking_reference", bookingReference), zap.Error(err))
		return entity.Booking{}, errors.InternalServerError("error find booking by reference")
	}
	return booking, nil
}

// FindBookingsByUserID implements Repositories.
func (r *repositories) FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	bookings := []entity.Booking{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &bookings, query, userID)
	if err != nil {
		r.log.Ctx(ctx).Error("error find bookings by user id", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.InternalServerError("error find bookings by user id")
	}
	return bookings, nil
}

// LockBookingByReference implements Repositories.
func (r *repositories) LockBookingByReference(ctx context.Context, bookingReference string) (entity.Booking, error) {
	if !database.InTransaction(ctx) {
		return entity.Booking{}, errors.InternalServerError("booking lock requires a transaction")
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = $1 FOR UPDATE`

	var booking entity.Booking
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &booking, query, bookingReference)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound(fmt.Sprintf("booking %s not found", bookingReference))
	}
	if err != nil {
		if database.IsRetryable(err) {
			return entity.Booking{}, err
		}
		r.log.Ctx(ctx).Error("error lock booking", zap.String("booking_reference", bookingReference), zap.Error(err))
		return entity.Booking{}, errors.InternalServerError("error lock booking")
	}
	return booking, nil
}

// LockBookingsBySchedule implements Repositories. Only bookings still holding
// seats are returned.
func (r *repositories) LockBookingsBySchedule(ctx context.Context, scheduleID int64) ([]entity.Booking, error) {
	if !database.InTransaction(ctx) {
		return nil, errors.InternalServerError("booking lock requires a transaction")
	}

	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE course_schedule_id = $1 AND status IN ('pending', 'confirmed')
		ORDER BY created_at
		FOR UPDATE`

	bookings := []entity.Booking{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &bookings, query, scheduleID)
	if err != nil {
		if database.IsRetryable(err) {
			return nil, err
		}
		r.log.Ctx(ctx).Error("error lock bookings by schedule", zap.Int64("schedule_id", scheduleID), zap.Error(err))
		return nil, errors.InternalServerError("error lock bookings by schedule")
	}
	return bookings, nil
}

// UpdateBooking implements Repositories. Only mutable columns are written;
// the reference and pricing never change after insert.
func (r *repositories) UpdateBooking(ctx context.Context, booking entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, refund_amount = $3, refund_review_required = $4,
			confirmation_sent = $5, cancellation_reason = $6, cancelled_at = $7, updated_at = NOW()
		WHERE id = $8`

	_, err := database.Conn(ctx, r.db).ExecContext(ctx, query,
		booking.Status, booking.PaymentStatus, booking.RefundAmount, booking.RefundReviewRequired,
		booking.ConfirmationSent, booking.CancellationReason, booking.CancelledAt, booking.ID)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error update booking", zap.String("booking_reference", booking.BookingReference), zap.Error(err))
		return errors.InternalServerError("error update booking")
	}
	return nil
}

// FindTransactionByGatewayID implements Repositories.
func (r *repositories) FindTransactionByGatewayID(ctx context.Context, gatewayTransactionID string) (entity.PaymentTransaction, error) {
	query := `
		SELECT id, booking_id, reference, kind, amount, currency, payment_method, gateway_transaction_id,
			status, created_at, updated_at
		FROM payment_transactions WHERE gateway_transaction_id = $1`

	var transaction entity.PaymentTransaction
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &transaction, query, gatewayTransactionID)
	if err == sql.ErrNoRows {
		return entity.PaymentTransaction{}, errors.NotFound(fmt.Sprintf("transaction %s not found", gatewayTransactionID))
	}
	if err != nil {
		if database.IsRetryable(err) {
			return entity.PaymentTransaction{}, err
		}
		r.log.Ctx(ctx).Error("error find transaction by gateway id", zap.String("gateway_transaction_id", gatewayTransactionID), zap.Error(err))
		return entity.PaymentTransaction{}, errors.InternalServerError("error find transaction by gateway id")
	}
	return transaction, nil
}

// InsertTransaction implements Repositories.
func (r *repositories) InsertTransaction(ctx context.Context, transaction entity.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, booking_id, reference, kind, amount, currency, payment_method,
			gateway_transaction_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (reference) DO NOTHING`

	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query,
		transaction.ID, transaction.BookingID, transaction.Reference, transaction.Kind, transaction.Amount,
		transaction.Currency, transaction.PaymentMethod, transaction.GatewayTransactionID, transaction.Status)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		if database.IsUniqueViolation(err) {
			return errors.DuplicateWebhook(fmt.Sprintf("gateway transaction %s already recorded", transaction.GatewayTransactionID.String))
		}
		r.log.Ctx(ctx).Error("error insert transaction", zap.String("reference", transaction.Reference), zap.Error(err))
		return errors.InternalServerError("error insert transaction")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return reference.ErrTaken
	}
	return nil
}

// UpdateTransactionStatus implements Repositories.
func (r *repositories) UpdateTransactionStatus(ctx context.Context, transaction entity.PaymentTransaction) error {
	query := `UPDATE payment_transactions SET status = $1, amount = $2, updated_at = NOW() WHERE id = $3`

	_, err := database.Conn(ctx, r.db).ExecContext(ctx, query, transaction.Status, transaction.Amount, transaction.ID)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error update transaction status", zap.String("reference", transaction.Reference), zap.Error(err))
		return errors.InternalServerError("error update transaction status")
	}
	return nil
}

// UpsertAttendance implements Repositories.
func (r *repositories) UpsertAttendance(ctx context.Context, record entity.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, booking_id, course_schedule_id, present, recorded_by, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (booking_id) DO UPDATE
		SET present = EXCLUDED.present, recorded_by = EXCLUDED.recorded_by, recorded_at = EXCLUDED.recorded_at`

	_, err := database.Conn(ctx, r.db).ExecContext(ctx, query,
		record.ID, record.BookingID, record.CourseScheduleID, record.Present, record.RecordedBy, record.RecordedAt)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		r.log.Ctx(ctx).Error("error upsert attendance", zap.String("booking_id", record.BookingID.String()), zap.Error(err))
		return errors.InternalServerError("error upsert attendance")
	}
	return nil
}

// ValidateToken implements Repositories.
func (r *repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	// http call to user service
	endpoint := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s",
		r.cfgUserService.Host, r.cfgUserService.Port, url.QueryEscape(token))
	resp, err := r.httpClient.Get(endpoint)
	if err != nil {
		r.log.Ctx(ctx).Error("error call user service", zap.Error(err))
		return response.UserServiceValidate{}, errors.UnauthorizedError("user service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Ctx(ctx).Warn("invalid token", zap.Int("status_code", resp.StatusCode))
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	var respData response.UserServiceValidate
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		r.log.Ctx(ctx).Error("error decode user service response", zap.Error(err))
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	if !respData.IsValid {
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	return respData, nil
}
