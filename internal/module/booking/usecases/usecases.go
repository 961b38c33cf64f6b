package usecases

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"training-booking-service/internal/module/booking/models/entity"
	"training-booking-service/internal/module/booking/models/request"
	"training-booking-service/internal/module/booking/models/response"
	"training-booking-service/internal/module/booking/policy"
	"training-booking-service/internal/module/booking/repositories"
	scheduleUsecases "training-booking-service/internal/module/schedule/usecases"
	"training-booking-service/internal/pkg/audit"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/metrics"
	"training-booking-service/internal/pkg/notification"
	"training-booking-service/internal/pkg/reference"
	"training-booking-service/internal/pkg/scheduler"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04:05"

const (
	WebhookApplied   = "applied"
	WebhookDuplicate = "duplicate"
	WebhookIgnored   = "ignored"
)

type usecase struct {
	repo          repositories.Repositories
	schedules     scheduleUsecases.Usecase
	tx            database.Transactor
	refs          *reference.Generator
	enqueuer      scheduler.Enqueuer
	notifier      notification.Dispatcher
	audit         audit.Logger
	policy        *policy.Policy
	log           *otelzap.Logger
	paymentExpiry time.Duration
	currency      string
	now           func() time.Time
}

type Usecase interface {
	// http
	CreateBooking(ctx context.Context, payload *request.CreateBooking) (response.BookingCreated, error)
	ShowBookings(ctx context.Context, userID int64) ([]response.Booking, error)
	GetBooking(ctx context.Context, bookingReference string, userID int64, admin bool) (response.Booking, error)
	CancelBooking(ctx context.Context, payload *request.CancelBooking) (response.Cancellation, error)
	IssueRefund(ctx context.Context, payload *request.ManualRefund) (response.Refund, error)
	CompleteSchedule(ctx context.Context, payload *request.CompleteSchedule) (response.Completion, error)
	// webhook and queue
	HandlePaymentWebhook(ctx context.Context, payload *request.PaymentWebhook) (response.WebhookResult, error)
	// scheduler
	ExpirePendingBooking(ctx context.Context, bookingReference string) error
}

type Options struct {
	PaymentExpiry time.Duration
	Currency      string
	Policy        *policy.Policy
	Now           func() time.Time
}

func New(
	repo repositories.Repositories,
	schedules scheduleUsecases.Usecase,
	tx database.Transactor,
	refs *reference.Generator,
	enqueuer scheduler.Enqueuer,
	notifier notification.Dispatcher,
	auditLog audit.Logger,
	log *otelzap.Logger,
	opts Options,
) Usecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Policy == nil {
		opts.Policy = policy.New(nil)
	}
	if opts.PaymentExpiry <= 0 {
		opts.PaymentExpiry = 30 * time.Minute
	}
	if opts.Currency == "" {
		opts.Currency = "GBP"
	}
	return &usecase{
		repo:          repo,
		schedules:     schedules,
		tx:            tx,
		refs:          refs,
		enqueuer:      enqueuer,
		notifier:      notifier,
		audit:         auditLog,
		policy:        opts.Policy,
		log:           log,
		paymentExpiry: opts.PaymentExpiry,
		currency:      opts.Currency,
		now:           opts.Now,
	}
}

func (u *usecase) CreateBooking(ctx context.Context, payload *request.CreateBooking) (response.BookingCreated, error) {
	span, ctx := apm.StartSpan(ctx, "booking.CreateBooking", "usecase")
	defer span.End()

	resp, err := u.createBooking(ctx, payload)
	switch {
	case err == nil:
		metrics.RecordBooking("created")
	case errors.Is(err, errors.KindCapacityExceeded):
		metrics.RecordBooking("capacity_exceeded")
	case errors.Is(err, errors.KindInvalidDiscount):
		metrics.RecordBooking("invalid_discount")
	default:
		metrics.RecordBooking("error")
	}
	return resp, err
}

func (u *usecase) createBooking(ctx context.Context, payload *request.CreateBooking) (response.BookingCreated, error) {
	schedule, err := u.schedules.GetSchedule(ctx, payload.CourseScheduleID)
	if err != nil {
		return response.BookingCreated{}, err
	}
	course, err := u.schedules.GetCourse(ctx, schedule.CourseID)
	if err != nil {
		return response.BookingCreated{}, err
	}

	now := u.now()
	subtotal := course.Price.Mul(decimal.NewFromInt(int64(payload.PartySize)))

	var discountCode *entity.DiscountCode
	discountAmount := decimal.Zero
	if payload.DiscountCode != "" {
		dc, err := u.repo.FindDiscountByCode(ctx, payload.DiscountCode)
		if err != nil {
			return response.BookingCreated{}, err
		}
		discountAmount, err = dc.Discount(subtotal, now)
		if err != nil {
			return response.BookingCreated{}, err
		}
		discountCode = &dc
	}

	booking := entity.Booking{
		ID:               uuid.New(),
		UserID:           payload.UserID,
		CourseScheduleID: payload.CourseScheduleID,
		Status:           entity.BookingStatusPending,
		PaymentStatus:    entity.PaymentStatusPending,
		PartySize:        payload.PartySize,
		FullName:         payload.FullName,
		Email:            payload.Email,
		PaymentAmount:    subtotal.Sub(discountAmount),
		DiscountApplied:  discountAmount,
		RefundAmount:     decimal.Zero,
		CreatedAt:        now,
	}
	if discountCode != nil {
		booking.DiscountCodeID = sql.NullInt64{Int64: discountCode.ID, Valid: true}
	}
	// nothing to collect
	if booking.PaymentAmount.IsZero() {
		booking.Status = entity.BookingStatusConfirmed
		booking.PaymentStatus = entity.PaymentStatusPaid
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.schedules.Reserve(ctx, payload.CourseScheduleID, payload.PartySize); err != nil {
			return err
		}

		if discountCode != nil {
			if err := u.repo.ConsumeDiscount(ctx, discountCode.ID); err != nil {
				return err
			}
		}

		ref, err := u.refs.Allocate(ctx, reference.KindBooking, now, func(ref string) error {
			booking.BookingReference = ref
			return u.repo.InsertBooking(ctx, booking)
		})
		if err != nil {
			return err
		}
		booking.BookingReference = ref

		if len(payload.SpecialRequirements) == 0 {
			return nil
		}
		requirements := make([]entity.SpecialRequirement, 0, len(payload.SpecialRequirements))
		for _, req := range payload.SpecialRequirements {
			requirements = append(requirements, entity.SpecialRequirement{
				ID:        uuid.New(),
				BookingID: booking.ID,
				Category:  entity.RequirementCategory(req.Category),
				Details:   req.Details,
			})
		}
		return u.repo.InsertSpecialRequirements(ctx, requirements)
	})
	if err != nil {
		return response.BookingCreated{}, err
	}

	resp := response.BookingCreated{
		BookingReference: booking.BookingReference,
		Status:           string(booking.Status),
		PaymentStatus:    string(booking.PaymentStatus),
		PaymentAmount:    booking.PaymentAmount.StringFixed(2),
	}

	data := map[string]string{
		"booking_reference": booking.BookingReference,
		"course_name":       course.Name,
		"start_time":        schedule.StartTime,
		"party_size":        fmt.Sprintf("%d", booking.PartySize),
		"payment_amount":    booking.PaymentAmount.StringFixed(2),
		"currency":          u.currency,
	}

	if booking.Status == entity.BookingStatusPending {
		expiry := now.Add(u.paymentExpiry)
		resp.PaymentExpiry = expiry.Format(timeLayout)
		data["payment_expiry"] = resp.PaymentExpiry

		if _, err := u.enqueuer.EnqueuePaymentExpiry(ctx, booking.BookingReference, expiry); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error enqueue payment expiry: %v", err), zap.String("booking_reference", booking.BookingReference))
		}
		u.notifier.Send(ctx, notification.TopicBookingCreated, u.message(booking, "Your booking is reserved", "booking_created", data))
	} else {
		u.notifier.Send(ctx, notification.TopicBookingConfirmed, u.message(booking, "Your booking is confirmed", "booking_confirmed", data))
	}

	return resp, nil
}

func (u *usecase) ShowBookings(ctx context.Context, userID int64) ([]response.Booking, error) {
	bookings, err := u.repo.FindBookingsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]response.Booking, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toResponse(b))
	}
	return resp, nil
}

func (u *usecase) GetBooking(ctx context.Context, bookingReference string, userID int64, admin bool) (response.Booking, error) {
	if !reference.Validate(reference.KindBooking, bookingReference) {
		return response.Booking{}, errors.BadRequest(fmt.Sprintf("malformed booking reference %s", bookingReference))
	}

	booking, err := u.repo.FindBookingByReference(ctx, bookingReference)
	if err != nil {
		return response.Booking{}, err
	}
	// other users' bookings are reported as missing
	if !admin && booking.UserID != userID {
		return response.Booking{}, errors.NotFound(fmt.Sprintf("booking %s not found", bookingReference))
	}
	return toResponse(booking), nil
}

// CancelBooking cancels a booking once. Repeated calls find it cancelled and
// return the recorded outcome without releasing seats or refunding again.
func (u *usecase) CancelBooking(ctx context.Context, payload *request.CancelBooking) (response.Cancellation, error) {
	span, ctx := apm.StartSpan(ctx, "booking.CancelBooking", "usecase")
	defer span.End()

	if payload.Emergency && !payload.Admin {
		return response.Cancellation{}, errors.Forbidden("emergency cancellations are made by an administrator")
	}

	now := u.now()
	var (
		booking  entity.Booking
		decision policy.Decision
		refundTx entity.PaymentTransaction
		already  bool
	)

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		booking, err = u.repo.LockBookingByReference(ctx, payload.BookingReference)
		if err != nil {
			return err
		}
		if !payload.Admin && booking.UserID != payload.UserID {
			return errors.NotFound(fmt.Sprintf("booking %s not found", payload.BookingReference))
		}

		if booking.Status == entity.BookingStatusCancelled {
			already = true
			return nil
		}
		before := booking.Status
		if err := booking.TransitionTo(entity.BookingStatusCancelled); err != nil {
			return err
		}

		capacity, err := u.schedules.Release(ctx, booking.CourseScheduleID, booking.PartySize)
		if err != nil {
			return err
		}
		if !now.Before(capacity.StartTime) {
			return errors.InvalidTransition(fmt.Sprintf("booking %s cannot be cancelled after the course has started", booking.BookingReference))
		}

		booking.CancellationReason = sql.NullString{String: payload.Reason, Valid: true}
		booking.CancelledAt = sql.NullTime{Time: now, Valid: true}

		if booking.PaymentStatus == entity.PaymentStatusPaid {
			decision = u.policy.Evaluate(booking.PaymentAmount, capacity.StartTime, now, payload.Emergency)
			switch {
			case decision.ReviewRequired:
				booking.RefundReviewRequired = true
			case decision.RefundAmount.IsPositive():
				refundTx, err = u.refund(ctx, &booking, decision.RefundAmount, now)
				if err != nil {
					return err
				}
			}
		} else {
			decision = policy.Decision{Tier: policy.TierNone, RefundAmount: decimal.Zero}
		}

		if err := u.repo.UpdateBooking(ctx, booking); err != nil {
			return err
		}

		if !payload.Admin {
			return nil
		}
		return u.audit.Admin(ctx, audit.AdminEntry{
			ActorID:    payload.UserID,
			Action:     "booking_cancelled",
			EntityType: "booking",
			EntityID:   booking.BookingReference,
			Before:     map[string]string{"status": string(before)},
			After: map[string]string{
				"status":        string(booking.Status),
				"refund_tier":   string(decision.Tier),
				"refund_amount": booking.RefundAmount.StringFixed(2),
				"emergency":     fmt.Sprintf("%t", payload.Emergency),
			},
		})
	})
	if err != nil {
		return response.Cancellation{}, err
	}

	resp := response.Cancellation{
		BookingReference: booking.BookingReference,
		Status:           string(booking.Status),
		PaymentStatus:    string(booking.PaymentStatus),
		RefundAmount:     booking.RefundAmount.StringFixed(2),
		ReviewRequired:   booking.RefundReviewRequired,
	}
	if already {
		u.log.Ctx(ctx).Info("booking already cancelled", zap.String("booking_reference", booking.BookingReference))
		return resp, nil
	}

	resp.RefundTier = string(decision.Tier)
	resp.RefundReference = refundTx.Reference
	metrics.RecordCancellation(string(decision.Tier))

	u.notifier.Send(ctx, notification.TopicBookingCancelled, u.message(booking, "Your booking has been cancelled", "booking_cancelled", map[string]string{
		"booking_reference": booking.BookingReference,
		"refund_amount":     booking.RefundAmount.StringFixed(2),
		"refund_tier":       string(decision.Tier),
		"currency":          u.currency,
	}))

	return resp, nil
}

// IssueRefund settles a cancellation that was held for manual review.
func (u *usecase) IssueRefund(ctx context.Context, payload *request.ManualRefund) (response.Refund, error) {
	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil || !amount.IsPositive() {
		return response.Refund{}, errors.BadRequest("refund amount must be a positive number")
	}
	amount = amount.Round(2)

	now := u.now()
	var (
		booking  entity.Booking
		refundTx entity.PaymentTransaction
	)

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		booking, err = u.repo.LockBookingByReference(ctx, payload.BookingReference)
		if err != nil {
			return err
		}
		if booking.Status != entity.BookingStatusCancelled || !booking.RefundReviewRequired {
			return errors.InvalidTransition(fmt.Sprintf("booking %s is not awaiting a manual refund", booking.BookingReference))
		}
		if amount.GreaterThan(booking.PaymentAmount) {
			return errors.BadRequest(fmt.Sprintf("refund amount exceeds the %s paid", booking.PaymentAmount.StringFixed(2)))
		}

		refundTx, err = u.refund(ctx, &booking, amount, now)
		if err != nil {
			return err
		}
		booking.RefundReviewRequired = false

		if err := u.repo.UpdateBooking(ctx, booking); err != nil {
			return err
		}

		return u.audit.Admin(ctx, audit.AdminEntry{
			ActorID:    payload.ActorID,
			Action:     "booking_refunded",
			EntityType: "booking",
			EntityID:   booking.BookingReference,
			Before:     map[string]string{"payment_status": string(entity.PaymentStatusPaid)},
			After: map[string]string{
				"payment_status":   string(booking.PaymentStatus),
				"refund_amount":    booking.RefundAmount.StringFixed(2),
				"refund_reference": refundTx.Reference,
				"reason":           payload.Reason,
			},
		})
	})
	if err != nil {
		return response.Refund{}, err
	}

	metrics.RecordCancellation("manual_refund")
	return response.Refund{
		BookingReference: booking.BookingReference,
		RefundReference:  refundTx.Reference,
		RefundAmount:     booking.RefundAmount.StringFixed(2),
		PaymentStatus:    string(booking.PaymentStatus),
	}, nil
}

// refund records a refund transaction under a fresh RFD reference and marks
// the booking refunded.
func (u *usecase) refund(ctx context.Context, booking *entity.Booking, amount decimal.Decimal, now time.Time) (entity.PaymentTransaction, error) {
	if !booking.PaymentStatus.CanTransitionTo(entity.PaymentStatusRefunded) {
		return entity.PaymentTransaction{}, errors.InvalidTransition(fmt.Sprintf("booking %s is %s and cannot be refunded", booking.BookingReference, booking.PaymentStatus))
	}

	transaction := entity.PaymentTransaction{
		ID:        uuid.New(),
		BookingID: booking.ID,
		Kind:      entity.TransactionKindRefund,
		Amount:    amount,
		Currency:  u.currency,
		Status:    entity.TransactionStatusRefunded,
	}
	ref, err := u.refs.Allocate(ctx, reference.KindRefund, now, func(ref string) error {
		transaction.Reference = ref
		return u.repo.InsertTransaction(ctx, transaction)
	})
	if err != nil {
		return entity.PaymentTransaction{}, err
	}
	transaction.Reference = ref

	booking.PaymentStatus = entity.PaymentStatusRefunded
	booking.RefundAmount = amount
	return transaction, nil
}

// HandlePaymentWebhook applies one gateway delivery. Unknown bookings and
// repeated deliveries are acknowledged without changing anything.
func (u *usecase) HandlePaymentWebhook(ctx context.Context, payload *request.PaymentWebhook) (response.WebhookResult, error) {
	span, ctx := apm.StartSpan(ctx, "booking.HandlePaymentWebhook", "usecase")
	defer span.End()

	result, err := u.handlePaymentWebhook(ctx, payload)
	if err != nil {
		metrics.RecordPaymentWebhook(payload.Outcome, "error")
		return response.WebhookResult{}, err
	}
	metrics.RecordPaymentWebhook(payload.Outcome, result.Result)
	return result, nil
}

func (u *usecase) handlePaymentWebhook(ctx context.Context, payload *request.PaymentWebhook) (response.WebhookResult, error) {
	result := response.WebhookResult{BookingReference: payload.BookingReference}
	outcome := entity.PaymentOutcome(payload.Outcome)

	if !reference.Validate(reference.KindBooking, payload.BookingReference) {
		u.log.Ctx(ctx).Warn("payment webhook for malformed booking reference", zap.String("booking_reference", payload.BookingReference))
		result.Result = WebhookIgnored
		return result, nil
	}

	var amount decimal.Decimal
	if payload.Amount != "" {
		var err error
		amount, err = decimal.NewFromString(payload.Amount)
		if err != nil || !amount.IsPositive() {
			return response.WebhookResult{}, errors.BadRequest("amount must be a positive number")
		}
		amount = amount.Round(2)
	}

	now := u.now()
	var (
		booking   entity.Booking
		confirmed bool
	)

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		booking, err = u.repo.LockBookingByReference(ctx, payload.BookingReference)
		if err != nil {
			return err
		}
		if payload.Amount == "" {
			amount = booking.PaymentAmount
		}

		transaction, err := u.repo.FindTransactionByGatewayID(ctx, payload.GatewayTransactionID)
		switch {
		case err == nil:
			if transaction.BookingID != booking.ID {
				return errors.BadRequest(fmt.Sprintf("gateway transaction %s belongs to another booking", payload.GatewayTransactionID))
			}
			if transaction.Status == outcome.TransactionStatus() {
				return errors.DuplicateWebhook(fmt.Sprintf("gateway transaction %s already %s", payload.GatewayTransactionID, outcome))
			}
			// last write wins
			transaction.Status = outcome.TransactionStatus()
			transaction.Amount = amount
			if err := u.repo.UpdateTransactionStatus(ctx, transaction); err != nil {
				return err
			}
		case errors.Is(err, errors.KindNotFound):
			transaction = entity.PaymentTransaction{
				ID:                   uuid.New(),
				BookingID:            booking.ID,
				Kind:                 entity.TransactionKindPayment,
				Amount:               amount,
				Currency:             u.currency,
				PaymentMethod:        payload.PaymentMethod,
				GatewayTransactionID: sql.NullString{String: payload.GatewayTransactionID, Valid: true},
				Status:               outcome.TransactionStatus(),
			}
			ref, err := u.refs.Allocate(ctx, reference.KindPayment, now, func(ref string) error {
				transaction.Reference = ref
				return u.repo.InsertTransaction(ctx, transaction)
			})
			if err != nil {
				return err
			}
			transaction.Reference = ref
		default:
			return err
		}
		result.Reference = transaction.Reference

		wasPending := booking.Status == entity.BookingStatusPending
		changed, err := booking.ApplyPayment(outcome, amount)
		if errors.Is(err, errors.KindInvalidTransition) {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("ignoring late payment outcome: %v", err), zap.String("booking_reference", booking.BookingReference))
			return nil
		}
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		confirmed = wasPending && booking.Status == entity.BookingStatusConfirmed
		if confirmed {
			booking.ConfirmationSent = true
		}
		return u.repo.UpdateBooking(ctx, booking)
	})

	switch {
	case errors.Is(err, errors.KindDuplicateWebhook):
		u.log.Ctx(ctx).Info("duplicate payment webhook", zap.String("gateway_transaction_id", payload.GatewayTransactionID))
		result.Result = WebhookDuplicate
		result.PaymentStatus = string(booking.PaymentStatus)
		return result, nil
	case errors.Is(err, errors.KindNotFound):
		u.log.Ctx(ctx).Warn("payment webhook for unknown booking", zap.String("booking_reference", payload.BookingReference))
		result.Result = WebhookIgnored
		return result, nil
	case err != nil:
		return response.WebhookResult{}, err
	}

	result.Result = WebhookApplied
	result.PaymentStatus = string(booking.PaymentStatus)

	if booking.RefundReviewRequired && booking.Status == entity.BookingStatusCancelled {
		u.log.Ctx(ctx).Warn("payment received for cancelled booking, refund review required", zap.String("booking_reference", booking.BookingReference))
	}
	if booking.RefundReviewRequired && outcome == entity.OutcomeRefunded {
		u.log.Ctx(ctx).Warn("gateway refund on an active booking, review required", zap.String("booking_reference", booking.BookingReference), zap.String("refund_amount", booking.RefundAmount.StringFixed(2)))
	}
	if confirmed {
		u.notifier.Send(ctx, notification.TopicBookingConfirmed, u.message(booking, "Your booking is confirmed", "booking_confirmed", map[string]string{
			"booking_reference": booking.BookingReference,
			"payment_amount":    booking.PaymentAmount.StringFixed(2),
			"currency":          u.currency,
		}))
	}
	return result, nil
}

// CompleteSchedule records attendance after a session has run. Present
// attendees complete, everyone else confirmed becomes a no-show and unpaid
// bookings are cancelled.
func (u *usecase) CompleteSchedule(ctx context.Context, payload *request.CompleteSchedule) (response.Completion, error) {
	now := u.now()
	resp := response.Completion{ScheduleID: payload.ScheduleID}

	present := make(map[string]bool, len(payload.Attendance))
	for _, a := range payload.Attendance {
		present[a.BookingReference] = a.Present
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		resp = response.Completion{ScheduleID: payload.ScheduleID}

		if err := u.schedules.MarkCompleted(ctx, payload.ScheduleID); err != nil {
			return err
		}

		bookings, err := u.repo.LockBookingsBySchedule(ctx, payload.ScheduleID)
		if err != nil {
			return err
		}

		known := make(map[string]bool, len(bookings))
		for _, b := range bookings {
			known[b.BookingReference] = true
		}
		for ref := range present {
			if !known[ref] {
				return errors.BadRequest(fmt.Sprintf("booking %s is not an active booking on schedule %d", ref, payload.ScheduleID))
			}
		}

		for _, b := range bookings {
			booking := b
			switch booking.Status {
			case entity.BookingStatusPending:
				if err := booking.TransitionTo(entity.BookingStatusCancelled); err != nil {
					return err
				}
				booking.CancellationReason = sql.NullString{String: "unpaid at course completion", Valid: true}
				booking.CancelledAt = sql.NullTime{Time: now, Valid: true}
				if _, err := u.schedules.Release(ctx, booking.CourseScheduleID, booking.PartySize); err != nil {
					return err
				}
				resp.Cancelled++
			case entity.BookingStatusConfirmed:
				attended, marked := present[booking.BookingReference]
				if marked {
					err := u.repo.UpsertAttendance(ctx, entity.AttendanceRecord{
						ID:               uuid.New(),
						BookingID:        booking.ID,
						CourseScheduleID: payload.ScheduleID,
						Present:          attended,
						RecordedBy:       payload.ActorID,
						RecordedAt:       now,
					})
					if err != nil {
						return err
					}
				}

				next := entity.BookingStatusNoShow
				if attended {
					next = entity.BookingStatusCompleted
				}
				if err := booking.TransitionTo(next); err != nil {
					return err
				}
				if attended {
					resp.Completed++
				} else {
					resp.NoShow++
				}
			}

			if err := u.repo.UpdateBooking(ctx, booking); err != nil {
				return err
			}
		}

		return u.audit.Admin(ctx, audit.AdminEntry{
			ActorID:    payload.ActorID,
			Action:     "schedule_completed",
			EntityType: "course_schedule",
			EntityID:   fmt.Sprintf("%d", payload.ScheduleID),
			After:      resp,
		})
	})
	if err != nil {
		return response.Completion{}, err
	}
	return resp, nil
}

// ExpirePendingBooking cancels a booking whose payment window closed without
// a successful payment. Anything else is left alone.
func (u *usecase) ExpirePendingBooking(ctx context.Context, bookingReference string) error {
	now := u.now()
	var (
		booking entity.Booking
		expired bool
	)

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		booking, err = u.repo.LockBookingByReference(ctx, bookingReference)
		if err != nil {
			return err
		}
		if booking.Status != entity.BookingStatusPending || booking.PaymentStatus == entity.PaymentStatusPaid {
			return nil
		}

		if err := booking.TransitionTo(entity.BookingStatusCancelled); err != nil {
			return err
		}
		booking.CancellationReason = sql.NullString{String: "payment window expired", Valid: true}
		booking.CancelledAt = sql.NullTime{Time: now, Valid: true}

		if _, err := u.schedules.Release(ctx, booking.CourseScheduleID, booking.PartySize); err != nil {
			return err
		}
		if err := u.repo.UpdateBooking(ctx, booking); err != nil {
			return err
		}
		expired = true
		return nil
	})
	if errors.Is(err, errors.KindNotFound) {
		u.log.Ctx(ctx).Warn("payment expiry for unknown booking", zap.String("booking_reference", bookingReference))
		return nil
	}
	if err != nil {
		return err
	}

	if expired {
		metrics.RecordCancellation("expired")
		u.notifier.Send(ctx, notification.TopicBookingCancelled, u.message(booking, "Your booking has expired", "booking_expired", map[string]string{
			"booking_reference": booking.BookingReference,
		}))
	}
	return nil
}

func (u *usecase) message(booking entity.Booking, subject, template string, data map[string]string) notification.Message {
	return notification.Message{
		EmailRecipient: booking.Email,
		RecipientName:  booking.FullName,
		Subject:        subject,
		Template:       template,
		Data:           data,
	}
}

func toResponse(b entity.Booking) response.Booking {
	resp := response.Booking{
		BookingReference:     b.BookingReference,
		CourseScheduleID:     b.CourseScheduleID,
		FullName:             b.FullName,
		Email:                b.Email,
		PartySize:            b.PartySize,
		Status:               string(b.Status),
		PaymentStatus:        string(b.PaymentStatus),
		PaymentAmount:        b.PaymentAmount.StringFixed(2),
		DiscountApplied:      b.DiscountApplied.StringFixed(2),
		RefundAmount:         b.RefundAmount.StringFixed(2),
		RefundReviewRequired: b.RefundReviewRequired,
		CertificateIssued:    b.CertificateIssued,
		BookingDate:          b.CreatedAt.Format(timeLayout),
	}
	if b.CancelledAt.Valid {
		resp.CancelledAt = b.CancelledAt.Time.Format(timeLayout)
	}
	return resp
}
