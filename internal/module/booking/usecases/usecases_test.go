package usecases_test

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"training-booking-service/internal/module/booking/mocks"
	"training-booking-service/internal/module/booking/models/entity"
	"training-booking-service/internal/module/booking/models/request"
	"training-booking-service/internal/module/booking/usecases"
	scheduleMocks "training-booking-service/internal/module/schedule/mocks"
	scheduleEntity "training-booking-service/internal/module/schedule/models/entity"
	scheduleResponse "training-booking-service/internal/module/schedule/models/response"
	"training-booking-service/internal/pkg/audit"
	"training-booking-service/internal/pkg/errors"
	log_internal "training-booking-service/internal/pkg/log"
	pkgMocks "training-booking-service/internal/pkg/mocks"
	"training-booking-service/internal/pkg/notification"
	"training-booking-service/internal/pkg/reference"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var dateTimeNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memoryCounter struct {
	mu   sync.Mutex
	last map[string]int64
}

func (c *memoryCounter) Next(_ context.Context, prefix string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[prefix]++
	return c.last[prefix], nil
}

type fixture struct {
	uc        usecases.Usecase
	repo      *mocks.Repositories
	schedules *scheduleMocks.Usecase
	enqueuer  *pkgMocks.Enqueuer
	notifier  *pkgMocks.Dispatcher
	audit     *pkgMocks.AuditLogger
}

func setup(t *testing.T, suffixes ...int) *fixture {
	f := &fixture{
		repo:      mocks.NewRepositories(t),
		schedules: scheduleMocks.NewUsecase(t),
		enqueuer:  pkgMocks.NewEnqueuer(t),
		notifier:  pkgMocks.NewDispatcher(t),
		audit:     pkgMocks.NewAuditLogger(t),
	}

	next := 0
	refs := reference.NewGenerator(&memoryCounter{last: map[string]int64{}}).WithRandom(func(n int) int {
		if len(suffixes) == 0 {
			return 42
		}
		v := suffixes[next%len(suffixes)]
		next++
		return v
	})

	f.uc = usecases.New(f.repo, f.schedules, passthroughTx{}, refs, f.enqueuer, f.notifier, f.audit, log_internal.Nop(), usecases.Options{
		PaymentExpiry: 30 * time.Minute,
		Currency:      "GBP",
		Now:           func() time.Time { return dateTimeNow },
	})
	return f
}

func paidBooking(status entity.BookingStatus) entity.Booking {
	return entity.Booking{
		ID:               uuid.New(),
		UserID:           1,
		CourseScheduleID: 42,
		BookingReference: "BKG-2605-00001",
		Status:           status,
		PaymentStatus:    entity.PaymentStatusPaid,
		PartySize:        1,
		FullName:         "Ada Lovelace",
		Email:            "ada@example.com",
		PaymentAmount:    decimal.RequireFromString("450.00"),
		DiscountApplied:  decimal.Zero,
		RefundAmount:     decimal.Zero,
	}
}

func (f *fixture) expectSchedule() {
	f.schedules.On("GetSchedule", mock.Anything, int64(42)).Return(scheduleResponse.Schedule{
		ID:        42,
		CourseID:  7,
		StartTime: "2026-06-15 09:00:00",
	}, nil)
	f.schedules.On("GetCourse", mock.Anything, int64(7)).Return(scheduleEntity.Course{
		ID:    7,
		Name:  "First Aid at Work",
		Price: decimal.RequireFromString("450.00"),
	}, nil)
}

func TestCreateBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setup(t)
		f.expectSchedule()

		payload := request.CreateBooking{
			CourseScheduleID: 42,
			PartySize:        2,
			FullName:         "Ada Lovelace",
			Email:            "ada@example.com",
			UserID:           1,
			SpecialRequirements: []request.SpecialRequirement{
				{Category: "dietary", Details: "vegetarian"},
			},
		}

		f.schedules.On("Reserve", mock.Anything, int64(42), 2).Return(scheduleEntity.Capacity{ScheduleID: 42, Current: 2}, nil)
		f.repo.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.BookingReference == "BKG-2605-00001" &&
				b.Status == entity.BookingStatusPending &&
				b.PaymentStatus == entity.PaymentStatusPending &&
				b.PaymentAmount.Equal(decimal.RequireFromString("900"))
		})).Return(nil)
		f.repo.On("InsertSpecialRequirements", mock.Anything, mock.MatchedBy(func(reqs []entity.SpecialRequirement) bool {
			return len(reqs) == 1 && reqs[0].Category == entity.RequirementDietary
		})).Return(nil)
		f.enqueuer.On("EnqueuePaymentExpiry", mock.Anything, "BKG-2605-00001", dateTimeNow.Add(30*time.Minute)).Return("set_payment_expired:BKG-2605-00001", nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCreated, mock.Anything).Return()

		resp, err := f.uc.CreateBooking(context.Background(), &payload)

		require.NoError(t, err)
		assert.Equal(t, "BKG-2605-00001", resp.BookingReference)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "900.00", resp.PaymentAmount)
		assert.Equal(t, "2026-05-10 10:00:00", resp.PaymentExpiry)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		f := setup(t)
		f.expectSchedule()

		f.schedules.On("Reserve", mock.Anything, int64(42), 2).Return(scheduleEntity.Capacity{}, errors.CapacityExceeded("schedule 42 has 1 seat(s) left, 2 requested"))

		_, err := f.uc.CreateBooking(context.Background(), &request.CreateBooking{
			CourseScheduleID: 42,
			PartySize:        2,
			FullName:         "Ada Lovelace",
			Email:            "ada@example.com",
			UserID:           1,
		})

		assert.True(t, errors.Is(err, errors.KindCapacityExceeded))
		f.repo.AssertNotCalled(t, "InsertBooking", mock.Anything, mock.Anything)
	})

	t.Run("schedule already started", func(t *testing.T) {
		f := setup(t)
		f.expectSchedule()

		f.schedules.On("Reserve", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{}, errors.BadRequest("schedule 42 has already started"))

		_, err := f.uc.CreateBooking(context.Background(), &request.CreateBooking{
			CourseScheduleID: 42,
			PartySize:        1,
			FullName:         "Ada Lovelace",
			Email:            "ada@example.com",
			UserID:           1,
		})

		assert.True(t, errors.Is(err, errors.KindValidation))
		f.repo.AssertNotCalled(t, "InsertBooking", mock.Anything, mock.Anything)
		f.enqueuer.AssertNotCalled(t, "EnqueuePaymentExpiry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("percent discount", func(t *testing.T) {
		f := setup(t)
		f.expectSchedule()

		f.repo.On("FindDiscountByCode", mock.Anything, "SPRING10").Return(entity.DiscountCode{
			ID:            3,
			Code:          "SPRING10",
			DiscountType:  entity.DiscountTypePercent,
			DiscountValue: decimal.NewFromInt(10),
			ValidFrom:     dateTimeNow.Add(-24 * time.Hour),
			IsActive:      true,
		}, nil)
		f.schedules.On("Reserve", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{}, nil)
		f.repo.On("ConsumeDiscount", mock.Anything, int64(3)).Return(nil)
		f.repo.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.DiscountCodeID.Int64 == 3 && b.DiscountApplied.Equal(decimal.NewFromInt(45))
		})).Return(nil)
		f.enqueuer.On("EnqueuePaymentExpiry", mock.Anything, "BKG-2605-00001", mock.Anything).Return("", nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCreated, mock.Anything).Return()

		resp, err := f.uc.CreateBooking(context.Background(), &request.CreateBooking{
			CourseScheduleID: 42,
			PartySize:        1,
			FullName:         "Ada Lovelace",
			Email:            "ada@example.com",
			DiscountCode:     "SPRING10",
			UserID:           1,
		})

		require.NoError(t, err)
		assert.Equal(t, "405.00", resp.PaymentAmount)
	})

	t.Run("fully discounted booking is confirmed at once", func(t *testing.T) {
		f := setup(t)
		f.expectSchedule()

		f.repo.On("FindDiscountByCode", mock.Anything, "STAFF").Return(entity.DiscountCode{
			ID:            4,
			DiscountType:  entity.DiscountTypePercent,
			DiscountValue: decimal.NewFromInt(100),
			ValidFrom:     dateTimeNow.Add(-time.Hour),
			IsActive:      true,
		}, nil)
		f.schedules.On("Reserve", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{}, nil)
		f.repo.On("ConsumeDiscount", mock.Anything, int64(4)).Return(nil)
		f.repo.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.Status == entity.BookingStatusConfirmed && b.PaymentStatus == entity.PaymentStatusPaid
		})).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingConfirmed, mock.Anything).Return()

		resp, err := f.uc.CreateBooking(context.Background(), &request.CreateBooking{
			CourseScheduleID: 42,
			PartySize:        1,
			FullName:         "Ada Lovelace",
			Email:            "ada@example.com",
			DiscountCode:     "STAFF",
			UserID:           1,
		})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, "0.00", resp.PaymentAmount)
		f.enqueuer.AssertNotCalled(t, "EnqueuePaymentExpiry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reference collision is retried", func(t *testing.T) {
		f := setup(t)
		f.expectSchedule()

		f.schedules.On("Reserve", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{}, nil)
		f.repo.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.BookingReference == "BKG-2605-00001"
		})).Return(reference.ErrTaken).Once()
		f.repo.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.BookingReference == "BKG-2605-00002"
		})).Return(nil).Once()
		f.enqueuer.On("EnqueuePaymentExpiry", mock.Anything, "BKG-2605-00002", mock.Anything).Return("", nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCreated, mock.Anything).Return()

		resp, err := f.uc.CreateBooking(context.Background(), &request.CreateBooking{
			CourseScheduleID: 42,
			PartySize:        1,
			FullName:         "Ada Lovelace",
			Email:            "ada@example.com",
			UserID:           1,
		})

		require.NoError(t, err)
		assert.Equal(t, "BKG-2605-00002", resp.BookingReference)
	})
}

func TestHandlePaymentWebhook(t *testing.T) {
	payload := request.PaymentWebhook{
		GatewayTransactionID: "gw_123",
		BookingReference:     "BKG-2605-00001",
		Outcome:              "succeeded",
		PaymentMethod:        "card",
	}

	t.Run("success confirms the booking", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusPending)
		booking.PaymentStatus = entity.PaymentStatusPending

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("FindTransactionByGatewayID", mock.Anything, "gw_123").Return(entity.PaymentTransaction{}, errors.NotFound("transaction gw_123 not found"))
		f.repo.On("InsertTransaction", mock.Anything, mock.MatchedBy(func(tx entity.PaymentTransaction) bool {
			return tx.Reference == "PAY-2605-00001" &&
				tx.Status == entity.TransactionStatusSucceeded &&
				tx.GatewayTransactionID.String == "gw_123" &&
				tx.Amount.Equal(booking.PaymentAmount)
		})).Return(nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.Status == entity.BookingStatusConfirmed && b.PaymentStatus == entity.PaymentStatusPaid
		})).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingConfirmed, mock.Anything).Return()

		result, err := f.uc.HandlePaymentWebhook(context.Background(), &payload)

		require.NoError(t, err)
		assert.Equal(t, usecases.WebhookApplied, result.Result)
		assert.Equal(t, "paid", result.PaymentStatus)
		assert.Equal(t, "PAY-2605-00001", result.Reference)
	})

	t.Run("duplicate delivery changes nothing", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("FindTransactionByGatewayID", mock.Anything, "gw_123").Return(entity.PaymentTransaction{
			ID:        uuid.New(),
			BookingID: booking.ID,
			Reference: "PAY-2605-00001",
			Status:    entity.TransactionStatusSucceeded,
		}, nil)

		result, err := f.uc.HandlePaymentWebhook(context.Background(), &payload)

		require.NoError(t, err)
		assert.Equal(t, usecases.WebhookDuplicate, result.Result)
		f.repo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "UpdateTransactionStatus", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway refund records the amount and flags review", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("FindTransactionByGatewayID", mock.Anything, "gw_rf_1").Return(entity.PaymentTransaction{}, errors.NotFound("transaction gw_rf_1 not found"))
		f.repo.On("InsertTransaction", mock.Anything, mock.MatchedBy(func(tx entity.PaymentTransaction) bool {
			return tx.Status == entity.TransactionStatusRefunded && tx.Amount.Equal(decimal.RequireFromString("150"))
		})).Return(nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.Status == entity.BookingStatusConfirmed &&
				b.PaymentStatus == entity.PaymentStatusRefunded &&
				b.RefundAmount.Equal(decimal.RequireFromString("150")) &&
				b.RefundReviewRequired
		})).Return(nil)

		result, err := f.uc.HandlePaymentWebhook(context.Background(), &request.PaymentWebhook{
			GatewayTransactionID: "gw_rf_1",
			BookingReference:     "BKG-2605-00001",
			Outcome:              "refunded",
			Amount:               "150.00",
		})

		require.NoError(t, err)
		assert.Equal(t, usecases.WebhookApplied, result.Result)
		assert.Equal(t, "refunded", result.PaymentStatus)
		f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non positive amount is rejected", func(t *testing.T) {
		for _, amount := range []string{"-5", "0", "ten"} {
			f := setup(t)

			_, err := f.uc.HandlePaymentWebhook(context.Background(), &request.PaymentWebhook{
				GatewayTransactionID: "gw_123",
				BookingReference:     "BKG-2605-00001",
				Outcome:              "succeeded",
				Amount:               amount,
			})

			assert.True(t, errors.Is(err, errors.KindValidation), amount)
			f.repo.AssertNotCalled(t, "LockBookingByReference", mock.Anything, mock.Anything)
		}
	})

	t.Run("changed outcome overwrites the transaction", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusPending)
		booking.PaymentStatus = entity.PaymentStatusFailed
		txID := uuid.New()

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("FindTransactionByGatewayID", mock.Anything, "gw_123").Return(entity.PaymentTransaction{
			ID:        txID,
			BookingID: booking.ID,
			Reference: "PAY-2605-00007",
			Status:    entity.TransactionStatusFailed,
		}, nil)
		f.repo.On("UpdateTransactionStatus", mock.Anything, mock.MatchedBy(func(tx entity.PaymentTransaction) bool {
			return tx.ID == txID && tx.Status == entity.TransactionStatusSucceeded
		})).Return(nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingConfirmed, mock.Anything).Return()

		result, err := f.uc.HandlePaymentWebhook(context.Background(), &payload)

		require.NoError(t, err)
		assert.Equal(t, usecases.WebhookApplied, result.Result)
		assert.Equal(t, "PAY-2605-00007", result.Reference)
	})

	t.Run("unknown booking is acknowledged", func(t *testing.T) {
		f := setup(t)
		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(entity.Booking{}, errors.NotFound("booking BKG-2605-00001 not found"))

		result, err := f.uc.HandlePaymentWebhook(context.Background(), &payload)

		require.NoError(t, err)
		assert.Equal(t, usecases.WebhookIgnored, result.Result)
	})

	t.Run("malformed reference is acknowledged", func(t *testing.T) {
		f := setup(t)
		bad := payload
		bad.BookingReference = "BKG-1"

		result, err := f.uc.HandlePaymentWebhook(context.Background(), &bad)

		require.NoError(t, err)
		assert.Equal(t, usecases.WebhookIgnored, result.Result)
	})

	t.Run("late failure after payment leaves the booking alone", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)
		failed := payload
		failed.GatewayTransactionID = "gw_999"
		failed.Outcome = "failed"

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("FindTransactionByGatewayID", mock.Anything, "gw_999").Return(entity.PaymentTransaction{}, errors.NotFound("transaction gw_999 not found"))
		f.repo.On("InsertTransaction", mock.Anything, mock.Anything).Return(nil)

		result, err := f.uc.HandlePaymentWebhook(context.Background(), &failed)

		require.NoError(t, err)
		assert.Equal(t, "paid", result.PaymentStatus)
		f.repo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
	})

	t.Run("payment after cancellation is flagged for refund", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusCancelled)
		booking.PaymentStatus = entity.PaymentStatusPending

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("FindTransactionByGatewayID", mock.Anything, "gw_123").Return(entity.PaymentTransaction{}, errors.NotFound("transaction gw_123 not found"))
		f.repo.On("InsertTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.Status == entity.BookingStatusCancelled && b.PaymentStatus == entity.PaymentStatusPaid && b.RefundReviewRequired
		})).Return(nil)

		_, err := f.uc.HandlePaymentWebhook(context.Background(), &payload)

		require.NoError(t, err)
	})
}

func TestCancelBooking(t *testing.T) {
	refundPattern := regexp.MustCompile(`^RFD-\d{6}-\d{4}$`)

	t.Run("full refund with a week's notice", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.schedules.On("Release", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{
			ScheduleID: 42,
			StartTime:  dateTimeNow.Add(7 * 24 * time.Hour),
		}, nil)
		f.repo.On("InsertTransaction", mock.Anything, mock.MatchedBy(func(tx entity.PaymentTransaction) bool {
			return tx.Kind == entity.TransactionKindRefund && refundPattern.MatchString(tx.Reference) && tx.Amount.Equal(decimal.NewFromInt(450))
		})).Return(nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.Status == entity.BookingStatusCancelled &&
				b.PaymentStatus == entity.PaymentStatusRefunded &&
				b.RefundAmount.Equal(decimal.NewFromInt(450)) &&
				b.CancellationReason.String == "change of plans"
		})).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCancelled, mock.Anything).Return()

		resp, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "change of plans",
			UserID:           1,
		})

		require.NoError(t, err)
		assert.Equal(t, "full", resp.RefundTier)
		assert.Equal(t, "450.00", resp.RefundAmount)
		assert.Equal(t, "RFD-260510-0042", resp.RefundReference)
	})

	t.Run("partial refund inside a week", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.schedules.On("Release", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{
			StartTime: dateTimeNow.Add(5 * 24 * time.Hour),
		}, nil)
		f.repo.On("InsertTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.RefundAmount.Equal(decimal.NewFromInt(225))
		})).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCancelled, mock.Anything).Return()

		resp, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "ill",
			UserID:           1,
		})

		require.NoError(t, err)
		assert.Equal(t, "partial", resp.RefundTier)
		assert.Equal(t, "225.00", resp.RefundAmount)
	})

	t.Run("no refund two days out", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.schedules.On("Release", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{
			StartTime: dateTimeNow.Add(2 * 24 * time.Hour),
		}, nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.PaymentStatus == entity.PaymentStatusPaid && b.RefundAmount.IsZero()
		})).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCancelled, mock.Anything).Return()

		resp, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "busy",
			UserID:           1,
		})

		require.NoError(t, err)
		assert.Equal(t, "none", resp.RefundTier)
		f.repo.AssertNotCalled(t, "InsertTransaction", mock.Anything, mock.Anything)
	})

	t.Run("second cancel is a no-op", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusCancelled)
		booking.PaymentStatus = entity.PaymentStatusRefunded
		booking.RefundAmount = decimal.NewFromInt(450)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)

		resp, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "again",
			UserID:           1,
		})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "450.00", resp.RefundAmount)
		f.schedules.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "InsertTransaction", mock.Anything, mock.Anything)
	})

	t.Run("cannot cancel after the start", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.schedules.On("Release", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{
			StartTime: dateTimeNow.Add(-time.Hour),
		}, nil)

		_, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "late",
			UserID:           1,
		})

		assert.True(t, errors.Is(err, errors.KindInvalidTransition))
		f.repo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		f := setup(t)
		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(paidBooking(entity.BookingStatusConfirmed), nil)

		_, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "mine now",
			UserID:           99,
		})

		assert.True(t, errors.Is(err, errors.KindNotFound))
	})

	t.Run("customers cannot claim an emergency", func(t *testing.T) {
		f := setup(t)

		_, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "family emergency",
			Emergency:        true,
			UserID:           1,
		})

		assert.True(t, errors.Is(err, errors.KindForbidden))
	})

	t.Run("admin emergency goes to review", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusConfirmed)

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.schedules.On("Release", mock.Anything, int64(42), 1).Return(scheduleEntity.Capacity{
			StartTime: dateTimeNow.Add(4 * 24 * time.Hour),
		}, nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.RefundReviewRequired && b.PaymentStatus == entity.PaymentStatusPaid
		})).Return(nil)
		f.audit.On("Admin", mock.Anything, mock.MatchedBy(func(e audit.AdminEntry) bool {
			return e.Action == "booking_cancelled" && e.ActorID == 500
		})).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCancelled, mock.Anything).Return()

		resp, err := f.uc.CancelBooking(context.Background(), &request.CancelBooking{
			BookingReference: "BKG-2605-00001",
			Reason:           "bereavement",
			Emergency:        true,
			UserID:           500,
			Admin:            true,
		})

		require.NoError(t, err)
		assert.Equal(t, "case_by_case", resp.RefundTier)
		assert.True(t, resp.ReviewRequired)
		f.repo.AssertNotCalled(t, "InsertTransaction", mock.Anything, mock.Anything)
	})
}

func TestIssueRefund(t *testing.T) {
	t.Run("retries a colliding refund reference", func(t *testing.T) {
		f := setup(t, 1234, 1234, 77)
		booking := paidBooking(entity.BookingStatusCancelled)
		booking.RefundReviewRequired = true

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("InsertTransaction", mock.Anything, mock.MatchedBy(func(tx entity.PaymentTransaction) bool {
			return tx.Reference == "RFD-260510-1234"
		})).Return(reference.ErrTaken).Twice()
		f.repo.On("InsertTransaction", mock.Anything, mock.MatchedBy(func(tx entity.PaymentTransaction) bool {
			return tx.Reference == "RFD-260510-0077"
		})).Return(nil).Once()
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return !b.RefundReviewRequired && b.PaymentStatus == entity.PaymentStatusRefunded
		})).Return(nil)
		f.audit.On("Admin", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.uc.IssueRefund(context.Background(), &request.ManualRefund{
			BookingReference: "BKG-2605-00001",
			Amount:           "300",
			Reason:           "hospitalised",
			ActorID:          500,
		})

		require.NoError(t, err)
		assert.Equal(t, "RFD-260510-0077", resp.RefundReference)
		assert.Equal(t, "300.00", resp.RefundAmount)
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		f := setup(t, 1234)
		booking := paidBooking(entity.BookingStatusCancelled)
		booking.RefundReviewRequired = true

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.repo.On("InsertTransaction", mock.Anything, mock.Anything).Return(reference.ErrTaken)

		_, err := f.uc.IssueRefund(context.Background(), &request.ManualRefund{
			BookingReference: "BKG-2605-00001",
			Amount:           "300",
			Reason:           "hospitalised",
			ActorID:          500,
		})

		assert.True(t, errors.Is(err, errors.KindAllocationConflict))
		f.repo.AssertNumberOfCalls(t, "InsertTransaction", reference.MaxAttempts)
	})

	t.Run("only bookings awaiting review", func(t *testing.T) {
		f := setup(t)
		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(paidBooking(entity.BookingStatusConfirmed), nil)

		_, err := f.uc.IssueRefund(context.Background(), &request.ManualRefund{
			BookingReference: "BKG-2605-00001",
			Amount:           "10",
			Reason:           "goodwill",
		})

		assert.True(t, errors.Is(err, errors.KindInvalidTransition))
	})

	t.Run("not more than was paid", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusCancelled)
		booking.RefundReviewRequired = true
		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)

		_, err := f.uc.IssueRefund(context.Background(), &request.ManualRefund{
			BookingReference: "BKG-2605-00001",
			Amount:           "450.01",
			Reason:           "goodwill",
		})

		assert.True(t, errors.Is(err, errors.KindValidation))
	})
}

func TestCompleteSchedule(t *testing.T) {
	f := setup(t)

	attended := paidBooking(entity.BookingStatusConfirmed)
	attended.BookingReference = "BKG-2605-00001"
	absent := paidBooking(entity.BookingStatusConfirmed)
	absent.BookingReference = "BKG-2605-00002"
	unmarked := paidBooking(entity.BookingStatusConfirmed)
	unmarked.BookingReference = "BKG-2605-00003"
	unpaid := paidBooking(entity.BookingStatusPending)
	unpaid.BookingReference = "BKG-2605-00004"
	unpaid.PaymentStatus = entity.PaymentStatusPending
	unpaid.PartySize = 2

	f.schedules.On("MarkCompleted", mock.Anything, int64(42)).Return(nil)
	f.repo.On("LockBookingsBySchedule", mock.Anything, int64(42)).Return([]entity.Booking{attended, absent, unmarked, unpaid}, nil)
	f.repo.On("UpsertAttendance", mock.Anything, mock.MatchedBy(func(r entity.AttendanceRecord) bool {
		return r.BookingID == attended.ID && r.Present
	})).Return(nil)
	f.repo.On("UpsertAttendance", mock.Anything, mock.MatchedBy(func(r entity.AttendanceRecord) bool {
		return r.BookingID == absent.ID && !r.Present
	})).Return(nil)
	f.schedules.On("Release", mock.Anything, int64(42), 2).Return(scheduleEntity.Capacity{}, nil)

	statuses := map[string]entity.BookingStatus{}
	f.repo.On("UpdateBooking", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		b := args.Get(1).(entity.Booking)
		statuses[b.BookingReference] = b.Status
	}).Return(nil)
	f.audit.On("Admin", mock.Anything, mock.MatchedBy(func(e audit.AdminEntry) bool {
		return e.Action == "schedule_completed"
	})).Return(nil)

	resp, err := f.uc.CompleteSchedule(context.Background(), &request.CompleteSchedule{
		ScheduleID: 42,
		ActorID:    500,
		Attendance: []request.Attendance{
			{BookingReference: "BKG-2605-00001", Present: true},
			{BookingReference: "BKG-2605-00002", Present: false},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Completed)
	assert.Equal(t, 2, resp.NoShow)
	assert.Equal(t, 1, resp.Cancelled)
	assert.Equal(t, map[string]entity.BookingStatus{
		"BKG-2605-00001": entity.BookingStatusCompleted,
		"BKG-2605-00002": entity.BookingStatusNoShow,
		"BKG-2605-00003": entity.BookingStatusNoShow,
		"BKG-2605-00004": entity.BookingStatusCancelled,
	}, statuses)
}

func TestCompleteScheduleUnknownAttendee(t *testing.T) {
	f := setup(t)

	f.schedules.On("MarkCompleted", mock.Anything, int64(42)).Return(nil)
	f.repo.On("LockBookingsBySchedule", mock.Anything, int64(42)).Return([]entity.Booking{}, nil)

	_, err := f.uc.CompleteSchedule(context.Background(), &request.CompleteSchedule{
		ScheduleID: 42,
		Attendance: []request.Attendance{{BookingReference: "BKG-2605-00009", Present: true}},
	})

	assert.True(t, errors.Is(err, errors.KindValidation))
}

func TestExpirePendingBooking(t *testing.T) {
	t.Run("unpaid booking is cancelled and seats released", func(t *testing.T) {
		f := setup(t)
		booking := paidBooking(entity.BookingStatusPending)
		booking.PaymentStatus = entity.PaymentStatusPending
		booking.PartySize = 3

		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(booking, nil)
		f.schedules.On("Release", mock.Anything, int64(42), 3).Return(scheduleEntity.Capacity{}, nil)
		f.repo.On("UpdateBooking", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.Status == entity.BookingStatusCancelled && b.CancellationReason.String == "payment window expired"
		})).Return(nil)
		f.notifier.On("Send", mock.Anything, notification.TopicBookingCancelled, mock.Anything).Return()

		assert.NoError(t, f.uc.ExpirePendingBooking(context.Background(), "BKG-2605-00001"))
	})

	t.Run("confirmed booking is left alone", func(t *testing.T) {
		f := setup(t)
		f.repo.On("LockBookingByReference", mock.Anything, "BKG-2605-00001").Return(paidBooking(entity.BookingStatusConfirmed), nil)

		assert.NoError(t, f.uc.ExpirePendingBooking(context.Background(), "BKG-2605-00001"))
		f.schedules.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestShowBookings(t *testing.T) {
	f := setup(t)
	bookings := []entity.Booking{paidBooking(entity.BookingStatusConfirmed), paidBooking(entity.BookingStatusCancelled)}
	f.repo.On("FindBookingsByUserID", mock.Anything, int64(1)).Return(bookings, nil)

	resp, err := f.uc.ShowBookings(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "confirmed", resp[0].Status)
	assert.Equal(t, "450.00", resp[0].PaymentAmount)
}

func TestGetBookingHidesOtherUsers(t *testing.T) {
	f := setup(t)
	f.repo.On("FindBookingByReference", mock.Anything, "BKG-2605-00001").Return(paidBooking(entity.BookingStatusConfirmed), nil)

	_, err := f.uc.GetBooking(context.Background(), "BKG-2605-00001", 2, false)
	assert.True(t, errors.Is(err, errors.KindNotFound))

	resp, err := f.uc.GetBooking(context.Background(), "BKG-2605-00001", 2, true)
	require.NoError(t, err)
	assert.Equal(t, "BKG-2605-00001", resp.BookingReference)

	_, err = f.uc.GetBooking(context.Background(), "nope", 1, false)
	assert.True(t, errors.Is(err, errors.KindValidation))
}
