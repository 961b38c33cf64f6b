package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"training-booking-service/internal/module/booking/models/request"
	"training-booking-service/internal/module/booking/usecases"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/helpers"
	"training-booking-service/internal/pkg/messagestream"
	"training-booking-service/internal/pkg/reference"
	"training-booking-service/internal/pkg/scheduler"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const TopicPaymentWebhook = "payment_webhook"

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *BookingHandler) CreateBooking(ctx *fiber.Ctx) error {
	var req request.CreateBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.UserID = ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.CreateBooking(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespCreated(ctx, h.Log, resp, "success create booking")
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show bookings")
}

func (h *BookingHandler) GetBooking(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.GetBooking(ctx.UserContext(), ctx.Params("reference"), userID, isAdmin(ctx))
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error get booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success get booking")
}

// CancelBooking serves both the customer and the admin route; only the admin
// route may flag an emergency.
func (h *BookingHandler) CancelBooking(ctx *fiber.Ctx) error {
	var req request.CancelBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.BookingReference = ctx.Params("reference")
	req.UserID = ctx.Locals("user_id").(int64)
	req.Admin = isAdmin(ctx)

	resp, err := h.Usecase.CancelBooking(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success cancel booking")
}

func (h *BookingHandler) IssueRefund(ctx *fiber.Ctx) error {
	var req request.ManualRefund
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.BookingReference = ctx.Params("reference")
	req.ActorID = ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.IssueRefund(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error issue refund: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success issue refund")
}

func (h *BookingHandler) CompleteSchedule(ctx *fiber.Ctx) error {
	scheduleID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse schedule id: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse schedule id"))
	}

	var req request.CompleteSchedule
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.ScheduleID = scheduleID
	req.ActorID = ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.CompleteSchedule(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error complete schedule: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success complete schedule")
}

// PaymentWebhook answers 200 for duplicates and unknown bookings so the
// gateway stops redelivering them.
func (h *BookingHandler) PaymentWebhook(ctx *fiber.Ctx) error {
	var req request.PaymentWebhook
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.HandlePaymentWebhook(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error handle payment webhook: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, fmt.Sprintf("payment webhook %s", resp.Result))
}

// ConsumePaymentWebhook handles webhooks relayed over the message stream.
// Payloads that can never succeed go straight to the poisoned queue; other
// failures are returned so the router retries them.
func (h *BookingHandler) ConsumePaymentWebhook(msg *message.Message) error {
	var req request.PaymentWebhook
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))
		h.poison(msg, err)
		return nil
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error validate message: %v", err))
		h.poison(msg, err)
		return nil
	}

	ctx := context.Background()

	resp, err := h.Usecase.HandlePaymentWebhook(ctx, &req)
	if errors.Permanent(err) {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume payment webhook: %v", err))
		h.poison(msg, err)
		return nil
	}
	if err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume payment webhook: %v", err))
		return err
	}

	h.Log.Ctx(msg.Context()).Info("payment webhook consumed",
		zap.String("booking_reference", req.BookingReference),
		zap.String("result", resp.Result),
	)
	return nil
}

func (h *BookingHandler) poison(msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: TopicPaymentWebhook,
		ErrorMsg:    cause.Error(),
		Payload:     msg.Payload,
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)

	err := h.Publish.Publish(messagestream.PoisonedQueue, message.NewMessage(watermill.NewUUID(), jsonPayload))
	if err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}

func (h *BookingHandler) SetPaymentExpired(ctx context.Context, t *asynq.Task) error {
	var req scheduler.PaymentExpiration
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	err := h.Usecase.ExpirePendingBooking(ctx, req.BookingReference)
	if err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error set payment expired: %v", err))
		return err
	}

	return nil
}

// ValidateReference lets other services check a reference's format without
// touching the database.
func (h *BookingHandler) ValidateReference(ctx *fiber.Ctx) error {
	kind := reference.Kind(ctx.Query("kind"))
	ref := ctx.Query("reference")
	if kind == "" || ref == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("kind and reference are required"))
	}

	if _, err := reference.Prefix(kind, time.Now()); err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp := map[string]interface{}{
		"kind":      kind,
		"reference": ref,
		"valid":     reference.Validate(kind, ref),
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success validate reference")
}

func isAdmin(ctx *fiber.Ctx) bool {
	role, _ := ctx.Locals("role").(string)
	return role == "admin"
}
