package handler

import (
	"context"
	"fmt"

	"training-booking-service/internal/module/certificate/models/request"
	"training-booking-service/internal/module/certificate/usecases"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/helpers"
	"training-booking-service/internal/pkg/messagestream"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const TopicCertificateEmailed = "certificate_emailed"

type CertificateHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *CertificateHandler) Issue(ctx *fiber.Ctx) error {
	var req request.IssueCertificate
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.ActorID = ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.Issue(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error issue certificate: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	if resp.AlreadyIssued {
		return helpers.RespSuccess(ctx, h.Log, resp, "certificate already issued")
	}
	return helpers.RespCreated(ctx, h.Log, resp, "success issue certificate")
}

func (h *CertificateHandler) Revoke(ctx *fiber.Ctx) error {
	var req request.RevokeCertificate
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.CertificateNumber = ctx.Params("number")
	req.ActorID = ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.Revoke(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error revoke certificate: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success revoke certificate")
}

func (h *CertificateHandler) Reissue(ctx *fiber.Ctx) error {
	var req request.ReissueCertificate
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.CertificateNumber = ctx.Params("number")
	req.ActorID = ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.Reissue(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error reissue certificate: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespCreated(ctx, h.Log, resp, "success reissue certificate")
}

func (h *CertificateHandler) Download(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)
	role, _ := ctx.Locals("role").(string)

	resp, err := h.Usecase.Download(ctx.UserContext(), ctx.Params("number"), userID, role == "admin")
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error download certificate: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, resp.FileName))
	return ctx.Status(fiber.StatusOK).Send(resp.Content)
}

// ConsumeCertificateEmailed records the notification service's delivery
// receipt for an issued certificate.
func (h *CertificateHandler) ConsumeCertificateEmailed(msg *message.Message) error {
	var req request.CertificateEmailed
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

	err := h.Usecase.MarkEmailed(context.Background(), req.CertificateNumber)
	if errors.Permanent(err) {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume certificate emailed: %v", err))
		h.poison(msg, err)
		return nil
	}
	if err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume certificate emailed: %v", err))
		return err
	}

	return nil
}

func (h *CertificateHandler) poison(msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: TopicCertificateEmailed,
		ErrorMsg:    cause.Error(),
		Payload:     msg.Payload,
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)

	err := h.Publish.Publish(messagestream.PoisonedQueue, message.NewMessage(watermill.NewUUID(), jsonPayload))
	if err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}
