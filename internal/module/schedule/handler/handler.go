package handler

import (
	"fmt"
	"strconv"

	"training-booking-service/internal/module/schedule/models/request"
	"training-booking-service/internal/module/schedule/usecases"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type ScheduleHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *ScheduleHandler) CreateSchedule(ctx *fiber.Ctx) error {
	var req request.CreateSchedule
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	req.CreatedBy = ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.CreateSchedule(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create schedule: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespCreated(ctx, h.Log, resp, "success create schedule")
}

func (h *ScheduleHandler) GetSchedule(ctx *fiber.Ctx) error {
	scheduleID, err := h.scheduleID(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.GetSchedule(ctx.UserContext(), scheduleID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error get schedule: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success get schedule")
}

func (h *ScheduleHandler) Publish(ctx *fiber.Ctx) error {
	scheduleID, err := h.scheduleID(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	if err := h.Usecase.Publish(ctx.UserContext(), scheduleID, ctx.Locals("user_id").(int64)); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error publish schedule: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "success publish schedule")
}

func (h *ScheduleHandler) Cancel(ctx *fiber.Ctx) error {
	scheduleID, err := h.scheduleID(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	if err := h.Usecase.Cancel(ctx.UserContext(), scheduleID, ctx.Locals("user_id").(int64)); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel schedule: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "success cancel schedule")
}

func (h *ScheduleHandler) scheduleID(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse schedule id: %v", err))
		return 0, errors.BadRequest("error parse schedule id")
	}
	return id, nil
}
