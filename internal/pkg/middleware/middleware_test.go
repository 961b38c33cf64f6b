package middleware_test

import (
	"net/http/httptest"
	"testing"

	"training-booking-service/internal/module/booking/mocks"
	"training-booking-service/internal/module/booking/models/response"
	"training-booking-service/internal/pkg/errors"
	log_internal "training-booking-service/internal/pkg/log"
	"training-booking-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setup(t *testing.T) (*fiber.App, *mocks.Repositories) {
	repo := mocks.NewRepositories(t)
	m := &middleware.Middleware{
		Log:           log_internal.Nop(),
		Repo:          repo,
		WebhookSecret: "s3cret",
	}

	whoami := func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id"), "role": ctx.Locals("role")})
	}

	app := fiber.New()
	app.Get("/me", m.ValidateToken, whoami)
	app.Get("/admin", m.ValidateToken, m.RequireAdmin, whoami)
	app.Post("/webhook", m.VerifyWebhookSecret, func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })
	return app, repo
}

func get(t *testing.T, app *fiber.App, target, token string) int {
	req := httptest.NewRequest("GET", target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestValidateToken(t *testing.T) {
	app, repo := setup(t)

	repo.On("ValidateToken", mock.Anything, "good").Return(response.UserServiceValidate{IsValid: true, UserID: 1, Role: "user"}, nil)
	repo.On("ValidateToken", mock.Anything, "stale").Return(response.UserServiceValidate{IsValid: false}, nil)
	repo.On("ValidateToken", mock.Anything, "boom").Return(response.UserServiceValidate{}, errors.InternalServerError("user service down"))

	assert.Equal(t, fiber.StatusOK, get(t, app, "/me", "good"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "stale"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "boom"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", ""))
}

func TestRequireAdmin(t *testing.T) {
	app, repo := setup(t)

	repo.On("ValidateToken", mock.Anything, "customer").Return(response.UserServiceValidate{IsValid: true, UserID: 1, Role: "user"}, nil)
	repo.On("ValidateToken", mock.Anything, "staff").Return(response.UserServiceValidate{IsValid: true, UserID: 500, Role: "admin"}, nil)

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", "customer"))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin", "staff"))
}

func TestVerifyWebhookSecret(t *testing.T) {
	app, _ := setup(t)

	for secret, want := range map[string]int{
		"s3cret": fiber.StatusOK,
		"wrong":  fiber.StatusUnauthorized,
		"":       fiber.StatusUnauthorized,
	} {
		req := httptest.NewRequest("POST", "/webhook", nil)
		if secret != "" {
			req.Header.Set(middleware.HeaderWebhookSecret, secret)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, secret)
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := &middleware.Middleware{Log: otelzap.New(zap.New(core))}

	app := fiber.New()
	app.Get("/ping", m.AccessLog, func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/ping", fields["path"])
	assert.Equal(t, int64(fiber.StatusTeapot), fields["status"])
}
