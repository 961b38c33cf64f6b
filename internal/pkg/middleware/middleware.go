package middleware

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"training-booking-service/internal/module/booking/repositories"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	RoleAdmin = "admin"

	HeaderWebhookSecret = "X-Webhook-Secret"
)

type Middleware struct {
	Log           *otelzap.Logger
	Repo          repositories.Repositories
	WebhookSecret string
}

func (m *Middleware) ValidateToken(ctx *fiber.Ctx) error {
	// get token from header
	auth := ctx.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error get token from header")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error get token from header"))
	}

	// check with the user service if token is valid
	resp, err := m.Repo.ValidateToken(ctx.UserContext(), token)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate token: %v", err))
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	if !resp.IsValid {
		m.Log.Ctx(ctx.UserContext()).Error("error validate token")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	ctx.Locals("user_id", resp.UserID)
	ctx.Locals("email_user", resp.EmailUser)
	ctx.Locals("role", resp.Role)

	return ctx.Next()
}

// RequireAdmin must run after ValidateToken.
func (m *Middleware) RequireAdmin(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	if role != RoleAdmin {
		m.Log.Ctx(ctx.UserContext()).Warn(fmt.Sprintf("admin route denied for role %q", role))
		return helpers.RespError(ctx, m.Log, errors.Forbidden("admin role required"))
	}

	return ctx.Next()
}

func (m *Middleware) VerifyWebhookSecret(ctx *fiber.Ctx) error {
	given := ctx.Get(HeaderWebhookSecret)
	if m.WebhookSecret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(m.WebhookSecret)) != 1 {
		m.Log.Ctx(ctx.UserContext()).Error("error verify webhook secret")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("invalid webhook secret"))
	}

	return ctx.Next()
}

func (m *Middleware) AccessLog(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()

	m.Log.Ctx(ctx.UserContext()).Info("request",
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.Path()),
		zap.Int("status", ctx.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}
