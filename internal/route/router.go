package router

import (
	bookingHandler "training-booking-service/internal/module/booking/handler"
	certificateHandler "training-booking-service/internal/module/certificate/handler"
	scheduleHandler "training-booking-service/internal/module/schedule/handler"
	"training-booking-service/internal/pkg/metrics"
	"training-booking-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(
	app *fiber.App,
	handlerBooking *bookingHandler.BookingHandler,
	handlerSchedule *scheduleHandler.ScheduleHandler,
	handlerCertificate *certificateHandler.CertificateHandler,
	m *middleware.Middleware,
) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})
	app.Get("/metrics", metrics.Handler())

	Api := app.Group("/api", m.AccessLog, metrics.Middleware())

	// public routes
	v1 := Api.Group("/v1", m.ValidateToken)
	v1.Post("/bookings", handlerBooking.CreateBooking)
	v1.Get("/bookings", handlerBooking.ShowBookings)
	v1.Get("/bookings/:reference", handlerBooking.GetBooking)
	v1.Post("/bookings/:reference/cancel", handlerBooking.CancelBooking)
	v1.Get("/schedules/:id", handlerSchedule.GetSchedule)
	v1.Get("/certificates/:number/download", handlerCertificate.Download)

	webhooks := Api.Group("/webhooks", m.VerifyWebhookSecret)
	webhooks.Post("/payment", handlerBooking.PaymentWebhook)

	admin := Api.Group("/admin", m.ValidateToken, m.RequireAdmin)
	admin.Post("/schedules", handlerSchedule.CreateSchedule)
	admin.Post("/schedules/:id/publish", handlerSchedule.Publish)
	admin.Post("/schedules/:id/cancel", handlerSchedule.Cancel)
	admin.Post("/schedules/:id/complete", handlerBooking.CompleteSchedule)
	admin.Post("/bookings/:reference/cancel", handlerBooking.CancelBooking)
	admin.Post("/bookings/:reference/refund", handlerBooking.IssueRefund)
	admin.Post("/certificates", handlerCertificate.Issue)
	admin.Post("/certificates/:number/revoke", handlerCertificate.Revoke)
	admin.Post("/certificates/:number/reissue", handlerCertificate.Reissue)

	private := Api.Group("/private")
	private.Get("/references/validate", handlerBooking.ValidateReference)

	return app

}
