package otpapi

import (
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/otp"
	"github.com/Abraxas-365/passgate/pkg/otp/otpsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the OTP service over HTTP. Destination syntax is
// validated here, before the service is touched; the service re-checks as a
// backstop for non-HTTP callers.
type Handlers struct {
	service *otpsrv.Service
}

// NewHandlers creates the HTTP handlers for the OTP service.
func NewHandlers(service *otpsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the OTP endpoints on the app.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/otp")
	group.Post("/request", h.requestCode)
	group.Post("/verify", h.verifyCode)
}

type requestCodeBody struct {
	Destination string `json:"destination"`
}

type verifyCodeBody struct {
	Destination string `json:"destination"`
	Code        string `json:"code"`
}

func (h *Handlers) requestCode(c *fiber.Ctx) error {
	var body requestCodeBody
	if err := c.BodyParser(&body); err != nil {
		return otp.ErrInvalidDestination()
	}

	destination := kernel.NewDestination(body.Destination)
	if !destination.Valid() {
		return otp.ErrInvalidDestination()
	}

	result, err := h.service.RequestCode(c.Context(), destination)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"expires_in_seconds": int(result.ExpiresIn / time.Second),
	})
}

func (h *Handlers) verifyCode(c *fiber.Ctx) error {
	var body verifyCodeBody
	if err := c.BodyParser(&body); err != nil {
		return otp.ErrInvalidFormat()
	}

	destination := kernel.NewDestination(body.Destination)
	if !destination.Valid() {
		return otp.ErrInvalidDestination()
	}

	if err := h.service.VerifyCode(c.Context(), destination, body.Code); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"verified": true})
}
