package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/toneill57/muva-chat-sub004/internal/application"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

type ComplianceHandler struct {
	service     *application.ComplianceService
	rateLimiter *application.RateLimiter
}

// NewComplianceHandler crea una nueva instancia del handler de cumplimiento
func NewComplianceHandler(service *application.ComplianceService, rateLimiter *application.RateLimiter) *ComplianceHandler {
	return &ComplianceHandler{
		service:     service,
		rateLimiter: rateLimiter,
	}
}

// SubmissionResponse expone el registro de envío con un flag de evidencia en
// lugar del blob completo
type SubmissionResponse struct {
	*domain.ComplianceSubmission
	HasScreenshot bool `json:"hasScreenshot"`
}

func toSubmissionResponse(submission *domain.ComplianceSubmission) SubmissionResponse {
	return SubmissionResponse{
		ComplianceSubmission: submission,
		HasScreenshot:        submission.SireScreenshotURL != nil,
	}
}

// GetStatus obtiene el registro completo de un envío
func (h *ComplianceHandler) GetStatus(c *fiber.Ctx) error {
	submission, err := h.service.GetSubmission(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": toSubmissionResponse(submission),
	})
}

// PatchStatus aplica una corrección administrativa manual sobre los campos
// de estado SIRE/TRA de un envío
func (h *ComplianceHandler) PatchStatus(c *fiber.Ctx) error {
	var patch domain.SubmissionPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cuerpo de la petición inválido: " + err.Error(),
		})
	}

	if patch.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "el patch no contiene ningún campo",
		})
	}

	submission, err := h.service.ApplyManualOverride(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": toSubmissionResponse(submission),
	})
}

// Submit reporta una reserva completa a los portales SIRE/TRA
func (h *ComplianceHandler) Submit(c *fiber.Ctx) error {
	reservationID := c.Params("id")

	if allowed, err := h.rateLimiter.Allow(reservationID); !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	submission, err := h.service.Submit(c.Context(), reservationID)
	if err == nil {
		// Un envío exitoso libera la ventana de intentos de la reserva
		h.rateLimiter.Reset(reservationID)
	}
	return h.submissionResult(c, submission, err)
}

// Retry reintenta un envío fallido
func (h *ComplianceHandler) Retry(c *fiber.Ctx) error {
	submission, err := h.service.Retry(c.Context(), c.Params("id"))
	return h.submissionResult(c, submission, err)
}

// submissionResult traduce el resultado de un intento de envío a HTTP. Un
// fallo del portal no es un error del cliente: se devuelve el registro en
// failed con 502 para que el panel muestre el detalle y ofrezca reintentar.
func (h *ComplianceHandler) submissionResult(c *fiber.Ctx, submission *domain.ComplianceSubmission, err error) error {
	if err == nil {
		return c.JSON(fiber.Map{
			"data": toSubmissionResponse(submission),
		})
	}

	var adapterErr *domain.AdapterError
	switch {
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrReservationNotReady):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrSubmissionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidCatalogCode), errors.Is(err, domain.ErrInvalidDateFormat):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.As(err, &adapterErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": adapterErr.Error(),
			"data":  toSubmissionResponse(submission),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
