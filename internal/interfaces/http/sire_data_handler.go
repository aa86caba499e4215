package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/toneill57/muva-chat-sub004/internal/application"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

type SireDataHandler struct {
	service *application.GuestDataService
}

// NewSireDataHandler crea una nueva instancia del handler de datos SIRE
func NewSireDataHandler(service *application.GuestDataService) *SireDataHandler {
	return &SireDataHandler{
		service: service,
	}
}

// GetProgress obtiene el subconjunto conocido de campos SIRE de un huésped y
// el siguiente campo a preguntar. El huésped se selecciona con ?guest_order=N
// (1 es el titular; si se omite, se asume el titular).
func (h *SireDataHandler) GetProgress(c *fiber.Ctx) error {
	guestOrder := c.QueryInt("guest_order", 1)
	if guestOrder < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "guest_order debe ser mayor o igual a 1",
		})
	}

	progress, err := h.service.GetProgress(c.Params("id"), guestOrder)
	if err != nil {
		// Códigos o fechas corruptos en el almacenamiento no son culpa del
		// cliente de este request, pero tampoco un fallo del servidor
		if errors.Is(err, domain.ErrInvalidCatalogCode) || errors.Is(err, domain.ErrInvalidDateFormat) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": progress,
	})
}

// SaveFields aplica las respuestas recolectadas de un turno conversacional al
// estado del huésped. Los campos ausentes del body no se tocan; un segundo
// apellido vacío significa confirmado sin segundo apellido.
func (h *SireDataHandler) SaveFields(c *fiber.Ctx) error {
	guestOrder := c.QueryInt("guest_order", 1)
	if guestOrder < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "guest_order debe ser mayor o igual a 1",
		})
	}

	var input application.GuestFieldsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cuerpo de la petición inválido: " + err.Error(),
		})
	}

	progress, err := h.service.SaveFields(c.Params("id"), guestOrder, &input)
	if err != nil {
		var validationErr *application.ValidationError
		switch {
		case errors.Is(err, domain.ErrCatalogNotFound),
			errors.Is(err, domain.ErrInvalidCatalogCode),
			errors.Is(err, domain.ErrInvalidDateFormat),
			errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"data": progress,
	})
}
