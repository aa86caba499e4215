package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/toneill57/muva-chat-sub004/internal/application"
)

type SettingsHandler struct {
	service *application.SettingsService
}

func NewSettingsHandler(service *application.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetSetting obtiene un parámetro de cumplimiento por clave
func (h *SettingsHandler) GetSetting(c *fiber.Ctx) error {
	setting, err := h.service.GetSetting(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data": setting,
	})
}

// GetAllSettings obtiene todos los parámetros de cumplimiento del tenant
func (h *SettingsHandler) GetAllSettings(c *fiber.Ctx) error {
	settings, err := h.service.GetAllSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data": settings,
	})
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}

// UpdateSetting actualiza un parámetro de cumplimiento
func (h *SettingsHandler) UpdateSetting(c *fiber.Ctx) error {
	key := c.Params("key")

	var req UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cuerpo de la petición inválido",
		})
	}

	if err := h.service.UpdateSetting(key, req.Value); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "parámetro actualizado",
		"key":     key,
	})
}
