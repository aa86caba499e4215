package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/toneill57/muva-chat-sub004/internal/catalog"
)

type CatalogHandler struct {
	resolver *catalog.Resolver
}

// NewCatalogHandler crea una nueva instancia del handler de catálogos
func NewCatalogHandler(resolver *catalog.Resolver) *CatalogHandler {
	return &CatalogHandler{
		resolver: resolver,
	}
}

// Search busca entradas de catálogo por subcadena para autocompletado.
// Parámetros: ?q=texto&kind=country|city|city_or_country (kind opcional,
// por defecto busca en ambos catálogos).
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "el parámetro q es requerido",
		})
	}

	kind := catalog.Kind(c.Query("kind", string(catalog.KindCityOrCountry)))
	switch kind {
	case catalog.KindCountry, catalog.KindCity, catalog.KindCityOrCountry:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "kind debe ser country, city o city_or_country",
		})
	}

	return c.JSON(fiber.Map{
		"data": h.resolver.Search(query, kind),
	})
}
