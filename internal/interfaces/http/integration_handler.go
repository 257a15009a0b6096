package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/application/integrations"
	"github.com/jannahweb/jannah-os-api/internal/domain"
)

// IntegrationHandler gère le catalogue d'intégrations (protégé).
type IntegrationHandler struct {
	uc *integrations.UseCase
}

// NewIntegrationHandler construit le handler.
func NewIntegrationHandler(uc *integrations.UseCase) *IntegrationHandler {
	return &IntegrationHandler{uc: uc}
}

// List GET /api/integrations — le catalogue complet, fusionné avec l'état
// de connexion persisté.
func (h *IntegrationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Attach POST /api/integrations/:slug — rattache une entrée du catalogue.
func (h *IntegrationHandler) Attach(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slug requis"})
	}
	integration, err := h.uc.Attach(slug)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "intégration inconnue du catalogue"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "intégration déjà rattachée"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(integration)
}

// SaveConfig PUT /api/integrations/:slug/config — enregistre les identifiants
// du formulaire piloté par le schéma de champs.
func (h *IntegrationHandler) SaveConfig(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slug requis"})
	}
	var in dto.SaveIntegrationConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.uc.SaveConfig(slug, in); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "intégration non rattachée"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "clé de configuration hors schéma"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Disconnect DELETE /api/integrations/:slug
func (h *IntegrationHandler) Disconnect(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slug requis"})
	}
	if err := h.uc.Disconnect(slug); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "intégration non rattachée"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
