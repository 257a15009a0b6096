package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
)

// InvoiceHandler gère les requêtes HTTP des factures (protégé, sauf webhook).
type InvoiceHandler struct {
	convert  *billing.ConvertUseCase
	checkout *billing.CheckoutUseCase
}

// NewInvoiceHandler construit le handler.
func NewInvoiceHandler(convert *billing.ConvertUseCase, checkout *billing.CheckoutUseCase) *InvoiceHandler {
	return &InvoiceHandler{convert: convert, checkout: checkout}
}

// List GET /api/invoices?status=&limit=20&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.convert.ListInvoices(c.Query("status"), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inconnu"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	invoice, err := h.convert.GetInvoice(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture non trouvée"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(invoice)
}

// Checkout POST /api/invoices/:id/checkout — crée une session de paiement
// et renvoie l'URL de redirection.
func (h *InvoiceHandler) Checkout(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.checkout.CreateCheckout(c.Context(), id, in.Amount)
	if err != nil {
		if err == domain.ErrCheckoutDisabled {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CHECKOUT_DISABLED", Message: "le paiement en ligne n'est pas configuré"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture non trouvée"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "facture déjà payée ou montant invalide"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PaymentWebhook POST /api/payments/webhook — callback du prestataire de
// paiement (public). Idempotent : un événement rejoué ne change rien.
func (h *InvoiceHandler) PaymentWebhook(c *fiber.Ctx) error {
	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	// Seules les sessions complétées nous intéressent ; le reste est accusé
	// réception sans action.
	if in.Type != "checkout.session.completed" || in.ClientReferenceID == "" {
		return c.JSON(fiber.Map{"received": true})
	}
	if err := h.checkout.HandlePaymentConfirmed(in.ClientReferenceID, time.Now()); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture non trouvée"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"received": true})
}
