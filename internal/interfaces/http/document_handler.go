package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
)

// DocumentHandler sert les PDF de devis et de factures (protégé).
type DocumentHandler struct {
	pdf     *billing.PDFUseCase
	storage billing.DocumentStorage
}

// NewDocumentHandler construit le handler.
func NewDocumentHandler(pdf *billing.PDFUseCase, storage billing.DocumentStorage) *DocumentHandler {
	return &DocumentHandler{pdf: pdf, storage: storage}
}

// QuotePDF GET /api/quotes/:id/pdf — génère le PDF du devis et force le
// téléchargement sous son nom contractuel (Devis_<numéro>_<marque>.pdf).
func (h *DocumentHandler) QuotePDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	data, filename, err := h.pdf.QuotePDF(c.Context(), id)
	if err != nil {
		return h.renderError(c, "devis non trouvé", err)
	}
	return sendPDF(c, filename, data)
}

// InvoicePDF GET /api/invoices/:id/pdf
func (h *DocumentHandler) InvoicePDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	data, filename, err := h.pdf.InvoicePDF(c.Context(), id)
	if err != nil {
		return h.renderError(c, "facture non trouvée", err)
	}
	return sendPDF(c, filename, data)
}

// Download GET /api/documents/:filename — ressert un PDF archivé depuis le
// stockage (local ou S3), sans le régénérer.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	filename := c.Params("filename")
	// Le nom archivé ne contient que des caractères sûrs ; tout le reste est
	// rejeté avant d'atteindre le stockage.
	if filename == "" || strings.ContainsAny(filename, "/\\") || !strings.HasSuffix(filename, ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nom de fichier invalide"})
	}
	data, err := h.storage.Load(c.Context(), filename)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "document non trouvé"})
	}
	return sendPDF(c, filename, data)
}

func (h *DocumentHandler) renderError(c *fiber.Ctx, notFoundMsg string, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	}
	if errors.Is(err, domain.ErrRender) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER", Message: "échec de génération du PDF"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
