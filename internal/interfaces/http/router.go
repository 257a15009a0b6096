package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jannahweb/jannah-os-api/internal/application/auth"
	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/internal/application/clients"
	"github.com/jannahweb/jannah-os-api/internal/application/integrations"
	"github.com/jannahweb/jannah-os-api/internal/application/notifications"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/pkg/logger"
)

// RouterDeps dépendances pour le router.
type RouterDeps struct {
	ClientUC        *clients.UseCase
	QuoteUC         *billing.QuoteUseCase
	ConvertUC       *billing.ConvertUseCase
	CheckoutUC      *billing.CheckoutUseCase
	PDFUC           *billing.PDFUseCase
	DocumentStorage billing.DocumentStorage
	NotificationSvc *notifications.Service
	NewFeed         FeedFactory
	IntegrationUC   *integrations.UseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	Log             *logger.Logger
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhook de paiement (public : appelé par le prestataire)
	invoiceHandler := NewInvoiceHandler(deps.ConvertUC, deps.CheckoutUC)
	api.Post("/payments/webhook", invoiceHandler.PaymentWebhook)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients / projets (protégé)
	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Delete("/:id", RequireRole(entity.RoleAdmin), clientHandler.Delete)

	// Devis (protégé)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.ConvertUC)
	documentHandler := NewDocumentHandler(deps.PDFUC, deps.DocumentStorage)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Post("/:id/send", quoteHandler.Send)
	quotes.Post("/:id/convert", quoteHandler.Convert)
	quotes.Get("/:id/pdf", documentHandler.QuotePDF)

	// Factures (protégé)
	invoices := protected.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/checkout", invoiceHandler.Checkout)
	invoices.Get("/:id/pdf", documentHandler.InvoicePDF)

	// Documents archivés (protégé)
	protected.Get("/documents/:filename", documentHandler.Download)

	// Notifications (protégé) : REST + websocket temps réel
	notifGroup := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationSvc)
	wsHandler := NewWSHandler(deps.NewFeed, deps.Log)
	notifGroup.Get("/feed", wsHandler.Upgrade, wsHandler.Serve())
	notifGroup.Get("/", notificationHandler.List)
	notifGroup.Put("/read-all", notificationHandler.MarkAllRead)
	notifGroup.Put("/:id/read", notificationHandler.MarkRead)
	notifGroup.Delete("/", notificationHandler.ClearAll)

	// Intégrations (protégé)
	integrationsGroup := protected.Group("/integrations")
	integrationHandler := NewIntegrationHandler(deps.IntegrationUC)
	integrationsGroup.Get("/", integrationHandler.List)
	integrationsGroup.Post("/:slug", integrationHandler.Attach)
	integrationsGroup.Put("/:slug/config", integrationHandler.SaveConfig)
	integrationsGroup.Delete("/:slug", integrationHandler.Disconnect)
}
