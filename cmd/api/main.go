package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jannahweb/jannah-os-api/internal/application/auth"
	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/internal/application/clients"
	"github.com/jannahweb/jannah-os-api/internal/application/integrations"
	"github.com/jannahweb/jannah-os-api/internal/application/notifications"
	"github.com/jannahweb/jannah-os-api/internal/infrastructure/payment"
	infrapdf "github.com/jannahweb/jannah-os-api/internal/infrastructure/pdf"
	"github.com/jannahweb/jannah-os-api/internal/infrastructure/postgres"
	infrastorage "github.com/jannahweb/jannah-os-api/internal/infrastructure/storage"
	httpRouter "github.com/jannahweb/jannah-os-api/internal/interfaces/http"
	"github.com/jannahweb/jannah-os-api/pkg/config"
	"github.com/jannahweb/jannah-os-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	integrationRepo := postgres.NewIntegrationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Stockage des PDF générés : disque local par défaut, S3 en production.
	var docStorage billing.DocumentStorage
	switch cfg.Storage.Driver {
	case "s3":
		docStorage, err = infrastorage.NewS3Storage(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("initialisation du stockage S3")
		}
	default:
		docStorage, err = infrastorage.NewLocalStorage(cfg.Storage.LocalPath)
		if err != nil {
			log.Fatal().Err(err).Msg("initialisation du stockage local")
		}
	}

	// Passerelle de paiement : sans clé secrète, le checkout reste désactivé
	// et l'API renvoie CHECKOUT_DISABLED.
	var checkoutProvider billing.CheckoutProvider
	if cfg.Payment.SecretKey != "" {
		checkoutProvider = payment.NewCheckoutClient(cfg.Payment)
	} else {
		log.Warn().Msg("PAYMENT_SECRET_KEY absente, paiement en ligne désactivé")
	}

	clientUC := clients.NewUseCase(clientRepo)
	quoteUC := billing.NewQuoteUseCase(quoteRepo, clientRepo)
	convertUC := billing.NewConvertUseCase(quoteRepo, invoiceRepo, clientRepo, notificationRepo)
	checkoutUC := billing.NewCheckoutUseCase(invoiceRepo, checkoutProvider)
	pdfGenerator := infrapdf.NewMarotoDocumentGenerator(cfg.App.BrandTag)
	pdfUC := billing.NewPDFUseCase(quoteRepo, invoiceRepo, clientRepo, pdfGenerator, docStorage, cfg.App.BrandTag, log)
	notificationSvc := notifications.NewService(notificationRepo)
	integrationUC := integrations.NewUseCase(integrationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Chaque connexion websocket reçoit son propre fil, abonné au
	// LISTEN/NOTIFY de la table notifications.
	feedListener := postgres.NewFeedListener(pool, log)
	newFeed := func() *notifications.Feed {
		return notifications.NewFeed(notificationRepo, feedListener, log)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Jannah OS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:        clientUC,
		QuoteUC:         quoteUC,
		ConvertUC:       convertUC,
		CheckoutUC:      checkoutUC,
		PDFUC:           pdfUC,
		DocumentStorage: docStorage,
		NotificationSvc: notificationSvc,
		NewFeed:         newFeed,
		IntegrationUC:   integrationUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
