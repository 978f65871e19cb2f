package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	_ "github.com/jhoicas/hst-contabilidad/docs"
	"github.com/jhoicas/hst-contabilidad/internal/application/auth"
	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/datastore"
	infrapdf "github.com/jhoicas/hst-contabilidad/internal/infrastructure/pdf"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/hst-contabilidad/internal/interfaces/http"
	"github.com/jhoicas/hst-contabilidad/pkg/config"
	"github.com/jhoicas/hst-contabilidad/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("storage_driver", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}
	if cfg.Auth.OperatorPasswordHash == "" {
		log.Warn().Msg("AUTH_OPERATOR_PASSWORD_HASH vacío: nadie podrá iniciar sesión (ver hstctl hash-password)")
	}

	ctx := context.Background()
	stores, err := datastore.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén de datos")
	}
	defer stores.Close()
	if stores.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
	}

	documents, localFiles, err := storage.New(cfg.Storage, cfg.JWT.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de documentos")
	}

	snapshots := bookkeeping.NewSnapshotLoader(stores.Movements, stores.Invoices, stores.Payments)
	movementUC := bookkeeping.NewMovementUseCase(stores.Movements, snapshots)
	invoiceUC := bookkeeping.NewInvoiceUseCase(
		stores.Tx, stores.Invoices, stores.Payments, documents, snapshots, log, cfg.Storage.SignedURLTTL(),
	)
	paymentUC := bookkeeping.NewPaymentUseCase(stores.Tx, snapshots, log)
	dashboardUC := bookkeeping.NewDashboardUseCase(snapshots)

	// PDF: estado de cuenta con montos en formato 1,234.56
	pdfGenerator := infrapdf.NewStatementGenerator(cfg.App.Name, language.AmericanEnglish)
	statementUC := bookkeeping.NewStatementUseCase(snapshots, pdfGenerator, "HST - Estado de cuenta")

	authUC := auth.NewAuthUseCase(cfg.Auth.OperatorPasswordHash, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		ElevateExpMinutes: cfg.JWT.ElevateExpiration,
		Issuer:            cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderRequestID,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "HST Contabilidad API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		MovementUC:  movementUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		DashboardUC: dashboardUC,
		StatementUC: statementUC,
		ShareLinks:  stores.ShareLinks,
		LocalFiles:  localFiles,
		JWTSecret:   cfg.JWT.Secret,
		Location:    cfg.App.Location(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
