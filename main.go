package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/streadway/amqp"

	"hngpack/internal/config"
	"hngpack/internal/handlers"
	"hngpack/internal/middleware"
	"hngpack/internal/repositories"
	"hngpack/internal/services"
	logx "hngpack/pkg/logger"
	"hngpack/pkg/rabbitmq"
)

// NewApp wires services, handlers and middleware into a Fiber app.
// repo and publisher may be nil.
func NewApp(cfg *config.Config, repo repositories.DocumentRepository, publisher services.OrderEventPublisher) *fiber.App {
	// --- Initialize Services ---
	productService := services.NewProductService(repo)
	orderService := services.NewOrderService(repo, publisher)
	diagnosticsService := services.NewDiagnosticsService(repo, cfg)

	// --- Initialize Handlers ---
	systemHandler := handlers.NewSystemHandler(diagnosticsService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:               "HNG Packaging Solution",
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// --- Middleware ---
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(middleware.CORS())

	// --- Routes ---
	systemHandler.RegisterRoutes(app)

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	return app
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}

	logx.Init(logx.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
	})

	// --- Initialize Repository ---
	// Without a database the API keeps serving: reads fall back to the default catalog
	// and writes answer 500.
	repo, err := repositories.Open(context.Background(), cfg.Database)
	switch {
	case errors.Is(err, repositories.ErrNotConfigured):
		logx.Warn().Msg("DATABASE_URL or DATABASE_NAME not set, running without a database")
	case err != nil:
		logx.Warn().Err(err).Msg("failed to open database, running without a database")
	default:
		logx.Info().Str("database", repo.Name()).Msg("database connected")
	}

	// --- Initialize RabbitMQ Client ---
	var publisher services.OrderEventPublisher
	var mqClient *rabbitmq.Client
	if cfg.Events.Enabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:   cfg.Events.RabbitMQURL,
			Queue: cfg.Events.Queue,
		})
		if err != nil {
			logx.Warn().Err(err).Msg("order events disabled")
			mqClient = nil
		} else {
			publisher = mqClient
		}
	}

	// --- Start RabbitMQ Consumer ---
	if mqClient != nil && cfg.Events.Consume {
		if err := mqClient.ConsumeOrderEvents(logOrderEvent); err != nil {
			logx.Error().Err(err).Msg("failed to start order event consumer")
		}
	}

	app := NewApp(cfg, repo, publisher)

	// --- Start HTTP Server ---
	go func() {
		logx.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := app.Listen(cfg.Addr()); err != nil {
			logx.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logx.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logx.Error().Err(err).Msg("error during fiber shutdown")
	}

	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logx.Error().Err(err).Msg("error closing rabbitmq client")
		}
	}

	if repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := repo.Close(ctx); err != nil {
			logx.Error().Err(err).Msg("error closing database")
		}
	}

	logx.Info().Msg("server gracefully stopped")
}

// logOrderEvent logs and acknowledges order events. Undecodable messages are
// dropped rather than requeued.
func logOrderEvent(msg amqp.Delivery) error {
	var event services.OrderCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logx.Warn().Err(err).Uint64("tag", msg.DeliveryTag).Msg("dropping undecodable order event")
		return nil
	}
	logx.Info().
		Uint64("tag", msg.DeliveryTag).
		Str("event", event.Event).
		Str("order_id", event.OrderID).
		Time("created_at", event.CreatedAt).
		Msg("received order event")
	return nil
}
