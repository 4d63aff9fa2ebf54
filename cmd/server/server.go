package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/config"
	"github.com/personachat/server/internal/domain/chat"
	"github.com/personachat/server/internal/infrastructure/auth"
	"github.com/personachat/server/internal/infrastructure/database"
	"github.com/personachat/server/internal/infrastructure/llmprovider"
	"github.com/personachat/server/internal/infrastructure/logger"
	"github.com/personachat/server/internal/infrastructure/observability"
	conversationrepo "github.com/personachat/server/internal/infrastructure/repository/conversation"
	userrepo "github.com/personachat/server/internal/infrastructure/repository/user"
	"github.com/personachat/server/internal/interfaces/httpserver"
)

// @title Persona Chat API
// @version 1.0
// @description Persona chat service with guest and signed-in conversation flows
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	switch cfg.MigrationsMode {
	case "sql":
		err = database.RunMigrations(db, log)
	default:
		err = database.AutoMigrate(ctx, db, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	userRepository := userrepo.NewPostgresRepository(db)
	conversationRepository := conversationrepo.NewPostgresRepository(db)
	completionClient := llmprovider.NewClient(llmprovider.Config{
		BaseURL: cfg.CompletionBaseURL,
		APIKey:  cfg.CompletionAPIKey,
		Model:   cfg.CompletionModel,
		Timeout: cfg.CompletionTimeout,
	})
	chatService := chat.NewService(userRepository, conversationRepository, completionClient, log)

	httpServer := httpserver.New(cfg, log, chatService, userRepository, conversationRepository, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
