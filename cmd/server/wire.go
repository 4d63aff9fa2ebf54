//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/personachat/server/internal/config"
	"github.com/personachat/server/internal/domain/chat"
	"github.com/personachat/server/internal/domain/conversation"
	"github.com/personachat/server/internal/domain/llm"
	"github.com/personachat/server/internal/domain/user"
	"github.com/personachat/server/internal/infrastructure/auth"
	"github.com/personachat/server/internal/infrastructure/database"
	"github.com/personachat/server/internal/infrastructure/llmprovider"
	"github.com/personachat/server/internal/infrastructure/logger"
	conversationrepo "github.com/personachat/server/internal/infrastructure/repository/conversation"
	userrepo "github.com/personachat/server/internal/infrastructure/repository/user"
	"github.com/personachat/server/internal/interfaces/httpserver"
)

var repositorySet = wire.NewSet(
	userrepo.NewPostgresRepository,
	wire.Bind(new(user.Repository), new(*userrepo.PostgresRepository)),
	conversationrepo.NewPostgresRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.PostgresRepository)),
)

var chatSet = wire.NewSet(
	newCompletionClient,
	wire.Bind(new(llm.Provider), new(*llmprovider.Client)),
	chat.NewService,
	wire.Bind(new(chat.Service), new(*chat.ServiceImpl)),
)

// BuildApplication assembles the chat service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newGormDB,
		newAuthValidator,
		repositorySet,
		chatSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newGormDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newCompletionClient(cfg *config.Config) *llmprovider.Client {
	return llmprovider.NewClient(llmprovider.Config{
		BaseURL: cfg.CompletionBaseURL,
		APIKey:  cfg.CompletionAPIKey,
		Model:   cfg.CompletionModel,
		Timeout: cfg.CompletionTimeout,
	})
}
