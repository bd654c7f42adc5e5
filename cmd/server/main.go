package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/bot"
	"github.com/dayoon/recruit-bot/internal/classifier"
	"github.com/dayoon/recruit-bot/internal/extractor"
	"github.com/dayoon/recruit-bot/internal/llm"
	"github.com/dayoon/recruit-bot/internal/router"
	"github.com/dayoon/recruit-bot/internal/server"
	"github.com/dayoon/recruit-bot/internal/session"
	"github.com/dayoon/recruit-bot/internal/storage"
	"github.com/dayoon/recruit-bot/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the LLM collaborator
	generator := llm.NewOpenAIGenerator(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize the classification pipeline
	keyword := classifier.NewKeywordClassifier()
	scorer := classifier.NewContextScorer(classifier.ContextConfig{
		Threshold:      cfg.Classifier.ContextThreshold,
		KeywordWeight:  cfg.Classifier.KeywordWeight,
		LengthWeight:   cfg.Classifier.LengthWeight,
		SentenceWeight: cfg.Classifier.SentenceWeight,
	})
	suggester := extractor.NewSuggestionGenerator(store, generator, logger)
	sessions := session.NewMemoryStore()

	rt := router.New(keyword, scorer, suggester, generator, store, sessions,
		router.Config{ShortTextThreshold: cfg.Classifier.ShortTextThreshold}, logger)

	// Start the Telegram transport when a token is configured
	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg.Telegram.Token, rt, logger)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		go func() {
			if err := b.Start(); err != nil {
				logger.Error("Bot error", zap.Error(err))
			}
		}()
	}

	// Start the HTTP server
	srv := server.New(rt, store, logger)
	logger.Info("Starting HTTP server", zap.String("address", cfg.Server.Address))
	if err := http.ListenAndServe(cfg.Server.Address, srv.Handler()); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
