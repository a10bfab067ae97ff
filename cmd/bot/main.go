package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Karen042009/Arvion-telegram-bot/internal/bot"
	"github.com/Karen042009/Arvion-telegram-bot/internal/config"
	"github.com/Karen042009/Arvion-telegram-bot/internal/content"
	"github.com/Karen042009/Arvion-telegram-bot/internal/database"
	"github.com/Karen042009/Arvion-telegram-bot/internal/gemini"
	"github.com/Karen042009/Arvion-telegram-bot/internal/tts"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Не удалось создать логгер: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	table, err := locales.Load()
	if err != nil {
		logger.Fatal("Не удалось загрузить локализации", zap.Error(err))
	}
	logger.Info("Локализации загружены", zap.Strings("languages", table.Languages()))

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Не удалось открыть базу данных", zap.Error(err))
	}
	defer db.Close()

	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ProviderTimeout, logger)
	if err != nil {
		logger.Fatal("Не удалось создать клиент Gemini", zap.Error(err))
	}
	ai := gemini.NewService(client, db, logger)
	orchestrator := content.NewOrchestrator(client, content.DefaultRetryPolicy, logger)
	voice := tts.NewClient(cfg.ProviderTimeout, logger)

	tgBot, err := bot.New(cfg.TelegramBotToken, db, ai, orchestrator, voice, table, logger)
	if err != nil {
		logger.Fatal("Не удалось создать бота", zap.Error(err))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tgBot.Start(ctx)
	})

	logger.Info("Бот запущен")
	if err := g.Wait(); err != nil {
		logger.Fatal("Бот завершился с ошибкой", zap.Error(err))
	}
	logger.Info("Бот остановлен")
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
