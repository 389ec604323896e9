package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/8FAX/HoyoHelper/internal/card"
	"github.com/8FAX/HoyoHelper/internal/hoyolab"
	"github.com/8FAX/HoyoHelper/internal/model"
	"github.com/8FAX/HoyoHelper/internal/notify"
	"github.com/8FAX/HoyoHelper/internal/service"
	"github.com/8FAX/HoyoHelper/pkg/logger"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	var sinks notify.Multi
	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhook(zapLogger, cfg.Notify.WebhookURL))
	}
	if cfg.Notify.Telegram.BotToken != "" {
		tg, err := notify.NewTelegram(zapLogger, cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
		if err != nil {
			zapLogger.Fatal("Failed to initialize telegram notifier", zap.Error(err))
		}
		sinks = append(sinks, tg)
	}
	if len(sinks) == 0 {
		zapLogger.Warn("no notifier configured, outcomes will only be logged")
	}

	client := hoyolab.NewClient(zapLogger)
	assets := card.NewAssets(zapLogger, cfg.CDNBaseURL)
	compositor, err := card.NewCompositor(zapLogger, assets)
	if err != nil {
		zapLogger.Fatal("Failed to initialize card compositor", zap.Error(err))
	}

	accounts := make([]model.Account, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		accounts = append(accounts, model.Account{
			Nickname:   a.Nickname,
			Username:   a.Username,
			Cookie:     a.Cookie,
			Games:      a.Games,
			WebhookURL: a.WebhookURL,
		})
	}
	if len(accounts) == 0 {
		zapLogger.Info("no accounts configured, nothing to do")
		return
	}

	processor := service.NewProcessor(zapLogger, client, compositor, sinks, hoyolab.DefaultGames())

	failures := processor.ProcessAccounts(context.Background(), accounts)
	if failures > 0 {
		zapLogger.Error("run finished with failures", zap.Int("failures", failures))
		os.Exit(1)
	}
	zapLogger.Info("run finished", zap.Int("accounts", len(accounts)))
}
