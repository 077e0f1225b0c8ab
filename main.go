package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ImpressionsBot/bot"
	"ImpressionsBot/bot/conversation"
	"ImpressionsBot/bot/telegram"
	"ImpressionsBot/impl/core"
	"ImpressionsBot/internal/config"
	"ImpressionsBot/internal/database"
	"ImpressionsBot/internal/http-server/api"
	"ImpressionsBot/internal/lib/logger"
	"ImpressionsBot/internal/lib/sl"
	"ImpressionsBot/internal/lock"
	"ImpressionsBot/internal/metrics"
	"ImpressionsBot/internal/service/store"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	keyOwner := flag.String("key", "", "generate an API key for the operator and exit")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting impressions bot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	metrics.MustRegister()

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db == nil {
		lg.Error("mongo is required for the catalog and orders")
		os.Exit(1)
	}
	handler.SetRepository(db)
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("user", conf.Mongo.User),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	if *keyOwner != "" {
		key, err := handler.GenerateApiKey(*keyOwner)
		if err != nil {
			lg.Error("generate api key", sl.Err(err))
			os.Exit(1)
		}
		fmt.Println(key)
		return
	}

	storeService := store.NewStoreService(lg)
	storeService.SetRepository(db)

	var locker conversation.Locker = conversation.NewChatLocker()
	if conf.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := lock.NewClient(ctx, conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
		cancel()
		if err != nil {
			lg.Error("redis client", sl.Err(err))
			os.Exit(1)
		}
		locker = lock.NewRedisLocker(client, conf.Redis.LockTTL, lg)
		lg.With(
			slog.String("addr", conf.Redis.Addr),
			slog.Duration("ttl", conf.Redis.LockTTL),
		).Info("redis chat lock initialized")
	}

	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.Workers, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
			os.Exit(1)
		}

		transport := telegram.NewTransport(tgBot.API(), conf.Telegram.ApiKey)
		flow := conversation.NewFlow(transport, storeService, lg)
		dispatcher := conversation.NewDispatcher(
			conversation.NewRegistry(flow),
			conversation.NewMongoRecordStorage(db),
			locker,
			transport,
			lg,
			conf.Conversation.Strict,
		)
		tgBot.SetDispatcher(dispatcher)
		handler.SetConversationService(dispatcher)

		lg.With(
			slog.String("bot_name", conf.Telegram.BotName),
			slog.Bool("strict", conf.Conversation.Strict),
		).Info("telegram bot initialized")

		go func() {
			if err := tgBot.Start(); err != nil {
				lg.Error("telegram bot error", sl.Err(err))
			}
		}()
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
