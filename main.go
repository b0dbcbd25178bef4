package main

import (
	"PerfDash/bot"
	"PerfDash/impl/core"
	"PerfDash/internal/config"
	"PerfDash/internal/database"
	"PerfDash/internal/http-server/api"
	"PerfDash/internal/lib/logger"
	"PerfDash/internal/lib/sl"
	"PerfDash/internal/service/source"
	"PerfDash/internal/ws"
	"context"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			// Set up Telegram handler for the logger
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting perfdash", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)
	handler.SetLocation(conf.Location())
	handler.SetRefreshInterval(conf.Performance.RefreshInterval)
	handler.SetLimits(conf.Source.AuditLimit, conf.Performance.HistoryLimit)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	src, err := source.NewSourceService(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("source service")
		return
	}
	defer src.Close()
	handler.SetSource(src)
	lg.With(
		slog.String("url", conf.Source.BaseURL),
		slog.Bool("client_credentials", conf.Source.ClientID != ""),
		sl.Secret("token", conf.Source.Token),
	).Info("source service initialized")

	hub := ws.NewHub(lg.With(sl.Module("ws")))
	hub.SetHandler(handler)
	go hub.Run(ctx)
	handler.SetNotifier(hub)

	if tgBot != nil {
		tgBot.SetReporter(handler)
		if conf.Telegram.Digest {
			handler.SetMessageService(tgBot)
		}
		go func() {
			if err := tgBot.Start(); err != nil {
				lg.Error("telegram bot error", sl.Err(err))
			}
		}()
	}

	handler.Init(ctx)

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
