package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"trading-analysis-bot/config"
	"trading-analysis-bot/internal/analysis"
	"trading-analysis-bot/internal/api"
	"trading-analysis-bot/internal/auth"
	"trading-analysis-bot/internal/database"
	"trading-analysis-bot/internal/engine"
	"trading-analysis-bot/internal/instrument"
	"trading-analysis-bot/internal/logging"
	"trading-analysis-bot/internal/market"
	"trading-analysis-bot/internal/notification"
	"trading-analysis-bot/internal/risk"
	"trading-analysis-bot/internal/strategy"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat,
	})
	logger.Info().Msg("configuration loaded")

	// Redis (optional): candle cache and recheck scheduling
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, continuing without cache")
			redisClient = nil
		}
		cancel()
	}

	// Market data: Binance for crypto, Twelve Data for everything else,
	// with an optional Redis candle cache in front
	var provider market.Provider = market.NewRouter(
		market.NewBinanceClient(cfg.Market.BinanceBaseURL),
		market.NewTwelveDataClient(cfg.Market.TwelveDataAPIKey, cfg.Market.TwelveDataBaseURL),
	)
	if redisClient != nil {
		provider = market.NewCachedProvider(
			provider, redisClient,
			time.Duration(cfg.Market.CacheTTLSeconds)*time.Second,
			logging.Component(logger, "market-cache"),
		)
	}

	// Notifications
	notifyManager := notification.NewManager(logging.Component(logger, "notification"))
	if cfg.Notification.Enabled {
		if cfg.Notification.Telegram.Enabled {
			notifyManager.AddNotifier(notification.NewTelegramNotifier(notification.TelegramConfig{
				BotToken: cfg.Notification.Telegram.BotToken,
				ChatID:   cfg.Notification.Telegram.ChatID,
				Enabled:  cfg.Notification.Telegram.Enabled,
			}))
			logger.Info().Msg("telegram notifications enabled")
		}
		if cfg.Notification.Discord.Enabled {
			notifyManager.AddNotifier(notification.NewDiscordNotifier(notification.DiscordConfig{
				WebhookURL: cfg.Notification.Discord.WebhookURL,
				Enabled:    cfg.Notification.Discord.Enabled,
			}))
			logger.Info().Msg("discord notifications enabled")
		}
	}
	scheduler := notification.NewScheduler(redisClient, notifyManager, logging.Component(logger, "scheduler"))

	// Core pipeline collaborators
	registry := instrument.NewRegistry()
	sessions := analysis.NewSessionEngine(nil)
	news := analysis.NewForexFactoryNews(cfg.Market.NewsFeedURL, logging.Component(logger, "news"))
	sizer := risk.NewPositionSizer(registry, cfg.Risk.MinLot, cfg.Risk.MaxLot)

	engineCfg := engine.DefaultConfig()
	engineCfg.MinCandles = cfg.Analysis.MinCandles
	engineCfg.ATRPeriod = cfg.Analysis.ATRPeriod
	engineCfg.SLMult = cfg.Analysis.SLMult
	engineCfg.TPMult = cfg.Analysis.TPMult
	engineCfg.MinRR = cfg.Analysis.MinRR
	engineCfg.MinSLPips = cfg.Analysis.MinSLPips
	engineCfg.SpreadRatio = cfg.Analysis.SpreadRatio
	engineCfg.StopHuntWindow = cfg.Analysis.StopHuntWindow
	engineCfg.ConfidenceThreshold = cfg.Analysis.ConfidenceThreshold
	engineCfg.NewsBufferMinutes = cfg.Analysis.NewsBufferMinutes
	engineCfg.FetchLimit = cfg.Market.FetchLimit

	analyzer := engine.NewAnalyzer(engineCfg, engine.Deps{
		Data:       provider,
		Strategy:   strategy.NewEMARSIStrategy(cfg.Analysis.EMAFastPeriod, cfg.Analysis.EMASlowPeriod, cfg.Analysis.RSIPeriod),
		Trend:      strategy.NewTrendClassifier(cfg.Analysis.TrendMAPeriod),
		Sessions:   sessions,
		News:       news,
		Scores:     analysis.NewStaticScoreProvider(),
		Recheck:    analysis.NewRecheckEngine(cfg.Analysis.ATRThreshold),
		Registry:   registry,
		Sizer:      sizer,
		Dispatcher: notifyManager,
		Scheduler:  scheduler,
		Logger:     logging.Component(logger, "analyzer"),
	})

	// Database (optional): user registration and storage
	var userRepo *database.UserRepository
	if cfg.Database.Enabled {
		db, err := database.NewDB(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Database,
			SSLMode:  cfg.Database.SSLMode,
		}, logging.Component(logger, "database"))
		if err != nil {
			logger.Fatal().Err(err).Msg("database connection failed")
		}
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.RunMigrations(migrateCtx); err != nil {
			logger.Fatal().Err(err).Msg("database migrations failed")
		}
		cancel()

		userRepo = database.NewUserRepository(db)
	}

	var jwtManager *auth.JWTManager
	if cfg.Auth.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenDurationHours)*time.Hour)
	}

	server := api.NewServer(api.ServerOpts{
		Analyzer:  analyzer,
		Sessions:  sessions,
		Scheduler: scheduler,
		Users:     userRepo,
		Passwords: auth.NewPasswordManager(cfg.Auth.BcryptCost),
		JWT:       jwtManager,
		Bounds: api.RiskBounds{
			DefaultRiskPercent: cfg.Risk.DefaultRiskPercent,
			MinRiskPercent:     cfg.Risk.MinRiskPercent,
			MaxRiskPercent:     cfg.Risk.MaxRiskPercent,
			MinLot:             cfg.Risk.MinLot,
			MaxLot:             cfg.Risk.MaxLot,
			DefaultBalance:     cfg.Risk.DefaultBalance,
		},
		Logger: logging.Component(logger, "api"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, cfg.Server.Host, cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server failed")
	}
	logger.Info().Msg("shutdown complete")
}
