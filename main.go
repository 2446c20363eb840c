// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"billing-habit/cmd"
	"billing-habit/internal/data/repository"
	"billing-habit/internal/wire"
	"billing-habit/pkg/auth"
	"billing-habit/pkg/database"
	"billing-habit/pkg/mailer"
	"billing-habit/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	// Prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("env", config.App.Env),
		zap.Bool("debug", config.App.Debug),
	)

	if config.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Apply schema migrations
	if err := database.Migrate(config.Database.DSN(), logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	scheduler := cmd.NewScheduler(logger)

	// Token revocation list
	var blacklist auth.TokenBlacklist
	if config.Redis.Addr != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(ctx, config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", config.Redis.Addr))
		}
		defer redisBlacklist.Close()
		blacklist = redisBlacklist
		logger.Info("Token blacklist backed by redis", zap.String("addr", config.Redis.Addr))
	} else {
		memBlacklist := auth.NewInMemoryTokenBlacklist()
		blacklist = memBlacklist
		err := scheduler.Add("purge-revoked-tokens", "@every 15m", time.Minute, func(context.Context) error {
			if n := memBlacklist.Purge(); n > 0 {
				logger.Debug("Purged revoked tokens", zap.Int("count", n))
			}
			return nil
		})
		if err != nil {
			logger.Fatal("Failed to schedule token purge", zap.Error(err))
		}
		logger.Warn("REDIS_ADDR not set, token blacklist is in-memory")
	}

	tokens := auth.NewTokenManager(config.JWT.Secret, config.JWT.Expiry(), config.App.Name)
	sender := mailer.New(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, tokens, blacklist, sender, config, logger)

	// Unverified account sweep
	err = scheduler.Add("sweep-unverified-accounts", config.Sweep.Schedule, 5*time.Minute, func(ctx context.Context) error {
		_, err := app.Service.Account.SweepUnverified(ctx)
		return err
	})
	if err != nil {
		logger.Fatal("Failed to schedule account sweep", zap.Error(err))
	}
	scheduler.Start()

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	scheduler.Stop(stopCtx)

	logger.Info("Shutdown complete")
}
