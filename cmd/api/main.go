package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	cacheport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/notification"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/query"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/request"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/settlement"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/feed"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/notify"
	timeProvider "github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	defer appLogger.Flush()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Server stopped with error", map[string]any{
			"error": err.Error(),
		})
		appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *logger.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := timeProvider.NewRealTimeProvider()
	ids := idgen.NewUUIDGenerator()

	// Metrics
	var appMetrics coreport.Metrics = metrics.Noop{}
	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
		appMetrics = recorder
	}

	// Connect to the database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if recorder != nil {
		if err := dbManager.StartMonitoring(recorder, cfg.Metrics.PoolInterval); err != nil {
			appLogger.Warn("Connection pool monitoring disabled", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Unit of work
	uow := dbManager.CreateUnitOfWork()

	// Redis backed collaborators
	var redisClient *redis.Client
	if cfg.UsesRedis() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		redisClient = client
		defer redisClient.Close()
	}

	var providerCache cacheport.ProviderCache
	if cfg.Cache.Enabled {
		providerCache = cache.NewRedisProviderCache(redisClient, cfg.Cache.KeyPrefix, cfg.Cache.ProviderTTL, appLogger)
	}

	// Notifications and the live feed
	hub := feed.NewHub(cfg.Notification.FeedBuffer, appLogger)
	notifiers := []messaging.Notifier{notify.NewInboxNotifier(uow)}
	if cfg.Notification.StreamEnabled {
		notifiers = append(notifiers, notify.NewRedisStreamNotifier(redisClient, cfg.Notification.Stream, cfg.Notification.StreamMaxLen))
	}
	dispatcher := notification.NewDispatcher(notifiers, hub, ids, tp, appLogger, appMetrics, cfg.Notification.DispatchTimeout)

	// Initialize use cases
	ledgerService := ledger.NewService(uow, ids, tp, appLogger, appMetrics)
	settlementEngine := settlement.NewEngine(uow, ledgerService, dispatcher, tp, appLogger, appMetrics)
	requestPolicy := request.Policy{
		MinMB:         cfg.Request.MinMB,
		ExpireAfter:   cfg.Request.ExpireAfter,
		SweepInterval: cfg.Request.SweepInterval,
		SweepBatch:    cfg.Request.SweepBatch,
	}
	requestService := request.NewService(uow, ledgerService, settlementEngine, dispatcher, ids, tp, appLogger, appMetrics, requestPolicy)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	accountService := account.NewService(uow, ledgerService, hasher, ids, tp, appLogger, providerCache, cfg.Ledger.WelcomeBonus)
	queryFacade := query.NewFacade(uow, providerCache, appLogger, query.Limits{
		DefaultHistory: cfg.Ledger.HistoryDefaultLimit,
		MaxHistory:     cfg.Ledger.HistoryMaxLimit,
	})
	inbox := notification.NewInbox(uow)

	// Create demo users
	if cfg.Database.SeedDemoUsers {
		created, err := migration.CreateDefaultUsers(ctx, accountService)
		if err != nil {
			appLogger.Error("Failed to create default users", map[string]any{
				"error": err.Error(),
			})
		} else {
			appLogger.Info("Demo users ready", map[string]any{"created": created})
		}
	}

	// Pending request expiry
	sweeper := request.NewExpirySweeper(requestService, requestPolicy)
	sweeper.Start(ctx)

	// Initialize API handlers
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, tp)
	handlers := routes.Handlers{
		Account:      handler.NewAccountHandler(accountService, queryFacade, tokens, appLogger),
		Wallet:       handler.NewWalletHandler(ledgerService, queryFacade, cfg.Request.MinMB, appLogger),
		Request:      handler.NewRequestHandler(requestService, queryFacade, appLogger),
		Notification: handler.NewNotificationHandler(inbox, appLogger),
		Feed:         handler.NewFeedHandler(hub, cfg.Server.AllowedOrigins, appLogger),
		Health:       handler.NewHealthHandler(dbManager),
		MetricsPath:  cfg.Metrics.Path,
	}

	// Initialize Gin router
	router := gin.New()
	var observer middleware.HTTPObserver
	if recorder != nil {
		observer = recorder
		handlers.Metrics = recorder.Handler()
	}
	routes.SetupMiddlewares(router, appLogger, observer, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, handlers, tokens)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for an interrupt signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Websocket handlers return once their subscriptions end
	hub.Shutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	sweeper.Stop()
	appLogger.Info("Waiting for notification delivery...", nil)
	dispatcher.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
	return nil
}
