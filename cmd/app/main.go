package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/config"
	"github.com/chris/polyfunds-ledger/pkg/events"
	"github.com/chris/polyfunds-ledger/pkg/handlers"
	wshandlers "github.com/chris/polyfunds-ledger/pkg/handlers/websockets"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	appmiddleware "github.com/chris/polyfunds-ledger/pkg/middleware"
	"github.com/chris/polyfunds-ledger/pkg/rabbitmq"
	"github.com/chris/polyfunds-ledger/pkg/scheduler"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	dydbstore "github.com/chris/polyfunds-ledger/pkg/storage/dynamodb"
	"github.com/chris/polyfunds-ledger/pkg/storage/memory"
	"github.com/chris/polyfunds-ledger/pkg/websockets"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.Require("ADMIN_ADDRESS", "JWT_SECRET"); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	var (
		store     storage.Storage
		payouts   scheduler.Scheduler = scheduler.NoOpScheduler{}
		publisher events.Multi
		hub       *websockets.Hub
	)

	needsAWS := cfg.StorageDriver == config.StorageDynamoDB || cfg.SQSQueueURL != "" || cfg.WebSocketAPIEndpoint != ""
	if needsAWS {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		if cfg.StorageDriver == config.StorageDynamoDB {
			store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.JournalTable, cfg.LedgerTable, cfg.WalletsTable, cfg.ConnectionsTable)
		}
		if cfg.SQSQueueURL != "" {
			payouts = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
		}
	}
	if store == nil {
		store = memory.New()
		logger.Warn("using in-memory storage, ledger state is lost on restart")
	}
	if cfg.SQSQueueURL == "" {
		logger.Warn("SQS_QUEUE_URL not set, payouts are settled by the reconcile job")
	}

	if cfg.RabbitMQURL != "" {
		producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			logger.Warn("rabbitmq producer unavailable, using fallback", "error", err)
			publisher = append(publisher, rabbitmq.EventProducerFallback{Logger: logger})
		} else {
			defer producer.Close()
			publisher = append(publisher, producer)
		}
	} else {
		publisher = append(publisher, rabbitmq.EventProducerFallback{Logger: logger})
	}

	if cfg.WebSocketAPIEndpoint != "" {
		client, err := websockets.NewAPIGatewayClient(ctx, cfg.WebSocketAPIEndpoint)
		if err != nil {
			log.Fatalf("unable to create API Gateway client, %v", err)
		}
		wsPublisher := websockets.NewPublisher(store, store, client, logger)
		publisher = append(publisher, websockets.EventForwarder{Publisher: wsPublisher})
	} else {
		hub = websockets.NewHub(logger)
		publisher = append(publisher, websockets.EventForwarder{Publisher: hub})
	}

	ledgerCfg, err := cfg.LedgerConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	engine, err := ledger.New(ledgerCfg, store,
		ledger.WithPublisher(publisher),
		ledger.WithPayoutScheduler(payouts),
		ledger.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("failed to create ledger engine: %v", err)
	}
	if err := engine.Restore(ctx); err != nil {
		log.Fatalf("failed to restore ledger from journal: %v", err)
	}
	logger.Info("ledger restored", "seq", engine.Seq())

	seeded, err := engine.SeedFeeRecipient(ctx, cfg.FeeRecipient())
	if err != nil {
		log.Fatalf("failed to set initial fee recipient: %v", err)
	}
	if seeded {
		logger.Info("initial fee recipient journaled", "recipient", cfg.FeeRecipient().Hex())
	} else if r := cfg.FeeRecipient(); r != (common.Address{}) && r != engine.FeeRecipient(ctx) {
		logger.Warn("FEE_RECIPIENT_ADDRESS ignored, journal already records the fee recipient",
			"configured", r.Hex(), "recipient", engine.FeeRecipient(ctx).Hex())
	}

	var limiter appmiddleware.Limiter
	if cfg.RedisURL != "" && cfg.RateLimitPerMinute > 0 {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis url parse failed, rate limiting disabled", "error", err)
		} else {
			redisClient := redis.NewClient(opts)
			defer redisClient.Close()
			limiter = appmiddleware.NewRedisLimiter(redisClient, "polyfunds:rate_limit", time.Minute)
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))
	router.Use(appmiddleware.NewAuthenticator([]byte(cfg.JWTSecret)))
	router.Use(appmiddleware.NewStructuredLogger(logger))
	router.Use(appmiddleware.NewRateLimiter(limiter, cfg.RateLimitPerMinute, logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if hub != nil {
		router.Handle("/ws", wshandlers.NewHandler(store, hub, logger))
	}

	handler := handlers.NewApiHandler(engine, store, engine.Admin())
	api.HandlerFromMux(handler, router)

	jobs := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)))))
	if _, err := jobs.AddFunc(cfg.ReconcileSchedule, func() {
		reconcile(context.Background(), engine, store, cfg.SQSQueueURL == "", logger)
	}); err != nil {
		log.Fatalf("invalid RECONCILE_SCHEDULE %q: %v", cfg.ReconcileSchedule, err)
	}
	jobs.Start()

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.HTTPPort, "storage", cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown started")

	<-jobs.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("shutdown complete")
}

// reconcile logs platform stats and invariant violations. Without a payout
// queue it also settles pending payouts in process.
func reconcile(ctx context.Context, engine *ledger.Engine, store storage.SettlementStore, settle bool, logger *slog.Logger) {
	stats, err := engine.PlatformStats(ctx)
	if err != nil {
		logger.Error("failed to read platform stats", "error", err)
		return
	}
	logger.Info("platform stats",
		"businesses", stats.TotalBusinessesCount,
		"investment_volume", stats.TotalInvestmentVolumeAmount.Dec(),
		"dividends_paid", stats.TotalDividendsPaidAmount.Dec(),
		"contract_balance", stats.ContractBalance.Dec(),
		"total_savings", stats.TotalSavingsAmount.Dec(),
		"investors", stats.TotalInvestors,
	)

	for _, violation := range engine.CheckInvariants(ctx) {
		logger.Error("CRITICAL: ledger invariant violated", "violation", violation)
	}

	if !settle {
		return
	}
	pending, err := store.GetStalePayouts(ctx, 0)
	if err != nil {
		logger.Error("failed to list pending payouts", "error", err)
		return
	}
	for _, entry := range pending {
		if _, err := store.SettlePayout(ctx, entry.EntryID); err != nil {
			logger.Error("failed to settle payout", "entry_id", entry.EntryID, "error", err)
		}
	}
}
