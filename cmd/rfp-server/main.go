// cmd/rfp-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rfp-dashboard/internal/common/aws"
	"rfp-dashboard/internal/common/config"
	"rfp-dashboard/internal/common/database"
	"rfp-dashboard/internal/common/dynamics"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/observability"
	"rfp-dashboard/internal/server"
	"rfp-dashboard/internal/store"

	assistant "rfp-dashboard/internal/services/ai/rfp-assistant"
	dynamicssync "rfp-dashboard/internal/services/crm/dynamics-sync"
	rfpmanagement "rfp-dashboard/internal/services/rfp/rfp-management"
	"rfp-dashboard/internal/services/storage/uploads"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting RFP dashboard server...", zap.String("environment", cfg.App.Environment))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.Postgres
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.OpenPostgres(ctx, cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if err := pg.InitSchema(ctx, false); err != nil {
		zapLog.Fatal("schema init failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redis *database.Redis
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.OpenRedis(ctx, cfg.Database.Redis)
		return err
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	healthChecks := map[string]server.HealthCheck{
		"postgres": pg.Ping,
		"redis":    redis.Ping,
	}

	// --- Optional Elasticsearch ---
	var kbIndex rfpmanagement.KnowledgeIndex
	if cfg.Database.Elasticsearch.Enabled() {
		es, err := database.OpenElasticsearch(ctx, cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, knowledge base search falls back to postgres", zap.Error(err))
		} else {
			kbIndex = rfpmanagement.NewElasticIndex(es.Client, es.Index)
			healthChecks["elasticsearch"] = es.Ping
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Optional AWS services ---
	var (
		objectStore uploads.ObjectStore
		mailer      rfpmanagement.Mailer
		publisher   dynamicssync.EventPublisher
	)
	awsCfg := cfg.Integrations.AWS
	if awsCfg.S3.Enabled || awsCfg.SES.Enabled || awsCfg.SNS.Enabled {
		sdkCfg, err := aws.LoadConfig(ctx, awsCfg.Region)
		if err != nil {
			zapLog.Fatal("aws config load failed", zap.Error(err))
		}
		if awsCfg.S3.Enabled {
			objectStore = aws.NewS3Client(sdkCfg, awsCfg.S3.Bucket, awsCfg.S3.PublicBaseURL)
		}
		if awsCfg.SES.Enabled {
			mailer = aws.NewSESClient(sdkCfg, awsCfg.SES.FromEmail)
		}
		if awsCfg.SNS.Enabled {
			publisher = aws.NewSNSClient(sdkCfg, awsCfg.SNS.TopicARN)
		}
		zapLog.Info("AWS clients initialized",
			zap.Bool("s3", awsCfg.S3.Enabled),
			zap.Bool("ses", awsCfg.SES.Enabled),
			zap.Bool("sns", awsCfg.SNS.Enabled),
		)
	}

	repo := store.New(pg.DB)
	maxBody := int64(cfg.Server.MaxBodyBytes)
	var services []server.RouteRegistrar

	// --- Dynamics 365 sync ---
	if config.IsServiceEnabled(cfg, "dynamics365") {
		crm := dynamics.NewFromApp(cfg.Integrations.Dynamics365, log)
		syncCfg := dynamicssync.DefaultConfig()
		syncSvc := dynamicssync.NewService(dynamicssync.ServiceDependencies{
			RFPs:      repo,
			CRM:       crm,
			Ledger:    dynamicssync.NewRedisLedger(redis.Client, syncCfg.LedgerPrefix, syncCfg.LedgerTTL),
			Publisher: publisher,
			Logger:    log,
		}, syncCfg)
		h, err := dynamicssync.NewHandler(dynamicssync.HandlerOptions{
			Config: syncCfg, Service: syncSvc, Logger: log, MaxBodyBytes: maxBody,
		})
		if err != nil {
			zapLog.Fatal("dynamics365 handler init failed", zap.Error(err))
		}
		services = append(services, h)
		zapLog.Info("Dynamics 365 sync registered", zap.Bool("crmEnabled", crm.IsEnabled()))
	}

	// --- RFP management ---
	mgmtCfg := rfpmanagement.DefaultConfig()
	mgmtCfg.DashboardURL = cfg.App.PublicURL
	mgmtSvc := rfpmanagement.NewService(rfpmanagement.ServiceDependencies{
		Repo:   repo,
		Index:  kbIndex,
		Mailer: mailer,
		Logger: log,
	}, mgmtCfg)
	mgmtHandler, err := rfpmanagement.NewHandler(rfpmanagement.HandlerOptions{Service: mgmtSvc, Logger: log, MaxBodyBytes: maxBody})
	if err != nil {
		zapLog.Fatal("rfp-management handler init failed", zap.Error(err))
	}
	services = append(services, mgmtHandler)

	// --- AI assistant ---
	if config.IsServiceEnabled(cfg, "ai") {
		llmCfg := assistant.DefaultConfig()
		llmCfg.BaseURL = cfg.APIs.LLM.BaseURL
		llmCfg.APIKey = cfg.APIs.LLM.APIKey
		llmCfg.Model = cfg.APIs.LLM.Model
		llmCfg.Timeout = config.GetDuration(cfg.APIs.LLM.Timeout)
		if err := llmCfg.Validate(); err != nil {
			zapLog.Fatal("invalid llm config", zap.Error(err))
		}
		aiSvc := assistant.NewService(assistant.ServiceDependencies{
			LLM:    assistant.NewLLMClient(llmCfg, nil, log),
			Repo:   repo,
			Logger: log,
		})
		h, err := assistant.NewHandler(assistant.HandlerOptions{Service: aiSvc, Logger: log, MaxBodyBytes: maxBody})
		if err != nil {
			zapLog.Fatal("ai handler init failed", zap.Error(err))
		}
		services = append(services, h)
		zapLog.Info("AI assistant registered", zap.Bool("llmConfigured", llmCfg.IsConfigured()))
	}

	// --- Uploads ---
	if config.IsServiceEnabled(cfg, "uploads") {
		uploadCfg := uploads.DefaultConfig()
		uploadCfg.UploadTimeout = config.GetDuration(config.GetServiceConfig(cfg, "uploads").Timeout)
		uploadSvc := uploads.NewService(uploads.ServiceDependencies{
			Storage: objectStore,
			Repo:    repo,
			Logger:  log,
		}, uploadCfg)
		h, err := uploads.NewHandler(uploads.HandlerOptions{Service: uploadSvc, Logger: log, MaxBodyBytes: maxBody})
		if err != nil {
			zapLog.Fatal("uploads handler init failed", zap.Error(err))
		}
		services = append(services, h)
	}

	router := server.NewRouter(server.RouterOptions{
		Logger:        log,
		Observability: obs,
		HealthChecks:  healthChecks,
		Services:      services,
	})

	srv := server.New(router, cfg.Server, log)
	if err := srv.Run(ctx); err != nil {
		zapLog.Error("server stopped with error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("observability shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server exited")
}
