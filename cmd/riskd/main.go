package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/FluentFlier/aegis/internal/application/jobs"
	"github.com/FluentFlier/aegis/internal/application/usecase"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/service"
	"github.com/FluentFlier/aegis/internal/infrastructure/config"
	infrakafka "github.com/FluentFlier/aegis/internal/infrastructure/kafka"
	"github.com/FluentFlier/aegis/internal/infrastructure/metrics"
	"github.com/FluentFlier/aegis/internal/infrastructure/persistence/postgres"
	"github.com/FluentFlier/aegis/internal/infrastructure/storage"
	grpcpresentation "github.com/FluentFlier/aegis/internal/presentation/grpc"
	"github.com/FluentFlier/aegis/internal/presentation/rest"
	pkgkafka "github.com/FluentFlier/aegis/pkg/kafka"
	"github.com/FluentFlier/aegis/pkg/observability"
	pgpkg "github.com/FluentFlier/aegis/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	logger.Info("starting risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(ctx)
	}

	// Initialize the Prometheus exporter and the service instruments.
	var (
		recorder       *metrics.Recorder
		metricsHandler http.Handler
	)
	meterProvider, meter, promHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	} else {
		defer meterProvider.Shutdown(ctx)
		metricsHandler = promHandler
		if recorder, err = metrics.NewRecorder(meter); err != nil {
			logger.Warn("failed to register metric instruments", "error", err)
			recorder = nil
		}
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(dbCtx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(dbCtx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database", "database", cfg.Database.Database)

	// Run database migrations.
	migDSN := pgpkg.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
	}.DSN()
	if migErr := pgpkg.RunMigrations(migDSN, "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	versionRepo := postgres.NewVersionRepository(pool)
	assessmentRepo := postgres.NewAssessmentRepository(pool)
	jobRepo := postgres.NewTrainingJobRepository(pool)
	outcomeSource := postgres.NewOutcomeSource(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()

	var eventPublisher port.EventPublisher = infrakafka.NewPublisher(kafkaProducer, cfg.Kafka.EventsTopic, logger)
	var alertSink port.AlertSink = infrakafka.NewAlertSink(kafkaProducer, cfg.Kafka.AlertsTopic, logger)

	artifactStore, err := storage.NewStore(ctx, storage.Config{
		Backend:  cfg.Artifacts.Backend,
		Dir:      cfg.Artifacts.Dir,
		Bucket:   cfg.Artifacts.Bucket,
		Region:   cfg.Artifacts.Region,
		Endpoint: cfg.Artifacts.Endpoint,
		Prefix:   cfg.Artifacts.Prefix,
	})
	if err != nil {
		logger.Error("failed to initialize artifact store", "error", err)
		os.Exit(1)
	}

	// Trainer parameters: env tunables first, optional YAML profile on top.
	trainerCfg := service.DefaultTrainerConfig()
	trainerCfg.ValidationSplit = cfg.Training.ValidationSplit
	trainerCfg.ImportanceThreshold = cfg.Training.ImportanceThreshold
	trainerCfg, err = config.LoadTrainerConfig(cfg.Training.ParamsFile, trainerCfg)
	if err != nil {
		logger.Error("failed to load model parameters", "error", err, "file", cfg.Training.ParamsFile)
		os.Exit(1)
	}

	// Wire domain services.
	termAnalyzer := service.NewTermAnalyzer()
	compositeScorer := service.NewCompositeScorer()
	datasetBuilder := service.NewDatasetBuilder(outcomeSource, cfg.Training.MinSamples, logger)
	weightTrainer := service.NewWeightTrainer(trainerCfg, logger)

	runner := jobs.NewRunner(cfg.Training.Concurrency, logger)
	cache := usecase.NewActiveCache()

	var submitter jobs.Submitter = runner
	if recorder != nil {
		eventPublisher = recorder.Publisher(eventPublisher)
		alertSink = recorder.AlertSink(alertSink)
		submitter = recorder.Submitter(runner)
	}

	// Wire use cases.
	ucs := grpcpresentation.UseCases{
		TrainModel: usecase.NewTrainModel(
			jobRepo, versionRepo, datasetBuilder, weightTrainer,
			artifactStore, eventPublisher, submitter, cfg.Training.AutoApprove, logger,
		),
		GetTrainingJob:       usecase.NewGetTrainingJob(jobRepo),
		GetTrainingReadiness: usecase.NewGetTrainingReadiness(datasetBuilder),
		ApproveVersion:       usecase.NewApproveVersion(versionRepo, eventPublisher, logger),
		ActivateVersion:      usecase.NewActivateVersion(versionRepo, eventPublisher, cache, logger),
		RollbackVersion:      usecase.NewRollbackVersion(versionRepo, eventPublisher, cache, logger),
		GetActiveVersion:     usecase.NewGetActiveVersion(versionRepo, cache, logger),
		ListVersions:         usecase.NewListVersions(versionRepo),
		CompareVersions:      usecase.NewCompareVersions(versionRepo),
		GetWeightEvolution:   usecase.NewGetWeightEvolution(versionRepo),
		ScoreSupplier: usecase.NewScoreSupplier(
			assessmentRepo, versionRepo, compositeScorer,
			alertSink, eventPublisher, cache, logger,
		),
		GetAssessment:   usecase.NewGetAssessment(assessmentRepo),
		ListAssessments: usecase.NewListAssessments(assessmentRepo),
		GetRiskTrend:    usecase.NewGetRiskTrend(assessmentRepo),
		AnalyzeContract: usecase.NewAnalyzeContract(termAnalyzer),
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(ucs, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), cfg.TLS.CertFile, cfg.TLS.KeyFile, logger)

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, pool, metricsHandler, logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down risk-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := runner.Shutdown(shutdownCtx); err != nil {
		logger.Warn("training runner shutdown timed out", "error", err)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("risk-service stopped")
}
