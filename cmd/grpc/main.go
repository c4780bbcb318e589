package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	posv1 "github.com/fekuna/omnipos-pos-service/api/pos/v1"
	"github.com/fekuna/omnipos-pos-service/config"
	"github.com/fekuna/omnipos-pos-service/migrations"
	"github.com/fekuna/omnipos-pos-service/pkg/broker"
	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/metrics"
	"github.com/fekuna/omnipos-pos-service/pkg/middleware"
	"github.com/fekuna/omnipos-pos-service/pkg/observability"
	"github.com/fekuna/omnipos-pos-service/pkg/search"

	catH "github.com/fekuna/omnipos-pos-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-pos-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-pos-service/internal/category/usecase"

	dealH "github.com/fekuna/omnipos-pos-service/internal/deal/handler"
	dealRepoPkg "github.com/fekuna/omnipos-pos-service/internal/deal/repository"
	dealUCPkg "github.com/fekuna/omnipos-pos-service/internal/deal/usecase"

	ingH "github.com/fekuna/omnipos-pos-service/internal/ingredient/handler"
	ingRepoPkg "github.com/fekuna/omnipos-pos-service/internal/ingredient/repository"
	ingUCPkg "github.com/fekuna/omnipos-pos-service/internal/ingredient/usecase"

	invH "github.com/fekuna/omnipos-pos-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-pos-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-pos-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-pos-service/internal/inventory/usecase"

	ordH "github.com/fekuna/omnipos-pos-service/internal/order/handler"
	ordRepoPkg "github.com/fekuna/omnipos-pos-service/internal/order/repository"
	ordUCPkg "github.com/fekuna/omnipos-pos-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-pos-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-pos-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-pos-service/internal/product/usecase"

	repH "github.com/fekuna/omnipos-pos-service/internal/report/handler"
	repRepoPkg "github.com/fekuna/omnipos-pos-service/internal/report/repository"
	repUCPkg "github.com/fekuna/omnipos-pos-service/internal/report/usecase"

	tblH "github.com/fekuna/omnipos-pos-service/internal/table/handler"
	tblRepoPkg "github.com/fekuna/omnipos-pos-service/internal/table/repository"
	tblUCPkg "github.com/fekuna/omnipos-pos-service/internal/table/usecase"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// catalogServer serves the whole CatalogService from the per-domain handlers.
type catalogServer struct {
	*catH.CategoryHandler
	*ingH.IngredientHandler
	*prodH.ProductHandler
	*dealH.DealHandler
}

var _ posv1.CatalogServiceServer = (*catalogServer)(nil)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Tracing and log export
	otelShutdown := func(context.Context) error { return nil }
	otelScope := ""
	if cfg.Otel.Enabled {
		shutdown, err := observability.Setup(ctx, &observability.Config{
			ServiceName:    config.ServiceName,
			ServiceVersion: config.ServiceVersion,
			Endpoint:       cfg.Otel.Endpoint,
			AuthHeader:     cfg.Otel.AuthHeader,
		})
		if err != nil {
			log.Printf("otel disabled: %v", err)
		} else {
			otelShutdown = shutdown
			otelScope = config.ServiceName
		}
	}

	// 3. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		OTelScope:         otelScope,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 4. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		ConnectRetries:  cfg.Postgres.ConnectRetries,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.RunMigrations {
		applied, err := postgres.Migrate(ctx, db, migrations.FS)
		if err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
		appLogger.Info("Migrations applied", zap.Strings("files", applied))
	}
	txManager := postgres.NewTxManager(db, nil)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Order event publisher
	var publisher broker.Publisher
	switch cfg.Broker.Driver {
	case config.BrokerKafka:
		publisher = broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrdersTopic,
		})
		appLogger.Info("Publishing order events to Kafka", zap.String("topic", cfg.Kafka.OrdersTopic))
	case config.BrokerRabbitMQ:
		publisher, err = broker.NewRabbitPublisher(&broker.RabbitConfig{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to RabbitMQ", zap.Error(err))
		}
		appLogger.Info("Publishing order events to RabbitMQ", zap.String("exchange", cfg.RabbitMQ.Exchange))
	default:
		publisher = broker.NewNopPublisher()
	}
	defer publisher.Close()

	// 7. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, product search uses the database", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	metricsServer := &http.Server{
		Addr:              normalizePort(cfg.Server.MetricsPort),
		Handler:           metrics.Handler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	// 9. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	ingRepo := ingRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	dealRepo := dealRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	tblRepo := tblRepoPkg.NewPGRepository(db)
	ordRepo := ordRepoPkg.NewPGRepository(db)
	repRepo := repRepoPkg.NewPGRepository(db)

	// 10. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	ingUC := ingUCPkg.NewIngredientUseCase(ingRepo, txManager, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, txManager, redisClient, esClient, appLogger)
	dealUC := dealUCPkg.NewDealUseCase(dealRepo, txManager, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, txManager, redisClient, appMetrics, appLogger)
	tblUC := tblUCPkg.NewTableUseCase(tblRepo, appLogger)
	ordUC := ordUCPkg.NewOrderUseCase(ordUCPkg.Dependencies{
		Repo:        ordRepo,
		Tx:          txManager,
		Products:    prodUC,
		Deals:       dealUC,
		Stock:       invUC,
		Tables:      tblUC,
		Publisher:   publisher,
		Metrics:     appMetrics,
		Logger:      appLogger,
		DefaultDays: cfg.Orders.DefaultDays,
	})
	repUC := repUCPkg.NewReportUseCase(repRepo, redisClient, cfg.Orders.ReportCacheTTL, cfg.Orders.DefaultDays, appLogger)

	// 11. Stock receipts listener
	if cfg.Broker.Driver == config.BrokerKafka {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.StockReceiptsTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.StockReceiptsTopic))

		invListener := invListenerPkg.NewStockListener(kafkaConsumer, invUC, appLogger)
		go invListener.Start(ctx)
	}

	// 12. Initialize Handlers
	catalog := &catalogServer{
		CategoryHandler:   catH.NewCategoryHandler(catUC, appLogger),
		IngredientHandler: ingH.NewIngredientHandler(ingUC, appLogger),
		ProductHandler:    prodH.NewProductHandler(prodUC, appLogger),
		DealHandler:       dealH.NewDealHandler(dealUC, appLogger),
	}
	ordHandler := ordH.NewOrderHandler(ordUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	tblHandler := tblH.NewTableHandler(tblUC, appLogger)
	repHandler := repH.NewReportHandler(repUC, appLogger)

	// 13. Start gRPC Server
	port := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(appLogger),
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(appLogger, appMetrics),
			middleware.ErrorInterceptor(),
		),
	)

	posv1.RegisterOrderServiceServer(grpcServer, ordHandler)
	posv1.RegisterReportServiceServer(grpcServer, repHandler)
	posv1.RegisterInventoryServiceServer(grpcServer, invHandler)
	posv1.RegisterTableServiceServer(grpcServer, tblHandler)
	posv1.RegisterCatalogServiceServer(grpcServer, catalog)

	appLogger.Info("Starting gRPC server", zap.String("port", port), zap.String("broker", cfg.Broker.Driver))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("metrics server shutdown", zap.Error(err))
	}
	if err := otelShutdown(shutdownCtx); err != nil {
		appLogger.Warn("otel shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
