package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-workshop-service/config"
	"github.com/fekuna/omnipos-workshop-service/internal/auth"
	"github.com/fekuna/omnipos-workshop-service/internal/cache"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/events"
	"github.com/fekuna/omnipos-workshop-service/internal/health"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/metrics"

	authH "github.com/fekuna/omnipos-workshop-service/internal/auth/handler"
	authUCPkg "github.com/fekuna/omnipos-workshop-service/internal/auth/usecase"

	invH "github.com/fekuna/omnipos-workshop-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-workshop-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-workshop-service/internal/inventory/usecase"

	matH "github.com/fekuna/omnipos-workshop-service/internal/material/handler"
	matRepoPkg "github.com/fekuna/omnipos-workshop-service/internal/material/repository"
	matUCPkg "github.com/fekuna/omnipos-workshop-service/internal/material/usecase"

	orderH "github.com/fekuna/omnipos-workshop-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-workshop-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-workshop-service/internal/order/usecase"

	schedH "github.com/fekuna/omnipos-workshop-service/internal/schedule/handler"
	schedRepoPkg "github.com/fekuna/omnipos-workshop-service/internal/schedule/repository"
	schedUCPkg "github.com/fekuna/omnipos-workshop-service/internal/schedule/usecase"

	secH "github.com/fekuna/omnipos-workshop-service/internal/section/handler"
	secRepoPkg "github.com/fekuna/omnipos-workshop-service/internal/section/repository"
	secUCPkg "github.com/fekuna/omnipos-workshop-service/internal/section/usecase"

	userH "github.com/fekuna/omnipos-workshop-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-workshop-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-workshop-service/internal/user/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	ctx := context.Background()
	db, err := database.Open(ctx, &database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Could not migrate database", zap.Error(err))
	}
	appLogger.Info("Connected to database", zap.String("driver", db.DriverName()))
	gw := database.NewGateway(db)

	// 4. Optional Redis
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, &cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, material cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}
	defer redisClient.Close()

	// 5. Optional Kafka publisher
	publisher := events.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(&events.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		appLogger.Info("Publishing events to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer publisher.Close()

	verifier, err := auth.NewVerifier(cfg.Auth.Verifier, cfg.Auth.BcryptCost)
	if err != nil {
		appLogger.Fatal("Invalid credential verifier", zap.Error(err))
	}

	// 6. Initialize Repositories
	invRepo := invRepoPkg.NewPGRepository(gw)
	matRepo := matRepoPkg.NewPGRepository(gw)
	orderRepo := orderRepoPkg.NewPGRepository(gw)
	secRepo := secRepoPkg.NewPGRepository(gw)
	userRepo := userRepoPkg.NewPGRepository(gw)
	schedRepo := schedRepoPkg.NewPGRepository(gw)

	// 7. Initialize UseCases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, gw, redisClient, publisher, appLogger)
	matUC := matUCPkg.NewMaterialUseCase(matRepo, invRepo, gw, redisClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, gw, publisher, appLogger)
	secUC := secUCPkg.NewSectionUseCase(secRepo, gw, redisClient, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, gw, verifier, appLogger)
	authUC := authUCPkg.NewAuthUseCase(userRepo, verifier, appLogger)
	schedUC := schedUCPkg.NewScheduleUseCase(schedRepo, userRepo, gw, appLogger)

	// 8. Initialize Handlers
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	handlers := map[string]dispatch.Handler{
		"/api/auth":      authH.NewAuthHandler(authUC, appLogger).Function(),
		"/api/users":     userH.NewUserHandler(userUC, appLogger).Function(),
		"/api/materials": matH.NewMaterialHandler(matUC, invHandler, appLogger).Function(),
		"/api/inventory": invHandler.Function(),
		"/api/sections":  secH.NewSectionHandler(secUC, appLogger).Function(),
		"/api/orders":    orderH.NewOrderHandler(orderUC, appLogger).Function(),
		"/api/schedule":  schedH.NewScheduleHandler(schedUC, appLogger).Function(),
	}
	healthServer := health.NewServer(gw, appLogger)

	// 9. HTTP Router
	metrics.Register()
	router := gin.New()
	router.Use(gin.Recovery(), dispatch.RequestID(), dispatch.AccessLog(appLogger), metrics.Middleware(cfg.Metrics.Namespace))
	for path, h := range handlers {
		router.Any(path, dispatch.Gin(h))
	}
	router.GET("/health", healthServer.GinHandler())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 10. gRPC health server
	lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	health.Register(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
