package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emsapp/employee-records/internal/api"
	"github.com/emsapp/employee-records/internal/core/service"
	"github.com/emsapp/employee-records/internal/core/token"
	"github.com/emsapp/employee-records/internal/infrastructure/db/mongo"
	"github.com/emsapp/employee-records/internal/infrastructure/db/redis"
	"github.com/emsapp/employee-records/internal/infrastructure/queue"
	"github.com/emsapp/employee-records/internal/pkg/config"
	"github.com/emsapp/employee-records/pkg/logger"
)

func main() {
	// A local .env is optional; production relies on the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	userRepo := mongo.NewUserRepository(db)
	employeeRepo := mongo.NewEmployeeRepository(db)
	auditRepo := mongo.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := employeeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("employee index creation failed")
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	notifier := redis.NewNotifier(rdb)
	subscriber := redis.NewSubscriber(rdb, log)
	subscriber.Start(ctx)

	// --- Async audit trail ---
	auditWriter := queue.NewAuditWriter(cfg.AuditWorkers, auditRepo, log)
	auditWriter.Start(ctx)

	// --- Core services ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codec)
	authorizer := service.NewAuthorizer(userRepo, codec)
	employeeService := service.NewEmployeeService(employeeRepo, auditWriter, notifier, log)

	e := api.NewRouter(api.Dependencies{
		DB:              db,
		Redis:           rdb,
		AuthService:     authService,
		Authorizer:      authorizer,
		EmployeeService: employeeService,
		Logger:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("employee records API listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
