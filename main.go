package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/chxlky/trello-clone-api/api"
	"github.com/chxlky/trello-clone-api/config"
	"github.com/chxlky/trello-clone-api/database"
	"github.com/chxlky/trello-clone-api/integrations"
	"github.com/chxlky/trello-clone-api/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "debug"
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := logConfig.Build()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load(".")
	if err != nil {
		zap.L().Fatal("Error loading config", zap.Error(err))
	}

	if level > zapcore.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		zap.L().Fatal("Failed to initialise database", zap.Error(err))
	}
	sqlDB, _ := db.DB()

	var redisClient *redis.Client
	var resolver identity.Resolver
	switch cfg.Auth.Strategy {
	case config.StrategyRemote:
		userClient := integrations.NewUserClient(cfg.Auth.Remote.BaseURL, cfg.Auth.Remote.Timeout)
		resolver = identity.NewRemote(userClient)
		if cfg.Auth.Cache.RedisAddr != "" {
			redisClient = redis.NewClient(&redis.Options{Addr: cfg.Auth.Cache.RedisAddr})
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				zap.L().Warn("Identity cache unreachable, continuing without it until it recovers", zap.Error(err))
			}
			resolver = identity.NewCached(resolver, redisClient, cfg.Auth.Cache.TTL)
		}
	default:
		resolver = identity.NewLocal(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Claim)
	}
	zap.L().Info("Identity resolver configured",
		zap.String("strategy", cfg.Auth.Strategy),
		zap.Bool("cache", redisClient != nil),
	)

	jokeClient := integrations.NewJokeClient(cfg.Jokes.BaseURL, cfg.Jokes.Timeout)
	apiHandler := api.NewHandler(db, jokeClient)
	router := api.NewRouter(apiHandler, resolver, logger, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	zap.L().Info("Starting server", zap.String("port", cfg.Server.Port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once

	cleanup := func(reason string) {
		zap.L().Info("Shutdown initiated", zap.String("reason", reason))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		zap.L().Info("Shutting down HTTP server...")
		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("Error shutting down server", zap.Error(err))
		} else {
			zap.L().Info("HTTP server shut down gracefully.")
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				zap.L().Error("Error closing identity cache", zap.Error(err))
			}
		}

		if sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				zap.L().Error("Error closing database", zap.Error(err))
			} else {
				zap.L().Info("Database connection closed.")
			}
		}
		close(done)
	}

	go func() {
		sig := <-sigCh
		once.Do(func() {
			cleanup(sig.String())
		})

		// if a second signal is caught, exit immediately
		go func() {
			<-sigCh
			zap.L().Info("Second interrupt signal received. Exiting immediately.")
			os.Exit(1)
		}()
	}()

	<-done
	zap.L().Info("Exiting...")
}
