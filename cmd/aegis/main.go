package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/aegis-auth/aegis/internal/app"
	"github.com/aegis-auth/aegis/internal/auth"
	"github.com/aegis-auth/aegis/internal/rbac"
	"github.com/aegis-auth/aegis/internal/token"
	"github.com/aegis-auth/aegis/internal/users"
	"github.com/aegis-auth/aegis/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	codec, err := token.NewCodec(cfg.TokenSecret, cfg.TokenKeyID, cfg.TokenTTL)
	if err != nil {
		logger.Error("token codec", slog.Any("error", err))
		os.Exit(1)
	}
	denylist := token.NewDenylist(redisClient)

	rbacRepo := rbac.NewRepository(dbpool)
	rbacService := rbac.NewService(rbacRepo)
	resolver := rbac.NewStoreResolver(rbacRepo)

	authRepo := auth.NewRepository(dbpool)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	authService := auth.NewService(authRepo, hasher, resolver, rbacService, codec, denylist, logger)

	userRepo := users.NewRepository(dbpool)
	userService := users.NewService(userRepo, rbacService)

	router := app.NewRouter(app.RouterParams{
		Logger:      logger,
		Config:      cfg,
		Codec:       codec,
		Denylist:    denylist,
		AuthHandler: auth.NewHandler(logger, authService),
		RBACHandler: rbac.NewHandler(logger, rbacService),
		UserHandler: users.NewHandler(logger, userService),
		Guard:       rbac.Guard{Logger: logger},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Purger:    authRepo,
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		if err := worker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("stopped")
}
