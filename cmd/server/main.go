// Command clubhouse-server starts the clubhouse HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/acoudray/clubhouse/internal/config"
	"github.com/acoudray/clubhouse/internal/limiter"
	"github.com/acoudray/clubhouse/internal/metrics"
	"github.com/acoudray/clubhouse/internal/migrate"
	"github.com/acoudray/clubhouse/internal/repository/postgres"
	httpserver "github.com/acoudray/clubhouse/internal/server/http"
	"github.com/acoudray/clubhouse/internal/service"
	"github.com/acoudray/clubhouse/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server
// with graceful shutdown on SIGINT/SIGTERM.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Parse()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.RunAddress),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseURI); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURI)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	db := &postgres.DB{Pool: pool}
	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	challengeRepo := postgres.NewChallengeRepo(db)
	accomplishmentRepo := postgres.NewAccomplishmentRepo(db)
	goodiesRepo := postgres.NewGoodiesRepo(db)
	purchaseRepo := postgres.NewPurchaseRepo(db)

	lim := limiter.NewPG(pool, cfg.LoginWindow, cfg.LoginMaxFails, cfg.LoginLock)

	codec, err := token.NewCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		logger.Fatal("token codec", zap.Error(err))
	}

	// Services
	authSvc := service.NewAuthService(userRepo, sessionRepo, codec, lim)
	authzSvc := service.NewAuthzService(userRepo)
	userSvc := service.NewUserService(userRepo)
	challengeSvc := service.NewChallengeService(challengeRepo)
	accomplishmentSvc := service.NewAccomplishmentService(accomplishmentRepo)
	goodiesSvc := service.NewGoodiesService(goodiesRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	app := httpserver.New(httpserver.Deps{
		Auth:            authSvc,
		Authz:           authzSvc,
		Users:           userSvc,
		Challenges:      challengeSvc,
		Accomplishments: accomplishmentSvc,
		Goodies:         goodiesSvc,
		Purchases:       purchaseSvc,
		Recorder:        collector,
		Gatherer:        reg,
		Log:             logger,
	})

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: app.Routes(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.RunAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("terminated with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
