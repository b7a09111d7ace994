package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vaughan-dsouza/userfront/internal/config"
	"github.com/vaughan-dsouza/userfront/internal/db"
	"github.com/vaughan-dsouza/userfront/internal/handlers"
	"github.com/vaughan-dsouza/userfront/internal/logger"
	"github.com/vaughan-dsouza/userfront/internal/store"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	if !dotenv {
		l.Info().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("db connect")
	}
	defer dbConn.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, dbConn); err != nil {
			l.Fatal().Err(err).Msg("db migrate")
		}
	}

	issuer := utils.NewTokenIssuer(cfg.PrivateKey, cfg.TokenIssuer, cfg.AccessTTL)
	h := handlers.NewHandler(store.NewPostgresStore(dbConn, cfg.AdminRole), issuer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h, issuer, l),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	l.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Fatal().Err(err).Msg("server forced to shutdown")
	}

	l.Info().Msg("server exited")
}
