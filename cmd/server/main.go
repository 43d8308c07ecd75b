package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/config"
	"github.com/GenturixHub/Genturix-sub003/internal/infra"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"
	"github.com/GenturixHub/Genturix-sub003/internal/router"
	"github.com/GenturixHub/Genturix-sub003/internal/service"
	"github.com/GenturixHub/Genturix-sub003/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Breaker in front of the pricing-engine sidecar; billing falls back to
	// the local formula while it is open.
	pricingCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// Async workers: email delivery plus the bounded payment-status poller.
	mailer := infra.NewMailer(cfg)
	pool := worker.NewPool(rdb)
	pool.Register("email", worker.NewEmailWorker(mailer))
	pool.Start(ctx, cfg.WorkerPoolSize)

	gatewayClient := infra.NewGatewayClient(cfg.GatewayURL, cfg.GatewayAPIKey)
	notifSvc := service.NewNotificacionService(repository.NewNotificacionRepository(db))
	pagoSvc := service.NewPagoService(
		repository.NewPagoRepository(db),
		repository.NewUsuarioRepository(db),
		repository.NewCondominioRepository(db),
		gatewayClient,
		notifSvc,
		worker.NewDispatcher(rdb),
		cfg.PDFStoragePath,
		cfg.Domain,
	)
	worker.StartPollCron(ctx, pagoSvc,
		time.Duration(cfg.GatewayPollDelaySec)*time.Second, cfg.GatewayPollAttempts)

	r := router.New(cfg, db, rdb, pricingCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("GENTURIX backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
