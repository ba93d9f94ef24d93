// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-marketplace/internal/config"
	"rental-marketplace/internal/domain/ports/adapter"
	pg "rental-marketplace/internal/infra/db/postgres"
	"rental-marketplace/internal/infra/logging"
	"rental-marketplace/internal/infra/media"
	"rental-marketplace/internal/infra/metrics"
	"rental-marketplace/internal/infra/payment"
	red "rental-marketplace/internal/infra/redis"
	"rental-marketplace/internal/infra/web"
	"rental-marketplace/internal/infra/worker"
	"rental-marketplace/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		log.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()
	go func() {
		t := time.NewTicker(15 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				st := pool.Stat()
				metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns())
			}
		}
	}()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	otpStore := red.NewOTPStore(redisClient)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	txManager := pg.NewTxManager(pool)
	userRepo := pg.NewUserRepo(pool)
	propertyRepo := pg.NewPropertyRepo(pool)
	paymentRepo := pg.NewPaymentRepo(pool)
	ledgerRepo := pg.NewCreditTransactionRepo(pool)
	supportRepo := pg.NewSupportRepo(pool)
	viewingRepo := pg.NewViewingRepo(pool)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.GatewayConfigured() {
		gateway = payment.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
		log.Info().Msg("payment gateway: razorpay")
	} else {
		gateway = payment.NewLocalGateway()
		log.Warn().Msg("payment gateway: local surrogate (no credentials configured)")
	}
	verifier := payment.NewVerifier(cfg.Payment.Razorpay.KeySecret, cfg.Payment.Razorpay.WebhookSecret)

	// ---- Media ----
	mediaStore, err := media.NewS3Store(ctx, &cfg.Media)
	if err != nil {
		log.Fatal().Err(err).Msg("media store init failed")
	}

	// ---- Notifications ----
	notifyPool := worker.NewPool(cfg.Worker.NotificationWorkers, cfg.Worker.QueueSize, log)
	notifyPool.Start(ctx)
	defer notifyPool.Stop()
	notifier := worker.NewAsyncNotifier(notifyPool, worker.NewLogNotifier(log))

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, otpStore, notifier, rateLimiter, log)
	propertyUC := usecase.NewPropertyUseCase(propertyRepo, mediaStore, log)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, userRepo, ledgerRepo, gateway, verifier, txManager, log)
	creditUC := usecase.NewCreditUseCase(userRepo, propertyRepo, ledgerRepo, txManager, cfg.Credits.FreeRepeatView, log)
	supportUC := usecase.NewSupportUseCase(supportRepo, notifier, log)
	viewingUC := usecase.NewViewingUseCase(viewingRepo, notifier, log)

	// ---- HTTP ----
	authManager := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	server := web.NewServer(cfg.Server, authManager, verifier,
		userUC, propertyUC, paymentUC, creditUC, supportUC, viewingUC, log)

	errc := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigc:
		log.Info().Str("signal", sig.String()).Msg("shutdown requested")
	case err := <-errc:
		log.Error().Err(err).Msg("http server failed")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	log.Info().Msg("bye")
}
