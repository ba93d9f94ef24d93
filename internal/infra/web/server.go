// File: internal/infra/web/server.go
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"rental-marketplace/internal/config"
	"rental-marketplace/internal/domain/ports/adapter"
	"rental-marketplace/internal/usecase"
)

type Server struct {
	cfg      config.ServerConfig
	auth     *AuthManager
	verifier adapter.SignatureVerifier

	userUC     usecase.UserUseCase
	propertyUC usecase.PropertyUseCase
	paymentUC  usecase.PaymentUseCase
	creditUC   usecase.CreditUseCase
	supportUC  usecase.SupportUseCase
	viewingUC  usecase.ViewingUseCase

	log    *zerolog.Logger
	server *http.Server
}

func NewServer(
	cfg config.ServerConfig,
	auth *AuthManager,
	verifier adapter.SignatureVerifier,
	userUC usecase.UserUseCase,
	propertyUC usecase.PropertyUseCase,
	paymentUC usecase.PaymentUseCase,
	creditUC usecase.CreditUseCase,
	supportUC usecase.SupportUseCase,
	viewingUC usecase.ViewingUseCase,
	log *zerolog.Logger,
) *Server {
	l := log.With().Str("component", "web").Logger()
	return &Server{
		cfg:        cfg,
		auth:       auth,
		verifier:   verifier,
		userUC:     userUC,
		propertyUC: propertyUC,
		paymentUC:  paymentUC,
		creditUC:   creditUC,
		supportUC:  supportUC,
		viewingUC:  viewingUC,
		log:        &l,
	}
}

// Routes builds the full router. Exposed separately from Start so tests can
// drive the handler stack without a listener.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(traceID())
	r.Use(recoverer(s.log))
	r.Use(requestLog(s.log))
	r.Use(timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/forgot-password", s.handleForgotPassword)
			r.Post("/reset-password", s.handleResetPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleProfile)
			r.Put("/me", s.handleUpdateProfile)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", s.handleListProperties)
			r.Get("/{id}", s.handleGetProperty)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateProperty)
				r.Get("/mine", s.handleMyProperties)
				r.Put("/{id}", s.handleUpdateProperty)
				r.Delete("/{id}", s.handleDeleteProperty)
				r.Post("/{id}/images", s.handleUploadImage)
				r.Delete("/{id}/images/{imageID}", s.handleDeleteImage)
				// The credit-gated unlock.
				r.Post("/{id}/contact", s.handleUnlockContact)
				r.With(s.requireAdmin).Patch("/{id}/status", s.handleModerateProperty)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			// The gateway signs the raw body; no auth context exists here.
			r.Post("/webhook", s.handleWebhook)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/orders", s.handleCreateOrder)
				r.Post("/verify", s.handleVerifyPayment)
				r.Get("/history", s.handlePaymentHistory)
			})
		})

		r.Route("/credits", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/balance", s.handleBalance)
		})

		r.Route("/support", func(r chi.Router) {
			r.Post("/", s.handleSubmitTicket)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Get("/", s.handleListTickets)
				r.Patch("/{id}", s.handleUpdateTicket)
			})
		})

		r.Route("/viewings", func(r chi.Router) {
			r.Post("/", s.handleScheduleViewing)
			r.Get("/by-phone", s.handleViewingsByPhone)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Get("/", s.handleListViewings)
				r.Patch("/{id}", s.handleUpdateViewing)
			})
		})
	})

	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	s.log.Info().Int("port", s.cfg.Port).Msg("http server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
