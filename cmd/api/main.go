package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/horvathb/wedding-rsvp/internal/http/handlers"
	"github.com/horvathb/wedding-rsvp/internal/platform/mailer"
	airtablerepo "github.com/horvathb/wedding-rsvp/internal/repo/airtable"
	"github.com/horvathb/wedding-rsvp/internal/service"
	"github.com/horvathb/wedding-rsvp/pkg/config"
	"github.com/horvathb/wedding-rsvp/pkg/events"
	"github.com/horvathb/wedding-rsvp/pkg/logger"
	mw "github.com/horvathb/wedding-rsvp/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Airtable.APIKey == "" || cfg.Airtable.BaseID == "" {
		logger.Error("AIRTABLE_API_KEY and AIRTABLE_BASE_ID must be set")
		os.Exit(1)
	}

	// Backing store
	client := airtablerepo.NewClient(cfg.Airtable.APIKey, cfg.Airtable.BaseID,
		airtablerepo.WithBaseURL(cfg.Airtable.BaseURL))
	guestRepo := airtablerepo.NewGuestRepository(client, cfg.Airtable.GuestsTable)
	familyRepo := airtablerepo.NewFamilyRepository(client, cfg.Airtable.FamiliesTable)

	// Confirmation mail, dev mode logs instead of sending
	var mail mailer.Service
	if cfg.Email.DevMode {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Event bus is optional
	var bus events.Publisher
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		bus = natsBus
	} else {
		bus = events.NewNoopPublisher()
	}
	defer bus.Close()

	rsvpService := service.NewRSVPService(guestRepo, familyRepo, mail, bus)
	h := handlers.New(rsvpService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)

	// CORS configuration: the form is served from a separate static host
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(mw.Health)

	r.Mount("/", h.Routes())

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down RSVP service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("RSVP service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting RSVP service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("RSVP service error", "error", err)
		os.Exit(1)
	}
}
