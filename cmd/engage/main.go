package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mylatitude/engage/internal/appointment"
	"github.com/mylatitude/engage/internal/billing"
	"github.com/mylatitude/engage/internal/dashboard"
	"github.com/mylatitude/engage/internal/feedback"
	"github.com/mylatitude/engage/internal/navigation"
	"github.com/mylatitude/engage/internal/notification"
	"github.com/mylatitude/engage/internal/patient"
	"github.com/mylatitude/engage/internal/prevention"
	"github.com/mylatitude/engage/internal/shared/auth"
	"github.com/mylatitude/engage/internal/shared/config"
	"github.com/mylatitude/engage/internal/shared/events"
	"github.com/mylatitude/engage/internal/shared/metrics"
	secmiddleware "github.com/mylatitude/engage/internal/shared/middleware"
	"github.com/mylatitude/engage/internal/triage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Event bus: in-process, no external broker in the demo
	bus := events.NewBus()
	defer bus.Close()

	bus.Subscribe("*", "audit-log", func(ctx context.Context, event events.Event) error {
		log.Printf("event %s id=%s actor=%s", event.Type, event.ID, event.ActorID)
		return nil
	})

	// Stores: process-lifetime, in-memory by design
	patientStore := patient.NewStore()
	appointmentStore := appointment.NewStore(patientStore)
	feedbackStore := feedback.NewStore()

	// Services
	notifier := notification.NewService(notification.NewMockSMSProvider())

	// Handlers
	patientHandler := patient.NewHandler(patientStore, appointmentStore, feedbackStore, bus)
	appointmentHandler := appointment.NewHandler(appointmentStore, patientStore, notifier, cfg.Hospital, bus)
	feedbackHandler := feedback.NewHandler(feedbackStore, bus)
	triageHandler := triage.NewHandler(bus)
	preventionHandler := prevention.NewHandler()
	navigationHandler := navigation.NewHandler(cfg.Hospital)
	billingHandler := billing.NewHandler(appointmentStore, bus)
	dashboardHandler := dashboard.NewHandler(patientStore, appointmentStore, feedbackStore)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(secmiddleware.CORS)
	r.Use(secmiddleware.BodyLimit(1 << 20))
	r.Use(secmiddleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	r.Use(metrics.Middleware)

	// Operational endpoints (unauthenticated)
	r.Get("/health", healthHandler)
	r.Get("/ready", healthHandler)
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler)

	// API routes
	r.Group(func(r chi.Router) {
		// The demo accepts any bearer token; strict validation only in production
		r.Use(auth.Middleware(cfg.Auth, cfg.Server.Env == "production"))

		r.Mount("/patients", patientHandler.Routes())
		r.Mount("/appointments", appointmentHandler.Routes())
		r.Mount("/followup", triageHandler.FollowUpRoutes())
		r.Mount("/triage", triageHandler.SymptomRoutes())
		r.Mount("/prevention", preventionHandler.Routes())
		r.Mount("/feedback", feedbackHandler.Routes())
		r.Mount("/navigation", navigationHandler.Routes())
		r.Mount("/billing", billingHandler.Routes())
		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s (env: %s)", addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hospital API attiva. Vai su /docs per vedere tutti gli endpoint.",
		"service": "patient-engagement",
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
