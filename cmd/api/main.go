package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/seeksy/rate-desk/internal/config"
	"github.com/seeksy/rate-desk/internal/digest"
	"github.com/seeksy/rate-desk/internal/handler"
	"github.com/seeksy/rate-desk/internal/metrics"
	"github.com/seeksy/rate-desk/internal/middleware"
	"github.com/seeksy/rate-desk/internal/repository"
	"github.com/seeksy/rate-desk/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	if cfg.AuthDisabled {
		logger.Warn("Authentication is disabled")
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	m := metrics.New()
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, m)
	h := handler.NewHandler(svc, logger)

	// Weekly digest
	var mailer digest.Mailer
	if cfg.SMTPEnabled() {
		mailer = digest.NewSender(cfg, logger)
	}
	scheduler, err := digest.NewJob(svc, mailer, logger).Schedule(cfg.DigestSchedule)
	if err != nil {
		logger.Fatalf("Failed to schedule digest: %v", err)
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger, m))
	r.Handle("/metrics", m.Handler()).Methods("GET")
	h.Register(r, middleware.AuthMiddleware(cfg))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	<-scheduler.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
}
