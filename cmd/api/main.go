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

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"artspace/artist"
	"artspace/artwork"
	"artspace/auth"
	"artspace/booking"
	"artspace/config"
	"artspace/db"
	"artspace/httpapi"
	"artspace/jobs"
	"artspace/notify"
	"artspace/recovery"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authSvc := auth.NewService(auth.NewRepository(pool), tokens)
	recoverySvc := recovery.NewService(recovery.NewRepository(pool))
	artworkSvc := artwork.NewService(artwork.NewRepository(pool), logger)
	artistSvc := artist.NewService(artist.NewRepository(pool), artworkSvc)

	var notifier booking.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewSender(cfg, logger)
	} else {
		logger.Info("SMTP not configured, booking confirmation emails disabled")
	}
	bookingSvc := booking.NewService(booking.NewRepository(pool), notifier, logger)

	scheduler, err := jobs.NewScheduler(artworkSvc, logger)
	if err != nil {
		logger.Fatalf("Failed to set up job scheduler: %v", err)
	}

	srv := httpapi.NewServer(logger, authSvc, recoverySvc, artworkSvc, artistSvc, bookingSvc)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	scheduler.Start()
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
