package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ddenisova/targbulk/internal/config"
	"github.com/ddenisova/targbulk/internal/service"
	"github.com/ddenisova/targbulk/internal/web"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "targbulk.yml", "path to the YAML config file")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level, keeping info")
	}

	store := service.NewSessionStore(cfg.SessionTTL())

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepCron, func() {
		if n := store.Sweep(); n > 0 {
			logger.WithField("expired", n).Info("swept idle sessions")
		}
	}); err != nil {
		logger.WithError(err).Fatal("invalid sweep schedule")
	}
	sweeper.Start()
	defer sweeper.Stop()

	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: web.NewServer(cfg, logger, store),
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":   cfg.Listen,
			"tenant": cfg.APIBaseURL(),
		}).Info("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
}
