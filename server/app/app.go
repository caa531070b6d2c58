package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/pkg/kafka"
	"github.com/Astemirdum/shareit/pkg/logger"
	"github.com/Astemirdum/shareit/pkg/metrics"
	"github.com/Astemirdum/shareit/pkg/postgres"
	"github.com/Astemirdum/shareit/pkg/server"
	"github.com/Astemirdum/shareit/server/config"
	"github.com/Astemirdum/shareit/server/internal/handler"
	"github.com/Astemirdum/shareit/server/internal/repository"
	"github.com/Astemirdum/shareit/server/internal/service"
	"github.com/Astemirdum/shareit/server/migrations"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "shareit-server")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %w", err)
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %w", err)
	}
	events, err := kafka.NewPublisher(cfg.Kafka, log)
	if err != nil {
		return fmt.Errorf("kafka.NewPublisher %w", err)
	}
	metrics.Register()

	svc := service.NewService(repo, events, log)
	h := handler.New(handler.Services{
		Bookings: svc,
		Users:    svc,
		Items:    svc,
		Requests: svc,
	}, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", cfg.Server.Addr()))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := events.Close(); err != nil {
		log.Warn("events.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
