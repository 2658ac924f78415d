package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/Fahleh/alx-files-manager/internal/storage"
	"github.com/Fahleh/alx-files-manager/internal/workers"
	"github.com/Fahleh/alx-files-manager/pkg/config"
	"github.com/Fahleh/alx-files-manager/pkg/email"
	"github.com/Fahleh/alx-files-manager/pkg/logger"
	"github.com/Fahleh/alx-files-manager/pkg/mongo"
	"github.com/Fahleh/alx-files-manager/pkg/queue"
	"github.com/Fahleh/alx-files-manager/pkg/redis"
)

type workerConfig struct {
	Logger logger.Config
	Mongo  mongo.Config
	Redis  redis.Config
	Email  email.Config
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg workerConfig
	config.MustLoad(&cfg)

	slogger, err := logger.New(cfg.Logger, logger.WithAttr(slog.String("service", "thumbnailer")))
	if err != nil {
		return err
	}

	db, err := mongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	sender, err := email.NewFromConfig(cfg.Email)
	if err != nil {
		return err
	}

	users := storage.NewUsers(db)
	fileRepo := storage.NewFiles(db)
	thumbnailer := workers.NewThumbnailer(fileRepo, slogger)
	welcomer := workers.NewWelcomer(users, sender, slogger)

	worker, err := queue.NewWorker(queue.NewRedisBroker(redisClient), queue.WithLogger(slogger))
	if err != nil {
		return err
	}
	worker.RegisterHandlers(
		queue.NewTaskHandler(thumbnailer.Handle),
		queue.NewTaskHandler(welcomer.Handle),
	)

	if err := worker.Start(ctx); err != nil {
		return err
	}
	slogger.InfoContext(ctx, "worker started")

	<-ctx.Done()
	worker.Stop()
	slogger.Info("worker stopped")
	return nil
}
