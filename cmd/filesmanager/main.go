package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/Fahleh/alx-files-manager/internal/auth"
	"github.com/Fahleh/alx-files-manager/internal/files"
	"github.com/Fahleh/alx-files-manager/internal/session"
	"github.com/Fahleh/alx-files-manager/internal/storage"
	"github.com/Fahleh/alx-files-manager/modules/api"
	"github.com/Fahleh/alx-files-manager/pkg/config"
	"github.com/Fahleh/alx-files-manager/pkg/httpserver"
	"github.com/Fahleh/alx-files-manager/pkg/logger"
	"github.com/Fahleh/alx-files-manager/pkg/mongo"
	"github.com/Fahleh/alx-files-manager/pkg/queue"
	"github.com/Fahleh/alx-files-manager/pkg/redis"
)

type appConfig struct {
	Logger  logger.Config
	Mongo   mongo.Config
	Redis   redis.Config
	HTTP    httpserver.Config
	Session session.Config
	Files   files.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	config.MustLoad(&cfg)

	slogger, err := logger.New(cfg.Logger, logger.WithAttr(slog.String("service", "filesmanager")))
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

	users := storage.NewUsers(db)
	fileRepo := storage.NewFiles(db)
	sessions := session.New(redisClient, cfg.Session)

	enqueuer, err := queue.NewEnqueuer(queue.NewRedisBroker(redisClient))
	if err != nil {
		return err
	}

	authSvc := auth.New(users, sessions,
		auth.WithLogger(slogger),
		auth.WithEnqueuer(enqueuer),
	)
	filesSvc := files.New(fileRepo, cfg.Files,
		files.WithLogger(slogger),
		files.WithEnqueuer(enqueuer),
	)

	app := api.New(authSvc, filesSvc,
		api.WithLogger(slogger),
		api.WithStats(users, fileRepo),
		api.WithHealthchecks(
			redis.Healthcheck(redisClient),
			mongo.Healthcheck(db.Client()),
		),
	)

	return httpserver.New(cfg.HTTP, slogger).Run(ctx, app.Handler())
}
