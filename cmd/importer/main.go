package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"skillsync/internal/config"
	dbpostgres "skillsync/internal/database/postgres"
	"skillsync/internal/importer"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/infrastructure/events"
	"skillsync/internal/infrastructure/queue"
	"skillsync/internal/repository"
	"skillsync/internal/usecase"
)

func main() {
	targetsPath := flag.String("targets", "import_targets.yaml", "YAML file listing careers pages")
	workers := flag.Int("workers", 4, "concurrent detail page fetches")
	timeout := flag.Duration("timeout", 15*time.Minute, "overall import deadline")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	targets, err := importer.LoadTargets(*targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}
	if len(targets) == 0 {
		log.Printf("no targets in %s", *targetsPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName+"-importer")
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() { _ = db.Close() }()

	redis := cache.NewRedis(cfg.Redis, logger)
	defer func() { _ = redis.Close() }()

	var sinks []usecase.EventPublisher
	broker, err := queue.NewPublisher(cfg.AMQP, logger)
	if err != nil {
		logger.Printf("amqp=connect status=degraded err=%v", err)
	} else if broker != nil {
		defer func() { _ = broker.Close() }()
		sinks = append(sinks, broker)
	}

	im := importer.New(
		repository.NewPostgresJobRepository(db),
		repository.NewPostgresSkillRepository(db),
		redis,
		events.NewFanout(sinks...),
		importer.NewWebFetcher(),
		*workers,
		logger,
	)

	sum, err := im.Run(ctx, targets)
	logger.Printf("pipeline=careers_import status=finished targets=%d found=%d inserted=%d updated=%d failed=%d",
		sum.Targets, sum.Found, sum.Inserted, sum.Updated, sum.Failed)
	if err != nil {
		log.Fatalf("import finished with errors: %v", err)
	}
}
