package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flashback-events/rsvp-api/internal/audit"
	"github.com/flashback-events/rsvp-api/internal/config"
	kafkax "github.com/flashback-events/rsvp-api/internal/kafka"
	"github.com/flashback-events/rsvp-api/internal/postgres"
	"github.com/flashback-events/rsvp-api/internal/redisx"
	"github.com/flashback-events/rsvp-api/internal/rsvp"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &audit.Service{
		Store:       &audit.Repo{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-auditor",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AuditGroup, rsvp.TopicLifecycle, cfg.AuditWorkers)

	go func() {
		log.Printf("audit consumer started: group=%s topic=%s workers=%d",
			cfg.AuditGroup, rsvp.TopicLifecycle, cfg.AuditWorkers)
		if err := cons.Start(ctx, svc.HandleLifecycle); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
