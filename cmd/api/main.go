package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flashback-events/rsvp-api/internal/config"
	"github.com/flashback-events/rsvp-api/internal/httpx"
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
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, rsvp.TopicLifecycle, 1024)
	prod.Start(ctx)

	// Repos & handler
	repo := &rsvp.Repo{DB: db, MaxCount: cfg.DishMaxCount}
	ledger := &rsvp.Ledger{DB: db, MaxCount: cfg.DishMaxCount}
	if err := ledger.Seed(ctx, cfg.DishCatalog); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	router := httpx.NewRouter()
	rh := &httpx.RSVPHandler{
		Store:    repo,
		Board:    ledger,
		Producer: prod,
		Redis:    rdb,
		Catalog:  cfg.DishCatalog,
		Service:  cfg.ServiceName,
	}
	rh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()
	prod.WaitClosed()
}
