package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"casapio.org/internal/auth"
	"casapio.org/internal/config"
	"casapio.org/internal/httpapi"
	"casapio.org/internal/meals"
	"casapio.org/internal/obs"
	"casapio.org/internal/residence"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init()
	obs.InitBuildInfo(version, commit)

	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	tokens, err := auth.NewTokenService(cfg.AuthSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	store := residence.NewPGStore(db)
	resSvc, err := residence.NewService(store)
	if err != nil {
		log.Fatalf("residence service: %v", err)
	}
	mealSvc, err := meals.NewService(meals.NewPGStore(db))
	if err != nil {
		log.Fatalf("meals service: %v", err)
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, tokens, resSvc, mealSvc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting casapio-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
