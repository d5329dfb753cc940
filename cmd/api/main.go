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

	"twtr.dev/backend/internal/auth"
	"twtr.dev/backend/internal/collections"
	"twtr.dev/backend/internal/config"
	"twtr.dev/backend/internal/httpapi"
	"twtr.dev/backend/internal/obs"
	"twtr.dev/backend/internal/registry"
	"twtr.dev/backend/internal/store"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	st := store.NewRedis(cfg.StoreHost)
	defer st.Close()

	// Registry source: Postgres when a DSN is set, seed lists otherwise.
	var reg *registry.Registry
	if cfg.RegistryDSN != "" {
		db, err := sql.Open("pgx", cfg.RegistryDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		reg, err = registry.LoadPostgres(ctx, db)
		cancel()
		_ = db.Close()
		if err != nil {
			log.Fatalf("load registry: %v", err)
		}
	} else {
		reg, err = registry.FromSeed(cfg.Users, cfg.Passwords, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("seed registry: %v", err)
		}
	}

	authSvc := auth.NewService(reg, st, []byte(cfg.AuthSecret), cfg.AccessTTL, cfg.RefreshTTL)
	dataSvc := collections.NewService(st, cfg.PushEnabled)

	api := httpapi.New(authSvc, dataSvc, httpapi.ReadyProbe{Store: st}, version)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting twtr-backend %s on %s (users=%d push_enabled=%v)",
		version, srv.Addr, reg.Len(), cfg.PushEnabled)

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
	log.Println("Stopped")
}
