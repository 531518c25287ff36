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

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/hub"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type app struct {
	db      *gorm.DB
	remote  *services.RemoteClient
	svc     *services.SyncService
	events  *hub.Hub
	monitor *services.OutboxMonitor
	router  *gin.Engine
}

// newApp wires the local store, the remote client and the HTTP surface. The
// outbox monitor is created but not started.
func newApp(cfg *config.Config, probe services.ConnectivityProbe) (*app, error) {
	db, err := config.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	remote := services.NewRemoteClient(cfg.Remote.BaseURL, cfg.Remote.Timeout)
	session := services.NewFileSessionStore(cfg.Session.File, cfg.Session.Secret)
	events := hub.New()

	svc := services.NewSyncService(db, remote, probe, session)
	svc.FanOutLimit = cfg.Sync.FanOutLimit
	svc.Events = events

	a := &app{db: db, remote: remote, svc: svc, events: events}
	if cfg.Sync.OutboxEnabled {
		svc.Outbox = services.NewOutbox(db, remote, probe, cfg.Sync.OutboxMaxAttempts)
		a.monitor = services.NewOutboxMonitor(svc.Outbox, cfg.Sync.OutboxInterval)
		a.monitor.Events = events
	}

	a.router = router.SetupRouter(&cfg.App, svc, session, events)
	if err := a.router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		utils.ErrorLogger.Printf("Failed to set trusted proxies: %v", err)
	}
	return a, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.App.Debug)

	if cfg.App.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := newApp(cfg, services.NewDNSProbe(cfg.Remote.ProbeHost, cfg.Remote.ProbeTimeout))
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to start: %v", err)
	}
	if a.monitor != nil {
		a.monitor.Start()
	}

	srv := &http.Server{
		Addr:    "127.0.0.1:" + cfg.App.Port,
		Handler: a.router,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on %s (remote %s)", srv.Addr, a.remote.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown failed: %v", err)
	}
	if a.monitor != nil {
		a.monitor.Stop()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Println("Stopped.")
}
