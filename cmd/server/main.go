package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipvoid-backend/internal/auth"
	"shipvoid-backend/internal/cache"
	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/database"
	"shipvoid-backend/internal/db"
	"shipvoid-backend/internal/discovery"
	"shipvoid-backend/internal/events"
	"shipvoid-backend/internal/handlers"
	"shipvoid-backend/internal/health"
	httpRouter "shipvoid-backend/internal/http"
	"shipvoid-backend/internal/logging"
	"shipvoid-backend/internal/middleware"
	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/remote"
	"shipvoid-backend/internal/repositories"
	"shipvoid-backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "Path to the YAML config file")
	port := flag.Int("port", 0, "Server port (overrides config)")
	hashPassword := flag.String("hash-password", "", "Print the bcrypt hash of a password for auth.admin_password_hash and exit")
	warm := flag.Bool("warm", true, "Load the extracts in the background at start-up")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashAdminPassword(*hashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Component("Config").Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	log := logging.Component("Server")

	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run history (optional)
	var (
		pool     *pgxpool.Pool
		runStore services.RunStore
		runList  handlers.RunLister
	)
	if cfg.Database.Enabled {
		pool, err = db.Connect(ctx, cfg)
		if err != nil {
			log.Warnf("Run history disabled: %v", err)
		} else {
			defer pool.Close()
			migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			err = database.NewMigrator(pool, database.Migrations()).RunMigrations(migrateCtx)
			cancel()
			if err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
			runRepo := repositories.NewRunRepository(pool)
			runStore, runList = runRepo, runRepo
			log.Info("Run history enabled")
		}
	}

	// Shared result cache (optional - graceful fallback if unavailable)
	if cfg.Redis.Enabled {
		if err := cache.Init(cfg.Redis); err != nil {
			log.Warnf("Redis unavailable: %v (serving from memory only)", err)
		} else {
			defer cache.Close()
		}
	}

	fs := afero.NewOsFs()

	var syncer services.RemoteSyncer
	if cfg.Remote.Enabled {
		store, err := remote.New(ctx, cfg.Remote, fs)
		if err != nil {
			log.Warnf("Remote sync disabled: %v", err)
		} else {
			syncer = store
		}
	}

	hub := events.NewHub()
	go hub.Run()
	defer hub.Close()

	settings := services.NewSourceSettings(cfg)
	loader := services.NewLoadService(settings, discovery.NewFinder(fs), syncer, runStore, cfg.Sources.DownloadDir)
	dashboard := services.NewDashboardService(loader, cfg.Redis.ResultTTL, hub)

	jwtManager := auth.NewJWTManager(cfg)
	if !jwtManager.Enabled() {
		log.Warn("auth.jwt_secret is empty: admin routes are open")
	}

	healthOpts := health.Options{
		LastResult: dashboard.Snapshot.Peek,
		DiskPath:   func() string { return settings.Snapshot().DownloadDir },
	}
	if pool != nil {
		healthOpts.DB = pool
	}
	if cfg.Redis.Enabled {
		healthOpts.Redis = cache.IsHealthy
	}

	router := httpRouter.NewRouter(
		handlers.NewDashboardHandler(dashboard, runList),
		handlers.NewAuthHandler(jwtManager),
		handlers.NewHealthHandler(health.NewHealthChecker(healthOpts)),
		hub.ServeWS,
		middleware.NewAuthMiddleware(jwtManager),
	)
	handler := middleware.NewCORS(cfg)(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if *warm {
		go func() {
			r := dashboard.Current(ctx)
			logResult(r)
		}()
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Shutdown failed: %v", err)
		}
	}()

	src := settings.Snapshot()
	log.Infof("Shipvoid dashboard on http://%s (DC %s, source %s)", cfg.Addr(), src.DC, src.ShipvoidPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func logResult(r *models.LoadResult) {
	log := logging.Component("Server")
	if r.Error != "" {
		log.Warnf("Initial load failed: %s", r.Error)
		return
	}
	log.Infof("Initial load: %d containers from %s", r.Stats.Total, r.Stats.ShipvoidFile)
}
