package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-sync/core/config"
	"project-sync/core/loader"
	"project-sync/core/localcache"
	"project-sync/core/logger"
	"project-sync/core/middleware/auth"
	"project-sync/core/middleware/rayid"
	"project-sync/core/middleware/requestlog"
	"project-sync/core/server"
	"project-sync/core/worker"

	"project-sync/feature/cache"
	"project-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "project-sync/docs/swagger"
)

// @title Project Sync API
// @version 1.0
// @description API for caching design project snapshots and reconciling them with the remote document store.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// shutdownTimeout bounds how long open requests may keep the server alive.
const shutdownTimeout = 30 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the project sync server",
	Long:  `Starts the execution host and the HTTP server with all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		snapshots, err := localcache.Open(cfg.Cache)
		if err != nil {
			logg.Fatal("Failed to open local cache", zap.Error(err))
		}
		defer snapshots.Close()

		// The remote store is optional: without it only the cache feature loads
		var syncService *sync.Service
		store, err := openRemoteStore(ctx, cfg, logg)
		if err != nil {
			logg.Warn("Remote store unavailable, sync endpoints disabled",
				zap.String("backend", cfg.Remote.Backend), zap.Error(err))
		}

		// The host outlives the signal context so in-flight requests still
		// get answered while the server shuts down
		host := worker.NewHost(cfg.Worker, logg)
		host.Start(context.Background())
		dispatcher := worker.NewDispatcher(host, logg)

		if store != nil {
			timeout := time.Duration(cfg.Remote.TimeoutSeconds) * time.Second
			syncService = sync.NewService(dispatcher, snapshots, store, timeout, logg)
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          server.ErrorHandler,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(cache.NewFeature(snapshots, logg))
		mgr.Register(sync.NewFeature(syncService))

		// RayID first so every later log line carries it
		app.Use(rayid.New())
		app.Use(recover.New())
		app.Use(requestlog.New(logg))

		// Public documentation
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logg.Warn("Server shutdown timed out", zap.Error(err))
		}

		// Drain queued reconcile requests before the dispatcher goes away
		host.Close()
		<-dispatcher.Done()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
