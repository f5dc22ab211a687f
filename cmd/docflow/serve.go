package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docflow-io/docflow/internal/config"
	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/events"
	"github.com/docflow-io/docflow/internal/modules"
	"github.com/docflow-io/docflow/internal/permission"
	"github.com/docflow-io/docflow/internal/store"
	"github.com/docflow-io/docflow/internal/web/api"
	"github.com/docflow-io/docflow/internal/web/middleware"
	"github.com/docflow-io/docflow/internal/web/ratelimit"
	"github.com/docflow-io/docflow/internal/web/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Registers the built-in document types, runs migrations, and serves
the generated REST API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}

		log, err := newLogger(cfg.Log.Level)
		if err != nil {
			return err
		}
		defer log.Sync()

		registry := doctype.NewRegistry()
		if err := modules.RegisterAll(registry); err != nil {
			return err
		}

		db, dialect, err := openDatabase(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		bus := events.NewBus()
		st := store.New(db, dialect, registry,
			store.WithEventBus(bus),
			store.WithLogger(log))
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		var limiter ratelimit.Limiter
		if cfg.Redis.Addr != "" {
			client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
			limiter, err = ratelimit.NewRedisLimiter(client,
				cfg.Redis.RateLimit,
				time.Duration(cfg.Redis.RateWindows)*time.Second)
			if err != nil {
				return err
			}
		}

		cors := middleware.DefaultCORSConfig()
		handler, err := api.NewRouter(api.Config{
			Registry: registry,
			Store:    st,
			Perms:    permission.NewEvaluator(),
			Bus:      bus,
			Log:      log,
			Auth:     middleware.AuthConfig{Secret: cfg.Auth.JWTSecret},
			Limiter:  limiter,
			CORS:     &cors,
		})
		if err != nil {
			return err
		}

		serverCfg := server.DefaultConfig(handler)
		serverCfg.Address = cfg.Address()
		srv, err := server.New(serverCfg)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		log.Info("server started",
			zap.String("address", cfg.Address()),
			zap.Int("doctypes", registry.Count()))

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			log.Info("shutting down", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
