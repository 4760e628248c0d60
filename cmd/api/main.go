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
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/audit"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/config"
	dbpkg "github.com/BruksfildServices01/vehicle-maintenance/internal/db"
	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/handlers"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/vehicle-maintenance/internal/infra/repository"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/logger"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/routes"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/telemetry"
	ucAccount "github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/appointment"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "maintenance-api",
		Short: "Vehicle maintenance scheduling API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads config and opens the logger and the database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply schema migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := dbpkg.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			register := ucAccount.NewRegister(infraRepo.NewUserGormRepository(db), nil)
			user, err := register.Execute(cmd.Context(), ucAccount.RegisterInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     domain.RoleAdmin,
			})
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			fmt.Printf("Admin %s created with id %d.\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Administrator", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&password, "password", "", "Login password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runServer(migrate bool) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if migrate {
		if err := dbpkg.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	checks := map[string]handlers.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var (
		rdb          *redis.Client
		availability ucAppointment.Cache
	)
	if cfg.RedisURL != "" {
		rdb, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, running without cache and rate limit", zap.Error(err))
			rdb = nil
		} else {
			redisCache := cache.NewAvailabilityRedisCache(rdb, cfg.AvailabilityCacheTTL, log)
			availability = redisCache
			checks["redis"] = redisCache.Ping
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          log,
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Users:        infraRepo.NewUserGormRepository(db),
		AuditLogs:    auditLogger,
		Audit:        auditDispatcher,
		Cache:        availability,
		Redis:        rdb,
		Checks:       checks,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, telemetry.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	auditDispatcher.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
	return nil
}
