package entrypoint

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
	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	dbaudit "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/bookinstances"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	http_controllers "github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/logger"
	"github.com/mrlokans/locallibrary/internal/scheduler"
	"github.com/mrlokans/locallibrary/internal/security"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewCatalog wires the repositories and the audit trail into a catalog service.
func NewCatalog(db *database.Database) (*catalog.Service, *audit.Service) {
	auditService := audit.NewService(dbaudit.NewRepository(db.DB))
	svc := catalog.NewService(catalog.Stores{
		Authors:       authors.NewRepository(db.DB),
		Genres:        genres.NewRepository(db.DB),
		Books:         books.NewRepository(db.DB),
		BookInstances: bookinstances.NewRepository(db.DB),
	}, auditService)
	return svc, auditService
}

// NewSessions stores sessions in the SQLite database, or in memory when the
// catalog runs on another driver.
func NewSessions(db *database.Database, cfg config.Session) (*security.SessionManager, error) {
	opts := security.SessionOptions{
		Lifetime:      cfg.Lifetime,
		SecureCookies: cfg.SecureCookies,
	}
	if db.Driver() != config.DriverSQLite {
		return security.NewMemorySessionManager(opts), nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	return security.NewSessionManager(sqlDB, opts)
}

// CSRFSecret returns the configured session secret, generating one if unset.
func CSRFSecret(cfg config.Session) ([]byte, error) {
	secret := cfg.Secret
	if secret == "" {
		generated, err := security.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
		}
		log.Warn().Msg("Generated session secret (set SESSION_SECRET to persist)")
		secret = generated
	}
	return security.DeriveKey(secret, "csrf")
}

// MaintenanceJobs are the periodic tasks, scheduled from configuration.
func MaintenanceJobs(cfg *config.Config) []scheduler.Job {
	retentionDays := cfg.Audit.RetentionDays
	return []scheduler.Job{
		{
			Name:     tasks.QueueMarkOverdue,
			Schedule: cfg.Tasks.OverdueSchedule,
			Task:     func() backlite.Task { return tasks.MarkOverdueCopiesTask{} },
		},
		{
			Name:     tasks.QueueCleanupAudit,
			Schedule: cfg.Tasks.AuditCleanupSchedule,
			Task:     func() backlite.Task { return tasks.CleanupAuditEventsTask{RetentionDays: retentionDays} },
		},
	}
}

// Background is the running task queue together with its scheduler.
type Background struct {
	Client    *tasks.Client
	Scheduler *scheduler.MaintenanceScheduler
	cancel    context.CancelFunc
}

// StartBackground opens the task queue, registers the maintenance queues and
// starts the workers and the cron scheduler.
func StartBackground(cfg *config.Config, svc *catalog.Service, auditService *audit.Service) (*Background, error) {
	client, err := tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task queue: %w", err)
	}

	err = client.RegisterMaintenance(tasks.Maintenance{
		Overdue:  svc,
		Recorder: auditService,
		Events:   auditService,
	})
	if err != nil {
		client.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched := scheduler.NewMaintenanceScheduler(client, MaintenanceJobs(cfg)...)
	if err := sched.Start(ctx); err != nil {
		cancel()
		client.Close()
		return nil, err
	}

	go client.Start(ctx)

	return &Background{Client: client, Scheduler: sched, cancel: cancel}, nil
}

// Stop halts the scheduler, drains the workers and releases the queue database.
func (b *Background) Stop(ctx context.Context) {
	b.Scheduler.Stop()
	b.Client.Stop(ctx)
	b.cancel()
	if err := b.Client.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing task client")
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		// service connections
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}

	// Stop background work after in-flight requests have finished
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("Server exiting")
}

func Run(cfg *config.Config, version string) {
	logger.Init(cfg.Global.Env)
	if cfg.Global.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info().Str("version", version).Msg("Starting Local Library")

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	svc, auditService := NewCatalog(db)

	sessions, err := NewSessions(db, cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session manager")
	}

	secret, err := CSRFSecret(cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare CSRF protection")
	}

	var background *Background
	if cfg.Tasks.Enabled {
		background, err = StartBackground(cfg, svc, auditService)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start background tasks")
		}
	} else {
		log.Info().Msg("Background tasks disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:        svc,
		Activity:       auditService,
		Database:       db,
		Sessions:       sessions,
		CSRFSecret:     secret,
		SecureCookies:  cfg.Session.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		RequestTimeout: cfg.Catalog.RequestTimeout,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		if background != nil {
			background.Stop(ctx)
		}
		auditService.Wait()
	}

	Serve(router, cfg, onShutdown)
}
