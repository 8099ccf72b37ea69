package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog"

	"github.com/mrlokans/locallibrary/internal/logger"
)

// Client runs the catalog's maintenance queues on backlite.
type Client struct {
	queue   *backlite.Client
	db      *sql.DB
	workers int
	running atomic.Bool
}

// DatabasePath names the queue database kept next to the catalog file:
// "data/catalog.db" becomes "data/catalog-tasks.db". The queue always lives in
// SQLite, also when the catalog itself runs on Postgres.
func DatabasePath(catalogPath string) string {
	ext := filepath.Ext(catalogPath)
	return strings.TrimSuffix(catalogPath, ext) + "-tasks" + ext
}

// NewClient opens the queue database beside catalogPath and installs the
// backlite schema.
func NewClient(catalogPath string, cfg Config) (*Client, error) {
	path := DatabasePath(catalogPath)
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open task queue database %s: %w", path, err)
	}
	// Workers plus the dispatcher and the enqueuing scheduler.
	db.SetMaxOpenConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{logger.Component("tasks")},
	})
	if err == nil {
		err = queue.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up task queue: %w", err)
	}

	return &Client{queue: queue, db: db, workers: cfg.Workers}, nil
}

// RegisterMaintenance registers the overdue scan and the audit cleanup queues.
func (c *Client) RegisterMaintenance(m Maintenance) error {
	queues, err := m.Queues()
	if err != nil {
		return err
	}
	for _, q := range queues {
		c.queue.Register(q)
	}
	return nil
}

// Register adds queues beyond the maintenance set.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start runs the workers until ctx is cancelled or Stop is called. Calls after
// the first are no-ops.
func (c *Client) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	logger.Component("tasks").Info().Int("workers", c.workers).Msg("Task queue started")
	c.queue.Start(ctx)
}

// Stop waits for running tasks until ctx expires. It reports whether every
// worker finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.running.Load() {
		return true
	}
	finished := c.queue.Stop(ctx)
	l := logger.Component("tasks")
	if finished {
		l.Info().Msg("Task queue stopped")
	} else {
		l.Warn().Msg("Task queue stopped before running tasks finished")
	}
	return finished
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Enqueue stores task on its queue for the next free worker.
func (c *Client) Enqueue(task backlite.Task) error {
	if _, err := c.queue.Add(task).Save(); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", task.Config().Name, err)
	}
	return nil
}

// queueLogger routes backlite's key/value logging into zerolog.
type queueLogger struct {
	log zerolog.Logger
}

func (l queueLogger) Info(message string, params ...any) {
	l.log.Debug().Fields(params).Msg(message)
}

func (l queueLogger) Error(message string, params ...any) {
	l.log.Error().Fields(params).Msg(message)
}
