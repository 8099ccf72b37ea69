package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/locallibrary/internal/logger"
)

const (
	QueueMarkOverdue  = "mark_overdue_copies"
	QueueCleanupAudit = "cleanup_audit_events"

	// DefaultAuditRetentionDays matches the AUDIT_RETENTION_DAYS default.
	DefaultAuditRetentionDays = 30
)

// AuditEventCleaner deletes activity history older than a retention period.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// Maintenance holds the catalog services the maintenance queues work on.
type Maintenance struct {
	Overdue  OverdueFinder
	Recorder OverdueRecorder
	Events   AuditEventCleaner
	// Now is the clock for overdue scans; nil means time.Now.
	Now func() time.Time
}

// Queues builds the maintenance queues, failing at wiring time rather than on
// the first scheduled run when a service is missing.
func (m Maintenance) Queues() ([]backlite.Queue, error) {
	switch {
	case m.Overdue == nil:
		return nil, fmt.Errorf("%s: no overdue finder", QueueMarkOverdue)
	case m.Recorder == nil:
		return nil, fmt.Errorf("%s: no overdue recorder", QueueMarkOverdue)
	case m.Events == nil:
		return nil, fmt.Errorf("%s: no audit event cleaner", QueueCleanupAudit)
	}
	return []backlite.Queue{
		backlite.NewQueue(MarkOverdueCopiesProcessor(m.Overdue, m.Recorder, m.Now)),
		backlite.NewQueue(CleanupAuditEventsProcessor(m.Events)),
	}, nil
}

// maintenanceQueue is the queue config shared by the maintenance tasks: failed
// runs keep their payload for a day so they can be inspected.
func maintenanceQueue(name string, attempts int, backoff, timeout time.Duration) backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        name,
		MaxAttempts: attempts,
		Backoff:     backoff,
		Timeout:     timeout,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsTask prunes the activity history.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return maintenanceQueue(QueueCleanupAudit, 3, 5*time.Minute, 2*time.Minute)
}

// Retention is the age past which events are removed.
func (t CleanupAuditEventsTask) Retention() time.Duration {
	days := t.RetentionDays
	if days <= 0 {
		days = DefaultAuditRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func CleanupAuditEventsProcessor(events AuditEventCleaner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		retention := task.Retention()
		deleted, err := events.DeleteOldEvents(ctx, retention)
		if err != nil {
			return fmt.Errorf("prune activity older than %s: %w", retention, err)
		}
		logger.Component("tasks").Info().
			Str("queue", QueueCleanupAudit).
			Int64("deleted", deleted).
			Dur("retention", retention).
			Msg("Pruned activity history")
		return nil
	}
}
