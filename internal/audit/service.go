// Package audit records the catalog's mutation history.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// The write outlives the request that triggered it.
func (s *Service) LogAsync(ctx context.Context, event *entities.AuditEvent) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Error().Err(err).Str("action", event.Action).Msg("Failed to log audit event")
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogCreate records the creation of a catalog record.
func (s *Service) LogCreate(ctx context.Context, entityType string, entityID uint, name string) {
	s.LogAsync(ctx, newEvent(entities.AuditEventCreate, entityType, entityID, "Created "+entityType+": "+name))
}

// LogUpdate records an update of a catalog record.
func (s *Service) LogUpdate(ctx context.Context, entityType string, entityID uint, name string) {
	s.LogAsync(ctx, newEvent(entities.AuditEventUpdate, entityType, entityID, "Updated "+entityType+": "+name))
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(ctx context.Context, entityType string, entityID uint, name string) {
	s.LogAsync(ctx, newEvent(entities.AuditEventDelete, entityType, entityID, "Deleted "+entityType+": "+name))
}

// LogDeleteBlocked records a delete refused because dependents still exist.
func (s *Service) LogDeleteBlocked(ctx context.Context, entityType string, entityID uint, name string, dependents int) {
	event := newEvent(entities.AuditEventDelete, entityType, entityID, "Refused to delete "+entityType+": "+name)
	event.Status = entities.AuditStatusFailed
	event.ErrorMsg = fmt.Sprintf("%d dependent record(s) still reference it", dependents)
	s.LogAsync(ctx, event)
}

// LogOverdue synchronously records that a loaned copy is past its due date.
func (s *Service) LogOverdue(ctx context.Context, instance entities.BookInstance, now time.Time) error {
	days := int(now.Sub(*instance.DueBack).Hours() / 24)
	description := fmt.Sprintf("Copy %d of %q is %d day(s) overdue (due %s)",
		instance.ID, instance.Book.Title, days, instance.DueBackFormatted())

	event := newEvent(entities.AuditEventOverdue, "bookinstance", instance.ID, truncate(description, 500))
	event.Action = "bookinstance_overdue"
	return s.repo.LogEvent(ctx, event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(ctx, retention)
}

func newEvent(eventType entities.AuditEventType, entityType string, entityID uint, description string) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	}
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - len("...")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
