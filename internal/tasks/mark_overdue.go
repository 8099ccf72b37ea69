package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/logger"
)

// OverdueFinder lists loaned copies past their due date.
type OverdueFinder interface {
	OverdueCopies(ctx context.Context, now time.Time) ([]entities.BookInstance, error)
}

// OverdueRecorder records one overdue copy.
type OverdueRecorder interface {
	LogOverdue(ctx context.Context, instance entities.BookInstance, now time.Time) error
}

// MarkOverdueCopiesTask reports loaned copies whose due date has passed.
// Copies are not modified; each one gets an overdue audit event.
type MarkOverdueCopiesTask struct{}

func (MarkOverdueCopiesTask) Config() backlite.QueueConfig {
	return maintenanceQueue(QueueMarkOverdue, 2, time.Minute, 5*time.Minute)
}

// MarkOverdueCopiesProcessor creates a processor function for MarkOverdueCopiesTask.
// now is injectable for tests; nil means time.Now.
func MarkOverdueCopiesProcessor(finder OverdueFinder, recorder OverdueRecorder, now func() time.Time) backlite.QueueProcessor[MarkOverdueCopiesTask] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, task MarkOverdueCopiesTask) error {
		// due_back is compared as text, so the cutoff must be UTC like the stored dates.
		at := now().UTC()
		copies, err := finder.OverdueCopies(ctx, at)
		if err != nil {
			return fmt.Errorf("find overdue copies: %w", err)
		}

		log := logger.Component("tasks")
		for _, c := range copies {
			log.Warn().
				Uint("copy_id", c.ID).
				Str("title", c.Book.Title).
				Str("due_back", c.DueBackISO()).
				Msg("Copy is overdue")
			if err := recorder.LogOverdue(ctx, c, at); err != nil {
				return fmt.Errorf("record overdue copy %d: %w", c.ID, err)
			}
		}

		log.Info().Int("overdue", len(copies)).Msg("Overdue scan finished")
		return nil
	}
}
