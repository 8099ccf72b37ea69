// Package bookinstances provides database operations for physical copies of books.
package bookinstances

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBookInstances returns every copy with its book.
func (r *Repository) ListBookInstances(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Order("id ASC").Find(&instances).Error
	return instances, err
}

// GetBookInstance retrieves a copy with its book. Returns nil, nil if it does not exist.
// If the referenced book is gone, the returned copy has a zero Book.
func (r *Repository) GetBookInstance(ctx context.Context, id uint) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").First(&instance, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// InstancesByBook returns the copies of a book.
func (r *Repository) InstancesByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Order("id ASC").Find(&instances).Error
	return instances, err
}

// OverdueInstances returns loaned copies whose due date is before now.
func (r *Repository) OverdueInstances(ctx context.Context, now time.Time) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	// SQLite compares due_back as text, so both sides must carry the same zone.
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("status = ? AND due_back IS NOT NULL AND due_back < ?", entities.StatusLoaned, now.UTC()).
		Order("due_back ASC").
		Find(&instances).Error
	return instances, err
}

func (r *Repository) CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if instance.Status == "" {
		instance.Status = entities.StatusMaintenance
	}
	instance.DueBack = inUTC(instance.DueBack)
	return r.db.WithContext(ctx).Omit("Book").Create(instance).Error
}

// UpdateBookInstance replaces every editable field of a copy.
// Returns false if no copy has the given ID.
func (r *Repository) UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) (bool, error) {
	if instance.ID == 0 {
		return false, nil
	}
	status := instance.Status
	if status == "" {
		status = entities.StatusMaintenance
	}
	result := r.db.WithContext(ctx).
		Model(&entities.BookInstance{ID: instance.ID}).
		Updates(map[string]any{
			"book_id":  instance.BookID,
			"imprint":  instance.Imprint,
			"status":   status,
			"due_back": inUTC(instance.DueBack),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteBookInstance(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.BookInstance{}, id).Error
}

func (r *Repository) CountBookInstances(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Count(&count).Error
	return count, err
}

// CountByStatus counts copies in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status entities.BookInstanceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func inUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
