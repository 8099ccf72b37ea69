// Package genres provides database operations for catalog genres.
//
// Genre names carry no unique index; the catalog's create flow looks up
// an existing genre with FindGenreByName before inserting.
package genres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListGenres returns every genre ordered by name.
func (r *Repository) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// GetGenre retrieves a genre by ID. Returns nil, nil if it does not exist.
func (r *Repository) GetGenre(ctx context.Context, id uint) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindGenreByName looks up a genre by exact (case-sensitive) name.
// Returns nil, nil if there is no match.
func (r *Repository) FindGenreByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetGenresByIDs returns the genres matching ids; unknown IDs are skipped.
func (r *Repository) GetGenresByIDs(ctx context.Context, ids []uint) ([]entities.Genre, error) {
	if len(ids) == 0 {
		return []entities.Genre{}, nil
	}
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *Repository) CreateGenre(ctx context.Context, genre *entities.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// UpdateGenre renames a genre. Returns false if no genre has the given ID.
func (r *Repository) UpdateGenre(ctx context.Context, genre *entities.Genre) (bool, error) {
	if genre.ID == 0 {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Model(&entities.Genre{ID: genre.ID}).
		Update("name", genre.Name)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteGenre(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Genre{}, id).Error
}

func (r *Repository) CountGenres(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Genre{}).Count(&count).Error
	return count, err
}
