package catalog

import (
	"context"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// GenreDetail is a genre with the books filed under it.
type GenreDetail struct {
	Genre *entities.Genre
	Books []entities.Book
}

func (s *Service) genrePrimary(id uint) Primary[entities.Genre] {
	return Primary[entities.Genre]{
		Kind:  KindGenre,
		ID:    id,
		Fetch: func(ctx context.Context) (*entities.Genre, error) { return s.genres.GetGenre(ctx, id) },
	}
}

func (s *Service) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres, err := s.genres.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// GetGenre returns the genre or a *NotFoundError.
func (s *Service) GetGenre(ctx context.Context, id uint) (*entities.Genre, error) {
	genre, err := s.genres.GetGenre(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genre %d: %w", id, err)
	}
	if genre == nil {
		return nil, notFound(KindGenre, id)
	}
	return genre, nil
}

func (s *Service) GenreDetail(ctx context.Context, id uint) (*GenreDetail, error) {
	res, err := Aggregate(ctx, s.genrePrimary(id), Queries{
		"books": func(ctx context.Context) (any, error) { return s.books.BooksByGenre(ctx, id) },
	})
	if err != nil {
		return nil, err
	}
	return &GenreDetail{Genre: res.Primary, Books: Take[[]entities.Book](res.Results, "books")}, nil
}

// CreateGenre returns the existing genre with exactly this name, or inserts a new one.
// created reports whether an insert happened.
//
// The lookup and the insert are separate statements, so two concurrent
// requests for the same new name can both insert.
func (s *Service) CreateGenre(ctx context.Context, name string) (genre *entities.Genre, created bool, err error) {
	existing, err := s.genres.FindGenreByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up genre %q: %w", name, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	genre = &entities.Genre{Name: name}
	if err := s.genres.CreateGenre(ctx, genre); err != nil {
		return nil, false, fmt.Errorf("failed to create genre %q: %w", name, err)
	}
	s.audit.LogCreate(ctx, KindGenre, genre.ID, genre.Name)
	return genre, true, nil
}

// UpdateGenre renames a genre. Returns a *NotFoundError if it does not exist.
func (s *Service) UpdateGenre(ctx context.Context, id uint, name string) (*entities.Genre, error) {
	genre := &entities.Genre{ID: id, Name: name}
	ok, err := s.genres.UpdateGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("failed to update genre %d: %w", id, err)
	}
	if !ok {
		return nil, notFound(KindGenre, id)
	}
	s.audit.LogUpdate(ctx, KindGenre, id, name)
	return genre, nil
}

// InspectGenreDelete loads the delete confirmation for a genre.
func (s *Service) InspectGenreDelete(ctx context.Context, id uint) (*Deletion[entities.Genre, entities.Book], error) {
	return InspectDelete(ctx, s.genrePrimary(id), s.genreDependents(id))
}

// DeleteGenre removes a genre unless books are still filed under it.
func (s *Service) DeleteGenre(ctx context.Context, id uint) (*Deletion[entities.Genre, entities.Book], error) {
	d, err := GuardedDelete(ctx, s.genrePrimary(id), s.genreDependents(id), func(ctx context.Context) error {
		return s.genres.DeleteGenre(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	switch d.Outcome {
	case DeleteDone:
		s.audit.LogDelete(ctx, KindGenre, id, d.Entity.Name)
	case DeleteBlocked:
		s.audit.LogDeleteBlocked(ctx, KindGenre, id, d.Entity.Name, len(d.Dependents))
	}
	return d, nil
}

func (s *Service) genreDependents(id uint) func(context.Context) ([]entities.Book, error) {
	return func(ctx context.Context) ([]entities.Book, error) { return s.books.BooksByGenre(ctx, id) }
}
