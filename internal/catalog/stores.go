package catalog

import (
	"context"
	"time"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Store interfaces are implemented by the repositories in internal/database.
// Lookups by ID return nil, nil when no record exists. Update methods report
// false when there was nothing to update.

type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	UpdateAuthor(ctx context.Context, author *entities.Author) (bool, error)
	DeleteAuthor(ctx context.Context, id uint) error
	CountAuthors(ctx context.Context) (int64, error)
}

type GenreStore interface {
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GetGenre(ctx context.Context, id uint) (*entities.Genre, error)
	FindGenreByName(ctx context.Context, name string) (*entities.Genre, error)
	GetGenresByIDs(ctx context.Context, ids []uint) ([]entities.Genre, error)
	CreateGenre(ctx context.Context, genre *entities.Genre) error
	UpdateGenre(ctx context.Context, genre *entities.Genre) (bool, error)
	DeleteGenre(ctx context.Context, id uint) error
	CountGenres(ctx context.Context) (int64, error)
}

type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	BooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
	BooksByGenre(ctx context.Context, genreID uint) ([]entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) (bool, error)
	DeleteBook(ctx context.Context, id uint) error
	CountBooks(ctx context.Context) (int64, error)
}

type BookInstanceStore interface {
	ListBookInstances(ctx context.Context) ([]entities.BookInstance, error)
	GetBookInstance(ctx context.Context, id uint) (*entities.BookInstance, error)
	InstancesByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error)
	OverdueInstances(ctx context.Context, now time.Time) ([]entities.BookInstance, error)
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) (bool, error)
	DeleteBookInstance(ctx context.Context, id uint) error
	CountBookInstances(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.BookInstanceStatus) (int64, error)
}

// Auditor records successful and refused mutations. Implemented by audit.Service.
type Auditor interface {
	LogCreate(ctx context.Context, entityType string, entityID uint, name string)
	LogUpdate(ctx context.Context, entityType string, entityID uint, name string)
	LogDelete(ctx context.Context, entityType string, entityID uint, name string)
	LogDeleteBlocked(ctx context.Context, entityType string, entityID uint, name string, dependents int)
}

type nopAuditor struct{}

func (nopAuditor) LogCreate(context.Context, string, uint, string)             {}
func (nopAuditor) LogUpdate(context.Context, string, uint, string)             {}
func (nopAuditor) LogDelete(context.Context, string, uint, string)             {}
func (nopAuditor) LogDeleteBlocked(context.Context, string, uint, string, int) {}
