package http

import (
	"context"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// This file consolidates the catalog capabilities used by HTTP controllers.
// Each controller depends only on its own interface; catalog.Service
// satisfies all of them.

type GenreService interface {
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GetGenre(ctx context.Context, id uint) (*entities.Genre, error)
	GenreDetail(ctx context.Context, id uint) (*catalog.GenreDetail, error)
	CreateGenre(ctx context.Context, name string) (*entities.Genre, bool, error)
	UpdateGenre(ctx context.Context, id uint, name string) (*entities.Genre, error)
	InspectGenreDelete(ctx context.Context, id uint) (*catalog.Deletion[entities.Genre, entities.Book], error)
	DeleteGenre(ctx context.Context, id uint) (*catalog.Deletion[entities.Genre, entities.Book], error)
}

type AuthorService interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	AuthorDetail(ctx context.Context, id uint) (*catalog.AuthorDetail, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	UpdateAuthor(ctx context.Context, author *entities.Author) error
	InspectAuthorDelete(ctx context.Context, id uint) (*catalog.Deletion[entities.Author, entities.Book], error)
	DeleteAuthor(ctx context.Context, id uint) (*catalog.Deletion[entities.Author, entities.Book], error)
}

type BookService interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	BookDetail(ctx context.Context, id uint) (*catalog.BookDetail, error)
	BookOptions(ctx context.Context) (*catalog.BookOptions, error)
	EditBook(ctx context.Context, id uint) (*catalog.BookEdit, error)
	CreateBook(ctx context.Context, book *entities.Book, genreIDs []uint) error
	UpdateBook(ctx context.Context, book *entities.Book, genreIDs []uint) error
	InspectBookDelete(ctx context.Context, id uint) (*catalog.Deletion[entities.Book, entities.BookInstance], error)
	DeleteBook(ctx context.Context, id uint) (*catalog.Deletion[entities.Book, entities.BookInstance], error)
}

type BookInstanceService interface {
	ListBookInstances(ctx context.Context) ([]entities.BookInstance, error)
	BookInstanceDetail(ctx context.Context, id uint) (*entities.BookInstance, error)
	BookInstanceOptions(ctx context.Context) ([]entities.Book, error)
	EditBookInstance(ctx context.Context, id uint) (*catalog.BookInstanceEdit, error)
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	InspectBookInstanceDelete(ctx context.Context, id uint) (*catalog.Deletion[entities.BookInstance, struct{}], error)
	DeleteBookInstance(ctx context.Context, id uint) (*catalog.Deletion[entities.BookInstance, struct{}], error)
}

// HomeService provides the catalog totals for the home page.
type HomeService interface {
	Counts(ctx context.Context) (*catalog.HomeCounts, error)
}

// CatalogService combines every catalog capability. Implemented by *catalog.Service.
type CatalogService interface {
	HomeService
	GenreService
	AuthorService
	BookService
	BookInstanceService
}

// ActivityReader lists recorded audit events, newest first.
type ActivityReader interface {
	GetEvents(ctx context.Context, limit, offset int) ([]entities.AuditEvent, int64, error)
}

var _ CatalogService = (*catalog.Service)(nil)
