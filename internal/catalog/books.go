package catalog

import (
	"context"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// BookDetail is a book with its author, genres and copies.
type BookDetail struct {
	Book      *entities.Book
	Instances []entities.BookInstance
}

// BookOptions are the choices offered by the book form.
type BookOptions struct {
	Authors []entities.Author
	Genres  []entities.Genre
}

// BookEdit is a book together with the book form's choices.
type BookEdit struct {
	Book *entities.Book
	BookOptions
}

func (s *Service) bookPrimary(id uint) Primary[entities.Book] {
	return Primary[entities.Book]{
		Kind:  KindBook,
		ID:    id,
		Fetch: func(ctx context.Context) (*entities.Book, error) { return s.books.GetBook(ctx, id) },
	}
}

func (s *Service) optionQueries() Queries {
	return Queries{
		"authors": func(ctx context.Context) (any, error) { return s.authors.ListAuthors(ctx) },
		"genres":  func(ctx context.Context) (any, error) { return s.genres.ListGenres(ctx) },
	}
}

func optionsFrom(res Results) BookOptions {
	return BookOptions{
		Authors: Take[[]entities.Author](res, "authors"),
		Genres:  Take[[]entities.Genre](res, "genres"),
	}
}

func (s *Service) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books, err := s.books.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *Service) BookDetail(ctx context.Context, id uint) (*BookDetail, error) {
	res, err := Aggregate(ctx, s.bookPrimary(id), Queries{
		"instances": func(ctx context.Context) (any, error) { return s.instances.InstancesByBook(ctx, id) },
	})
	if err != nil {
		return nil, err
	}
	return &BookDetail{Book: res.Primary, Instances: Take[[]entities.BookInstance](res.Results, "instances")}, nil
}

// BookOptions loads every author and genre for the create form.
func (s *Service) BookOptions(ctx context.Context) (*BookOptions, error) {
	res, err := Gather(ctx, s.optionQueries())
	if err != nil {
		return nil, err
	}
	opts := optionsFrom(res)
	return &opts, nil
}

// EditBook loads a book and the form's choices for the update form.
func (s *Service) EditBook(ctx context.Context, id uint) (*BookEdit, error) {
	res, err := Aggregate(ctx, s.bookPrimary(id), s.optionQueries())
	if err != nil {
		return nil, err
	}
	return &BookEdit{Book: res.Primary, BookOptions: optionsFrom(res.Results)}, nil
}

// resolveBookRefs checks the author and every genre in genreIDs exist, then
// replaces book.Genres with the stored genres.
func (s *Service) resolveBookRefs(ctx context.Context, book *entities.Book, genreIDs []uint) error {
	res, err := Gather(ctx, Queries{
		"author": func(ctx context.Context) (any, error) { return s.authors.GetAuthor(ctx, book.AuthorID) },
		"genres": func(ctx context.Context) (any, error) { return s.genres.GetGenresByIDs(ctx, genreIDs) },
	})
	if err != nil {
		return err
	}
	author := Take[*entities.Author](res, "author")
	if author == nil {
		return notFound(KindAuthor, book.AuthorID)
	}
	genres := Take[[]entities.Genre](res, "genres")
	found := make(map[uint]bool, len(genres))
	for _, g := range genres {
		found[g.ID] = true
	}
	for _, id := range genreIDs {
		if !found[id] {
			return notFound(KindGenre, id)
		}
	}
	book.Author = *author
	book.Genres = genres
	return nil
}

// CreateBook inserts a book filed under genreIDs.
// Returns a *NotFoundError if the author or any of the genres does not exist.
func (s *Service) CreateBook(ctx context.Context, book *entities.Book, genreIDs []uint) error {
	if err := s.resolveBookRefs(ctx, book, genreIDs); err != nil {
		return err
	}
	if err := s.books.CreateBook(ctx, book); err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	s.audit.LogCreate(ctx, KindBook, book.ID, book.Title)
	return nil
}

// UpdateBook replaces the fields and genres of the book with book.ID.
func (s *Service) UpdateBook(ctx context.Context, book *entities.Book, genreIDs []uint) error {
	if err := s.resolveBookRefs(ctx, book, genreIDs); err != nil {
		return err
	}
	ok, err := s.books.UpdateBook(ctx, book)
	if err != nil {
		return fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	if !ok {
		return notFound(KindBook, book.ID)
	}
	s.audit.LogUpdate(ctx, KindBook, book.ID, book.Title)
	return nil
}

func (s *Service) InspectBookDelete(ctx context.Context, id uint) (*Deletion[entities.Book, entities.BookInstance], error) {
	return InspectDelete(ctx, s.bookPrimary(id), s.bookDependents(id))
}

// DeleteBook removes a book unless copies of it still exist.
func (s *Service) DeleteBook(ctx context.Context, id uint) (*Deletion[entities.Book, entities.BookInstance], error) {
	d, err := GuardedDelete(ctx, s.bookPrimary(id), s.bookDependents(id), func(ctx context.Context) error {
		return s.books.DeleteBook(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	switch d.Outcome {
	case DeleteDone:
		s.audit.LogDelete(ctx, KindBook, id, d.Entity.Title)
	case DeleteBlocked:
		s.audit.LogDeleteBlocked(ctx, KindBook, id, d.Entity.Title, len(d.Dependents))
	}
	return d, nil
}

func (s *Service) bookDependents(id uint) func(context.Context) ([]entities.BookInstance, error) {
	return func(ctx context.Context) ([]entities.BookInstance, error) { return s.instances.InstancesByBook(ctx, id) }
}
