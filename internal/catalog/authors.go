package catalog

import (
	"context"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// AuthorDetail is an author with the books they wrote.
type AuthorDetail struct {
	Author *entities.Author
	Books  []entities.Book
}

func (s *Service) authorPrimary(id uint) Primary[entities.Author] {
	return Primary[entities.Author]{
		Kind:  KindAuthor,
		ID:    id,
		Fetch: func(ctx context.Context) (*entities.Author, error) { return s.authors.GetAuthor(ctx, id) },
	}
}

func (s *Service) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	authors, err := s.authors.ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// GetAuthor returns the author or a *NotFoundError.
func (s *Service) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	author, err := s.authors.GetAuthor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch author %d: %w", id, err)
	}
	if author == nil {
		return nil, notFound(KindAuthor, id)
	}
	return author, nil
}

func (s *Service) AuthorDetail(ctx context.Context, id uint) (*AuthorDetail, error) {
	res, err := Aggregate(ctx, s.authorPrimary(id), Queries{
		"books": func(ctx context.Context) (any, error) { return s.books.BooksByAuthor(ctx, id) },
	})
	if err != nil {
		return nil, err
	}
	return &AuthorDetail{Author: res.Primary, Books: Take[[]entities.Book](res.Results, "books")}, nil
}

func (s *Service) CreateAuthor(ctx context.Context, author *entities.Author) error {
	if err := s.authors.CreateAuthor(ctx, author); err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	s.audit.LogCreate(ctx, KindAuthor, author.ID, author.Name())
	return nil
}

// UpdateAuthor replaces every field of the author with author.ID.
func (s *Service) UpdateAuthor(ctx context.Context, author *entities.Author) error {
	ok, err := s.authors.UpdateAuthor(ctx, author)
	if err != nil {
		return fmt.Errorf("failed to update author %d: %w", author.ID, err)
	}
	if !ok {
		return notFound(KindAuthor, author.ID)
	}
	s.audit.LogUpdate(ctx, KindAuthor, author.ID, author.Name())
	return nil
}

func (s *Service) InspectAuthorDelete(ctx context.Context, id uint) (*Deletion[entities.Author, entities.Book], error) {
	return InspectDelete(ctx, s.authorPrimary(id), s.authorDependents(id))
}

// DeleteAuthor removes an author unless books still reference them.
func (s *Service) DeleteAuthor(ctx context.Context, id uint) (*Deletion[entities.Author, entities.Book], error) {
	d, err := GuardedDelete(ctx, s.authorPrimary(id), s.authorDependents(id), func(ctx context.Context) error {
		return s.authors.DeleteAuthor(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	switch d.Outcome {
	case DeleteDone:
		s.audit.LogDelete(ctx, KindAuthor, id, d.Entity.Name())
	case DeleteBlocked:
		s.audit.LogDeleteBlocked(ctx, KindAuthor, id, d.Entity.Name(), len(d.Dependents))
	}
	return d, nil
}

func (s *Service) authorDependents(id uint) func(context.Context) ([]entities.Book, error) {
	return func(ctx context.Context) ([]entities.Book, error) { return s.books.BooksByAuthor(ctx, id) }
}
