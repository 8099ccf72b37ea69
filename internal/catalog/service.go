// Package catalog assembles the library's views and performs its mutations.
//
// Detail and edit views are built with Aggregate, which fetches a primary
// record and its related lists concurrently. Deletes of records that others
// reference go through GuardedDelete, which refuses while dependents exist.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Entity kinds used in errors and audit events.
const (
	KindAuthor       = "author"
	KindGenre        = "genre"
	KindBook         = "book"
	KindBookInstance = "bookinstance"
)

// Stores bundles the store capabilities the service needs.
type Stores struct {
	Authors       AuthorStore
	Genres        GenreStore
	Books         BookStore
	BookInstances BookInstanceStore
}

type Service struct {
	authors   AuthorStore
	genres    GenreStore
	books     BookStore
	instances BookInstanceStore
	audit     Auditor
}

// NewService creates a catalog service. A nil auditor disables auditing.
func NewService(stores Stores, auditor Auditor) *Service {
	if auditor == nil {
		auditor = nopAuditor{}
	}
	return &Service{
		authors:   stores.Authors,
		genres:    stores.Genres,
		books:     stores.Books,
		instances: stores.BookInstances,
		audit:     auditor,
	}
}

// HomeCounts are the totals shown on the catalog home page.
type HomeCounts struct {
	Books              int64
	BookInstances      int64
	AvailableInstances int64
	Authors            int64
	Genres             int64
}

// Counts gathers the home page totals concurrently.
func (s *Service) Counts(ctx context.Context) (*HomeCounts, error) {
	res, err := Gather(ctx, Queries{
		"books":     func(ctx context.Context) (any, error) { return s.books.CountBooks(ctx) },
		"instances": func(ctx context.Context) (any, error) { return s.instances.CountBookInstances(ctx) },
		"available": func(ctx context.Context) (any, error) {
			return s.instances.CountByStatus(ctx, entities.StatusAvailable)
		},
		"authors": func(ctx context.Context) (any, error) { return s.authors.CountAuthors(ctx) },
		"genres":  func(ctx context.Context) (any, error) { return s.genres.CountGenres(ctx) },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog: %w", err)
	}
	return &HomeCounts{
		Books:              Take[int64](res, "books"),
		BookInstances:      Take[int64](res, "instances"),
		AvailableInstances: Take[int64](res, "available"),
		Authors:            Take[int64](res, "authors"),
		Genres:             Take[int64](res, "genres"),
	}, nil
}

// OverdueCopies lists loaned copies whose due date is before now.
func (s *Service) OverdueCopies(ctx context.Context, now time.Time) ([]entities.BookInstance, error) {
	copies, err := s.instances.OverdueInstances(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue copies: %w", err)
	}
	return copies, nil
}
