package catalog

import (
	"context"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// BookInstanceEdit is a copy together with every book it could be a copy of.
type BookInstanceEdit struct {
	Instance *entities.BookInstance
	Books    []entities.Book
}

// instancePrimary fetches a copy and treats one whose book is gone as absent.
func (s *Service) instancePrimary(id uint) Primary[entities.BookInstance] {
	return Primary[entities.BookInstance]{
		Kind: KindBookInstance,
		ID:   id,
		Fetch: func(ctx context.Context) (*entities.BookInstance, error) {
			instance, err := s.instances.GetBookInstance(ctx, id)
			if err != nil || instance == nil {
				return instance, err
			}
			if instance.Book.ID == 0 {
				return nil, notFound(KindBook, instance.BookID)
			}
			return instance, nil
		},
	}
}

func (s *Service) ListBookInstances(ctx context.Context) ([]entities.BookInstance, error) {
	instances, err := s.instances.ListBookInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list book instances: %w", err)
	}
	return instances, nil
}

// BookInstanceDetail returns the copy with its book. A copy whose book no
// longer exists is reported as a *NotFoundError for the book.
func (s *Service) BookInstanceDetail(ctx context.Context, id uint) (*entities.BookInstance, error) {
	res, err := Aggregate(ctx, s.instancePrimary(id), nil)
	if err != nil {
		return nil, err
	}
	return res.Primary, nil
}

// BookInstanceOptions lists the books a new copy can belong to.
func (s *Service) BookInstanceOptions(ctx context.Context) ([]entities.Book, error) {
	return s.ListBooks(ctx)
}

// EditBookInstance loads a copy and every book for the update form.
func (s *Service) EditBookInstance(ctx context.Context, id uint) (*BookInstanceEdit, error) {
	res, err := Aggregate(ctx, s.instancePrimary(id), Queries{
		"books": func(ctx context.Context) (any, error) { return s.books.ListBooks(ctx) },
	})
	if err != nil {
		return nil, err
	}
	return &BookInstanceEdit{Instance: res.Primary, Books: Take[[]entities.Book](res.Results, "books")}, nil
}

func (s *Service) resolveInstanceBook(ctx context.Context, instance *entities.BookInstance) error {
	book, err := s.books.GetBook(ctx, instance.BookID)
	if err != nil {
		return fmt.Errorf("failed to fetch book %d: %w", instance.BookID, err)
	}
	if book == nil {
		return notFound(KindBook, instance.BookID)
	}
	instance.Book = *book
	if instance.Status == "" {
		instance.Status = entities.StatusMaintenance
	}
	return nil
}

// CreateBookInstance inserts a copy. Returns a *NotFoundError if the book does not exist.
func (s *Service) CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if err := s.resolveInstanceBook(ctx, instance); err != nil {
		return err
	}
	if err := s.instances.CreateBookInstance(ctx, instance); err != nil {
		return fmt.Errorf("failed to create book instance: %w", err)
	}
	s.audit.LogCreate(ctx, KindBookInstance, instance.ID, instanceName(instance))
	return nil
}

// UpdateBookInstance replaces every field of the copy with instance.ID.
func (s *Service) UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if err := s.resolveInstanceBook(ctx, instance); err != nil {
		return err
	}
	ok, err := s.instances.UpdateBookInstance(ctx, instance)
	if err != nil {
		return fmt.Errorf("failed to update book instance %d: %w", instance.ID, err)
	}
	if !ok {
		return notFound(KindBookInstance, instance.ID)
	}
	s.audit.LogUpdate(ctx, KindBookInstance, instance.ID, instanceName(instance))
	return nil
}

// InspectBookInstanceDelete loads a copy for its delete confirmation.
// Copies have no dependents, so the outcome is DeleteReady or DeleteAbsent.
func (s *Service) InspectBookInstanceDelete(ctx context.Context, id uint) (*Deletion[entities.BookInstance, struct{}], error) {
	return InspectDelete(ctx, s.rawInstancePrimary(id), noDependents[struct{}])
}

func (s *Service) DeleteBookInstance(ctx context.Context, id uint) (*Deletion[entities.BookInstance, struct{}], error) {
	d, err := GuardedDelete(ctx, s.rawInstancePrimary(id), noDependents[struct{}], func(ctx context.Context) error {
		return s.instances.DeleteBookInstance(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if d.Outcome == DeleteDone {
		s.audit.LogDelete(ctx, KindBookInstance, id, instanceName(d.Entity))
	}
	return d, nil
}

// rawInstancePrimary fetches a copy even if its book is gone, so orphans stay deletable.
func (s *Service) rawInstancePrimary(id uint) Primary[entities.BookInstance] {
	return Primary[entities.BookInstance]{
		Kind:  KindBookInstance,
		ID:    id,
		Fetch: func(ctx context.Context) (*entities.BookInstance, error) { return s.instances.GetBookInstance(ctx, id) },
	}
}

func instanceName(instance *entities.BookInstance) string {
	if instance.Book.Title == "" {
		return instance.Imprint
	}
	return fmt.Sprintf("%s (%s)", instance.Book.Title, instance.Imprint)
}
