// Package books provides database operations for catalog books and their
// genre associations (the book_genres join table).
package books

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns every book with its author, ordered by title.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// GetBook retrieves a book with its author and genres.
// Returns nil, nil if it does not exist.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// BooksByAuthor returns the books written by an author, ordered by title.
func (r *Repository) BooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// BooksByGenre returns the books filed under a genre, ordered by title.
func (r *Repository) BooksByGenre(ctx context.Context, genreID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

// CreateBook inserts a book and links it to book.Genres.
// The referenced author and genres must already exist; they are not upserted.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Omit("Author", "Genres.*").Create(book).Error
}

// UpdateBook replaces the book's fields and genre list.
// Returns false if no book has the given ID.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) (bool, error) {
	if book.ID == 0 {
		return false, nil
	}

	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{ID: book.ID}).
			Updates(map[string]any{
				"title":     book.Title,
				"author_id": book.AuthorID,
				"summary":   book.Summary,
				"isbn":      book.ISBN,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		found = true

		assoc := tx.Model(&entities.Book{ID: book.ID}).Association("Genres")
		if len(book.Genres) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(book.Genres)
	})
	return found, err
}

// DeleteBook removes a book along with its genre links.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Genres").Delete(&entities.Book{ID: id}).Error
}

func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}
