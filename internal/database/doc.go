// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into one sub-package per collection:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres) and migrations
//	├── authors/         # Author CRUD
//	├── genres/          # Genre CRUD and exact-name lookup
//	├── books/           # Book CRUD, genre associations, dependents queries
//	├── bookinstances/   # Copy CRUD, per-book and overdue queries
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./locallibrary.db")
//
//	genresRepo := genres.NewRepository(db.DB)
//	genre, err := genresRepo.GetGenre(ctx, 12)
//
// Lookups by id return (nil, nil) when no record matches, so callers can tell
// "absent" apart from a store failure without importing gorm.
//
// # Interface Implementations
//
// Each sub-package implements one store capability of the catalog service:
//
//   - authors.Repository: implements catalog.AuthorStore
//   - genres.Repository: implements catalog.GenreStore
//   - books.Repository: implements catalog.BookStore
//   - bookinstances.Repository: implements catalog.BookInstanceStore
//   - audit.Repository: implements audit.EventStore
//
// Compile-time checks live in internal/interfaces/checks.go.
package database
