// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore, GenreStore, BookStore, BookInstanceStore: persistence for the
//     four catalog entities (internal/catalog/stores.go). Implemented by the
//     repositories under internal/database/.
//
// ## Catalog Interfaces
//
//   - Auditor: records mutations and refused deletes (internal/catalog/stores.go)
//   - CatalogService and its per-entity parts: what the HTTP handlers call
//     (internal/http/stores.go)
//   - ActivityReader: paged audit history for the activity page
//   - SeedTarget: the writes the seed command performs (internal/cli/seed.go)
//
// ## Background Interfaces
//
//   - OverdueFinder, OverdueRecorder: inputs of the overdue scan (internal/tasks)
//   - AuditEventCleaner: retention cleanup of audit events (internal/tasks)
//   - Enqueuer: how the cron scheduler hands work to the task queue (internal/scheduler)
//
// # Adding a New Catalog Entity
//
//  1. Add the model to internal/entities and register it in database.Models.
//
//  2. Create sub-package internal/database/<entity>/ with a Repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface in internal/catalog/stores.go and build the
//     detail view with Aggregate, and deletion with the delete guard.
//
//  4. Add a form under internal/forms, a controller under internal/http, and
//     the compile-time checks below.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
