package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/cli"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/bookinstances"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/scheduler"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ catalog.AuthorStore = (*authors.Repository)(nil)
var _ catalog.GenreStore = (*genres.Repository)(nil)
var _ catalog.BookStore = (*books.Repository)(nil)
var _ catalog.BookInstanceStore = (*bookinstances.Repository)(nil)

// =============================================================================
// Catalog
// =============================================================================

// Auditor implementations
var _ catalog.Auditor = (*audit.Service)(nil)

// Handler-facing services
var _ http.CatalogService = (*catalog.Service)(nil)
var _ http.ActivityReader = (*audit.Service)(nil)
var _ http.StorePinger = (*database.Database)(nil)
var _ cli.SeedTarget = (*catalog.Service)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.OverdueFinder = (*catalog.Service)(nil)
var _ tasks.OverdueRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// Enqueuer implementations
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
