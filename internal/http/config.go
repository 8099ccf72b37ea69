package http

import (
	"time"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/security"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog  CatalogService
	Activity ActivityReader // optional; the activity page is skipped when nil
	Database *database.Database

	// Flash messages (optional)
	Sessions *security.SessionManager

	// CSRF protection is enabled when a secret is set
	CSRFSecret    []byte
	SecureCookies bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Deadline applied to each request's context; zero disables it
	RequestTimeout time.Duration

	// Application info
	Version string
}
