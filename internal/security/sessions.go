package security

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/gin-gonic/gin"
)

const sessionKeyFlash = "flash"

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// SessionOptions configures cookie lifetime and security.
type SessionOptions struct {
	Lifetime      time.Duration
	SecureCookies bool // Set to false for local dev without HTTPS
}

// NewSessionManager creates a session manager backed by the SQLite database.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, opts SessionOptions) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := newManager(opts)
	sm.Store = sqlite3store.New(sqlDB)
	return &SessionManager{SessionManager: sm}, nil
}

// NewMemorySessionManager keeps sessions in process memory. Used when the
// catalog runs on Postgres, where no SQLite session table is available.
func NewMemorySessionManager(opts SessionOptions) *SessionManager {
	sm := newManager(opts)
	sm.Store = memstore.New()
	return &SessionManager{SessionManager: sm}
}

func newManager(opts SessionOptions) *scs.SessionManager {
	sm := scs.New()

	lifetime := opts.Lifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = opts.SecureCookies
	// Lax so the flash cookie survives the POST/redirect/GET round trip.
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	return sm
}

// LoadSession puts the session named by the request cookie into the request
// context. Nothing is saved here: the only session writes are flash changes,
// and SetFlash/PopFlash commit those before the response starts.
func (sm *SessionManager) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SetFlash stores a one-shot message shown on the next rendered page.
// Call it before anything is written to w.
func (sm *SessionManager) SetFlash(w http.ResponseWriter, r *http.Request, message string) error {
	sm.Put(r.Context(), sessionKeyFlash, message)
	return sm.save(w, r)
}

// PopFlash returns and clears the pending flash message.
func (sm *SessionManager) PopFlash(w http.ResponseWriter, r *http.Request) (string, error) {
	message := sm.PopString(r.Context(), sessionKeyFlash)
	if message == "" {
		return "", nil
	}
	return message, sm.save(w, r)
}

func (sm *SessionManager) save(w http.ResponseWriter, r *http.Request) error {
	token, expiry, err := sm.Commit(r.Context())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	sm.WriteSessionCookie(r.Context(), w, token, expiry)
	return nil
}
