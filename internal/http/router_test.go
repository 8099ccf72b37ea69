package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database"
	dbaudit "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/bookinstances"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	catalog *catalog.Service
	audit   *audit.Service
	db      *database.Database
}

// setupTestApp builds the full router over a fresh SQLite file.
// configure can adjust the RouterConfig before the router is created.
func setupTestApp(t *testing.T, configure ...func(*RouterConfig)) *testApp {
	t.Helper()

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	})

	auditService := audit.NewService(dbaudit.NewRepository(db.DB))
	svc := catalog.NewService(catalog.Stores{
		Authors:       authors.NewRepository(db.DB),
		Genres:        genres.NewRepository(db.DB),
		Books:         books.NewRepository(db.DB),
		BookInstances: bookinstances.NewRepository(db.DB),
	}, auditService)
	t.Cleanup(auditService.Wait)

	cfg := RouterConfig{
		Catalog:        svc,
		Activity:       auditService,
		Database:       db,
		TemplatesPath:  "../../templates",
		StaticPath:     "../../static",
		RequestTimeout: 5 * time.Second,
		Version:        "test",
	}
	for _, fn := range configure {
		fn(&cfg)
	}

	return &testApp{
		router:  NewRouter(cfg),
		catalog: svc,
		audit:   auditService,
		db:      db,
	}
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) author(t *testing.T, first, family string) *entities.Author {
	t.Helper()
	author := &entities.Author{FirstName: first, FamilyName: family}
	require.NoError(t, a.catalog.CreateAuthor(context.Background(), author))
	return author
}

func (a *testApp) genre(t *testing.T, name string) *entities.Genre {
	t.Helper()
	genre, _, err := a.catalog.CreateGenre(context.Background(), name)
	require.NoError(t, err)
	return genre
}

func (a *testApp) book(t *testing.T, title string, author *entities.Author, genres ...*entities.Genre) *entities.Book {
	t.Helper()
	ids := make([]uint, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	book := &entities.Book{Title: title, AuthorID: author.ID, Summary: "A summary of " + title, ISBN: "9780000000000"}
	require.NoError(t, a.catalog.CreateBook(context.Background(), book, ids))
	return book
}

func (a *testApp) copyOf(t *testing.T, book *entities.Book, status entities.BookInstanceStatus) *entities.BookInstance {
	t.Helper()
	instance := &entities.BookInstance{BookID: book.ID, Imprint: "Gollancz, 2011", Status: status}
	require.NoError(t, a.catalog.CreateBookInstance(context.Background(), instance))
	return instance
}

func TestRouter_RootRedirectsToCatalog(t *testing.T) {
	app := setupTestApp(t)

	w := app.get("/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog", w.Header().Get("Location"))
}

func TestRouter_UnknownPathRendersNotFoundPage(t *testing.T) {
	app := setupTestApp(t)

	w := app.get("/nowhere")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No page lives at /nowhere.")
}

func TestRouter_SetsRequestIDAndSecurityHeaders(t *testing.T) {
	app := setupTestApp(t)

	w := app.get("/catalog")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_KeepsIncomingRequestID(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRouter_ServesStaticFiles(t *testing.T) {
	app := setupTestApp(t)

	w := app.get("/static/style.css")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_HomeShowsCounts(t *testing.T) {
	app := setupTestApp(t)
	author := app.author(t, "Ursula", "Le Guin")
	book := app.book(t, "The Dispossessed", author, app.genre(t, "Science Fiction"))
	app.copyOf(t, book, entities.StatusAvailable)
	app.copyOf(t, book, entities.StatusLoaned)

	w := app.get("/catalog")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>Books:</strong> 1")
	assert.Contains(t, body, "<strong>Copies:</strong> 2")
	assert.Contains(t, body, "<strong>Copies available:</strong> 1")
	assert.Contains(t, body, "<strong>Authors:</strong> 1")
	assert.Contains(t, body, "<strong>Genres:</strong> 1")
}

func TestRouter_CSRFRejectsPostWithoutToken(t *testing.T) {
	app := setupTestApp(t, func(cfg *RouterConfig) {
		cfg.CSRFSecret = []byte("test-secret-key-32-bytes-long!!!")
	})

	w := app.post("/catalog/genre/create", url.Values{"name": {"Fantasy"}})

	assert.Equal(t, http.StatusForbidden, w.Code)
	genres, err := app.catalog.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestRouter_FormsCarryCSRFField(t *testing.T) {
	app := setupTestApp(t, func(cfg *RouterConfig) {
		cfg.CSRFSecret = []byte("test-secret-key-32-bytes-long!!!")
	})

	w := app.get("/catalog/genre/create")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="gorilla.csrf.Token"`)
}

func TestRouter_FlashShownAfterRedirect(t *testing.T) {
	app := setupTestApp(t, func(cfg *RouterConfig) {
		cfg.Sessions = security.NewMemorySessionManager(security.SessionOptions{})
	})

	w := app.post("/catalog/genre/create", url.Values{"name": {"Fantasy"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	page := app.get(w.Header().Get("Location"), cookies...)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `<p class="flash">Genre created.</p>`)

	again := app.get(w.Header().Get("Location"), cookies...)
	assert.NotContains(t, again.Body.String(), "Genre created.")
}

func TestRouter_ActivityListsCatalogChanges(t *testing.T) {
	app := setupTestApp(t)

	w := app.post("/catalog/genre/create", url.Values{"name": {"Fantasy"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	app.audit.Wait()

	page := app.get("/catalog/activity")

	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Created genre: Fantasy")
	assert.Contains(t, page.Body.String(), "1 recorded change(s)")
}

func TestRouter_ActivityOmittedWithoutReader(t *testing.T) {
	app := setupTestApp(t, func(cfg *RouterConfig) {
		cfg.Activity = nil
	})

	w := app.get("/catalog/activity")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
