package http

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/security"
)

// TemplateFuncs are the helpers available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// selected reports whether a form's string value refers to id.
		"selected": func(id uint, value string) bool {
			return strconv.FormatUint(uint64(id), 10) == value
		},
		"statusClass": func(s entities.BookInstanceStatus) string {
			switch s {
			case entities.StatusAvailable:
				return "text-success"
			case entities.StatusMaintenance:
				return "text-danger"
			default:
				return "text-warning"
			}
		},
		"derefID": func(id *uint) uint {
			if id == nil {
				return 0
			}
			return *id
		},
	}
}

// LoadTemplates parses every page template under dir.
func LoadTemplates(dir string) (*template.Template, error) {
	return template.New("").Funcs(TemplateFuncs()).ParseGlob(filepath.Join(dir, "*.html"))
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())

	if cfg.RequestTimeout > 0 {
		router.Use(RequestTimeout(cfg.RequestTimeout))
	}

	// Apply security headers to all responses
	router.Use(security.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSession())
	}

	router.SetHTMLTemplate(template.Must(LoadTemplates(cfg.TemplatesPath)))

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	v := views{sessions: cfg.Sessions}
	var store StorePinger
	if cfg.Database != nil {
		store = cfg.Database
	}
	health := NewHealthController(store, cfg.Catalog, cfg.Version)
	home := NewHomeController(cfg.Catalog, v)
	genres := NewGenresController(cfg.Catalog, v)
	authors := NewAuthorsController(cfg.Catalog, v)
	books := NewBooksController(cfg.Catalog, v)
	instances := NewBookInstancesController(cfg.Catalog, v)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	catalog := router.Group("/catalog")
	catalog.GET("", home.Index)

	catalog.GET("/genres", genres.List)
	catalog.GET("/genre/create", genres.CreateForm)
	catalog.POST("/genre/create", genres.Create)
	catalog.GET("/genre/:id", genres.Detail)
	catalog.GET("/genre/:id/update", genres.UpdateForm)
	catalog.POST("/genre/:id/update", genres.Update)
	catalog.GET("/genre/:id/delete", genres.DeleteForm)
	catalog.POST("/genre/:id/delete", genres.Delete)

	catalog.GET("/authors", authors.List)
	catalog.GET("/author/create", authors.CreateForm)
	catalog.POST("/author/create", authors.Create)
	catalog.GET("/author/:id", authors.Detail)
	catalog.GET("/author/:id/update", authors.UpdateForm)
	catalog.POST("/author/:id/update", authors.Update)
	catalog.GET("/author/:id/delete", authors.DeleteForm)
	catalog.POST("/author/:id/delete", authors.Delete)

	catalog.GET("/books", books.List)
	catalog.GET("/book/create", books.CreateForm)
	catalog.POST("/book/create", books.Create)
	catalog.GET("/book/:id", books.Detail)
	catalog.GET("/book/:id/update", books.UpdateForm)
	catalog.POST("/book/:id/update", books.Update)
	catalog.GET("/book/:id/delete", books.DeleteForm)
	catalog.POST("/book/:id/delete", books.Delete)

	catalog.GET("/bookinstances", instances.List)
	catalog.GET("/bookinstance/create", instances.CreateForm)
	catalog.POST("/bookinstance/create", instances.Create)
	catalog.GET("/bookinstance/:id", instances.Detail)
	catalog.GET("/bookinstance/:id/update", instances.UpdateForm)
	catalog.POST("/bookinstance/:id/update", instances.Update)
	catalog.GET("/bookinstance/:id/delete", instances.DeleteForm)
	catalog.POST("/bookinstance/:id/delete", instances.Delete)

	if cfg.Activity != nil {
		activity := NewActivityController(cfg.Activity, v)
		catalog.GET("/activity", activity.Page)
	}

	router.NoRoute(func(c *gin.Context) {
		v.renderStatus(c, http.StatusNotFound, "Not Found", "No page lives at "+c.Request.URL.Path+".")
	})

	return router
}
