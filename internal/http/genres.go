package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
)

const genreListURL = "/catalog/genres"

type GenresController struct {
	views
	genres GenreService
}

func NewGenresController(genres GenreService, v views) *GenresController {
	return &GenresController{views: v, genres: genres}
}

func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.genres.ListGenres(c.Request.Context())
	if err != nil {
		gc.renderError(c, err)
		return
	}
	gc.render(c, http.StatusOK, "genre_list", gin.H{
		"Title":  "Genre List",
		"Genres": genres,
	})
}

func (gc *GenresController) Detail(c *gin.Context) {
	id, ok := gc.idParam(c)
	if !ok {
		return
	}
	detail, err := gc.genres.GenreDetail(c.Request.Context(), id)
	if err != nil {
		gc.renderError(c, err)
		return
	}
	gc.render(c, http.StatusOK, "genre_detail", gin.H{
		"Title": "Genre Detail",
		"Genre": detail.Genre,
		"Books": detail.Books,
	})
}

func (gc *GenresController) CreateForm(c *gin.Context) {
	gc.renderForm(c, http.StatusOK, "Create Genre", forms.GenreForm{}, nil)
}

// Create redirects to the genre with the submitted name, creating it only
// when no genre has exactly that name.
func (gc *GenresController) Create(c *gin.Context) {
	form, errs, err := bindForm[forms.GenreForm](c)
	if err != nil {
		gc.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		gc.renderForm(c, http.StatusOK, "Create Genre", form, errs)
		return
	}

	genre, created, err := gc.genres.CreateGenre(c.Request.Context(), form.Name)
	if err != nil {
		gc.renderError(c, err)
		return
	}
	flash := "Genre created."
	if !created {
		flash = "Genre already exists."
	}
	gc.redirect(c, genre.URL(), flash)
}

func (gc *GenresController) UpdateForm(c *gin.Context) {
	id, ok := gc.idParam(c)
	if !ok {
		return
	}
	genre, err := gc.genres.GetGenre(c.Request.Context(), id)
	if err != nil {
		gc.renderError(c, err)
		return
	}
	gc.renderForm(c, http.StatusOK, "Update Genre", forms.GenreFormFrom(*genre), nil)
}

func (gc *GenresController) Update(c *gin.Context) {
	id, ok := gc.idParam(c)
	if !ok {
		return
	}
	form, errs, err := bindForm[forms.GenreForm](c)
	if err != nil {
		gc.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		gc.renderForm(c, http.StatusOK, "Update Genre", form, errs)
		return
	}

	genre, err := gc.genres.UpdateGenre(c.Request.Context(), id, form.Name)
	if err != nil {
		gc.renderError(c, err)
		return
	}
	gc.redirect(c, genre.URL(), "Genre updated.")
}

func (gc *GenresController) DeleteForm(c *gin.Context) {
	id, ok := gc.idParam(c)
	if !ok {
		return
	}
	d, err := gc.genres.InspectGenreDelete(c.Request.Context(), id)
	if err != nil {
		gc.renderError(c, err)
		return
	}
	// Only the POST treats a missing record as already deleted.
	if d.Outcome == catalog.DeleteAbsent {
		gc.renderError(c, &catalog.NotFoundError{Kind: catalog.KindGenre, ID: id})
		return
	}
	gc.renderDeletion(c, d, "")
}

func (gc *GenresController) Delete(c *gin.Context) {
	id, ok := gc.idParam(c)
	if !ok {
		return
	}
	d, err := gc.genres.DeleteGenre(c.Request.Context(), id)
	if err != nil {
		gc.renderError(c, err)
		return
	}
	gc.renderDeletion(c, d, "Genre deleted.")
}

func (gc *GenresController) renderForm(c *gin.Context, status int, title string, form forms.GenreForm, errs forms.Errors) {
	gc.render(c, status, "genre_form", gin.H{
		"Title":  title,
		"Form":   form,
		"Errors": errs,
	})
}

// renderDeletion redirects to the list once the genre is gone and otherwise
// shows the confirmation, listing blocking books.
func (gc *GenresController) renderDeletion(c *gin.Context, d *catalog.Deletion[entities.Genre, entities.Book], flash string) {
	switch d.Outcome {
	case catalog.DeleteAbsent:
		gc.redirect(c, genreListURL, "")
	case catalog.DeleteDone:
		gc.redirect(c, genreListURL, flash)
	default:
		gc.render(c, http.StatusOK, "genre_delete", gin.H{
			"Title":   "Delete Genre",
			"Genre":   d.Entity,
			"Books":   d.Dependents,
			"Blocked": d.Outcome == catalog.DeleteBlocked,
		})
	}
}
