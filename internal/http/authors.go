package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
)

const authorListURL = "/catalog/authors"

type AuthorsController struct {
	views
	authors AuthorService
}

func NewAuthorsController(authors AuthorService, v views) *AuthorsController {
	return &AuthorsController{views: v, authors: authors}
}

func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.authors.ListAuthors(c.Request.Context())
	if err != nil {
		ac.renderError(c, err)
		return
	}
	ac.render(c, http.StatusOK, "author_list", gin.H{
		"Title":   "Author List",
		"Authors": authors,
	})
}

func (ac *AuthorsController) Detail(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	detail, err := ac.authors.AuthorDetail(c.Request.Context(), id)
	if err != nil {
		ac.renderError(c, err)
		return
	}
	ac.render(c, http.StatusOK, "author_detail", gin.H{
		"Title":  "Author Detail",
		"Author": detail.Author,
		"Books":  detail.Books,
	})
}

func (ac *AuthorsController) CreateForm(c *gin.Context) {
	ac.renderForm(c, "Create Author", forms.AuthorForm{}, nil)
}

func (ac *AuthorsController) Create(c *gin.Context) {
	form, errs, err := bindForm[forms.AuthorForm](c)
	if err != nil {
		ac.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		ac.renderForm(c, "Create Author", form, errs)
		return
	}

	author := form.Author(0)
	if err := ac.authors.CreateAuthor(c.Request.Context(), author); err != nil {
		ac.renderError(c, err)
		return
	}
	ac.redirect(c, author.URL(), "Author created.")
}

func (ac *AuthorsController) UpdateForm(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	author, err := ac.authors.GetAuthor(c.Request.Context(), id)
	if err != nil {
		ac.renderError(c, err)
		return
	}
	ac.renderForm(c, "Update Author", forms.AuthorFormFrom(*author), nil)
}

func (ac *AuthorsController) Update(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	form, errs, err := bindForm[forms.AuthorForm](c)
	if err != nil {
		ac.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		ac.renderForm(c, "Update Author", form, errs)
		return
	}

	author := form.Author(id)
	if err := ac.authors.UpdateAuthor(c.Request.Context(), author); err != nil {
		ac.renderError(c, err)
		return
	}
	ac.redirect(c, author.URL(), "Author updated.")
}

func (ac *AuthorsController) DeleteForm(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	d, err := ac.authors.InspectAuthorDelete(c.Request.Context(), id)
	if err != nil {
		ac.renderError(c, err)
		return
	}
	// Only the POST treats a missing record as already deleted.
	if d.Outcome == catalog.DeleteAbsent {
		ac.renderError(c, &catalog.NotFoundError{Kind: catalog.KindAuthor, ID: id})
		return
	}
	ac.renderDeletion(c, d, "")
}

func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	d, err := ac.authors.DeleteAuthor(c.Request.Context(), id)
	if err != nil {
		ac.renderError(c, err)
		return
	}
	ac.renderDeletion(c, d, "Author deleted.")
}

func (ac *AuthorsController) renderForm(c *gin.Context, title string, form forms.AuthorForm, errs forms.Errors) {
	ac.render(c, http.StatusOK, "author_form", gin.H{
		"Title":  title,
		"Form":   form,
		"Errors": errs,
	})
}

func (ac *AuthorsController) renderDeletion(c *gin.Context, d *catalog.Deletion[entities.Author, entities.Book], flash string) {
	switch d.Outcome {
	case catalog.DeleteAbsent:
		ac.redirect(c, authorListURL, "")
	case catalog.DeleteDone:
		ac.redirect(c, authorListURL, flash)
	default:
		ac.render(c, http.StatusOK, "author_delete", gin.H{
			"Title":   "Delete Author",
			"Author":  d.Entity,
			"Books":   d.Dependents,
			"Blocked": d.Outcome == catalog.DeleteBlocked,
		})
	}
}
