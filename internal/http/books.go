package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
)

const bookListURL = "/catalog/books"

type BooksController struct {
	views
	books BookService
}

func NewBooksController(books BookService, v views) *BooksController {
	return &BooksController{views: v, books: books}
}

func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.books.ListBooks(c.Request.Context())
	if err != nil {
		bc.renderError(c, err)
		return
	}
	bc.render(c, http.StatusOK, "book_list", gin.H{
		"Title": "Book List",
		"Books": books,
	})
}

func (bc *BooksController) Detail(c *gin.Context) {
	id, ok := bc.idParam(c)
	if !ok {
		return
	}
	detail, err := bc.books.BookDetail(c.Request.Context(), id)
	if err != nil {
		bc.renderError(c, err)
		return
	}
	bc.render(c, http.StatusOK, "book_detail", gin.H{
		"Title":     detail.Book.Title,
		"Book":      detail.Book,
		"Instances": detail.Instances,
	})
}

func (bc *BooksController) CreateForm(c *gin.Context) {
	options, err := bc.books.BookOptions(c.Request.Context())
	if err != nil {
		bc.renderError(c, err)
		return
	}
	bc.renderForm(c, "Create Book", forms.BookForm{}, *options, nil)
}

func (bc *BooksController) Create(c *gin.Context) {
	form, errs, err := bindForm[forms.BookForm](c)
	if err != nil {
		bc.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		bc.rerenderForm(c, "Create Book", form, errs)
		return
	}

	book := form.Book(0)
	if err := bc.books.CreateBook(c.Request.Context(), book, form.GenreIDs()); err != nil {
		bc.renderError(c, err)
		return
	}
	bc.redirect(c, book.URL(), "Book created.")
}

func (bc *BooksController) UpdateForm(c *gin.Context) {
	id, ok := bc.idParam(c)
	if !ok {
		return
	}
	edit, err := bc.books.EditBook(c.Request.Context(), id)
	if err != nil {
		bc.renderError(c, err)
		return
	}
	bc.renderForm(c, "Update Book", forms.BookFormFrom(*edit.Book), edit.BookOptions, nil)
}

func (bc *BooksController) Update(c *gin.Context) {
	id, ok := bc.idParam(c)
	if !ok {
		return
	}
	form, errs, err := bindForm[forms.BookForm](c)
	if err != nil {
		bc.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		bc.rerenderForm(c, "Update Book", form, errs)
		return
	}

	book := form.Book(id)
	if err := bc.books.UpdateBook(c.Request.Context(), book, form.GenreIDs()); err != nil {
		bc.renderError(c, err)
		return
	}
	bc.redirect(c, book.URL(), "Book updated.")
}

func (bc *BooksController) DeleteForm(c *gin.Context) {
	id, ok := bc.idParam(c)
	if !ok {
		return
	}
	d, err := bc.books.InspectBookDelete(c.Request.Context(), id)
	if err != nil {
		bc.renderError(c, err)
		return
	}
	// Only the POST treats a missing record as already deleted.
	if d.Outcome == catalog.DeleteAbsent {
		bc.renderError(c, &catalog.NotFoundError{Kind: catalog.KindBook, ID: id})
		return
	}
	bc.renderDeletion(c, d, "")
}

func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := bc.idParam(c)
	if !ok {
		return
	}
	d, err := bc.books.DeleteBook(c.Request.Context(), id)
	if err != nil {
		bc.renderError(c, err)
		return
	}
	bc.renderDeletion(c, d, "Book deleted.")
}

// rerenderForm shows a rejected submission again with freshly loaded
// author and genre choices.
func (bc *BooksController) rerenderForm(c *gin.Context, title string, form forms.BookForm, errs forms.Errors) {
	options, err := bc.books.BookOptions(c.Request.Context())
	if err != nil {
		bc.renderError(c, err)
		return
	}
	bc.renderForm(c, title, form, *options, errs)
}

func (bc *BooksController) renderForm(c *gin.Context, title string, form forms.BookForm, options catalog.BookOptions, errs forms.Errors) {
	bc.render(c, http.StatusOK, "book_form", gin.H{
		"Title":   title,
		"Form":    form,
		"Authors": options.Authors,
		"Genres":  options.Genres,
		"Errors":  errs,
	})
}

func (bc *BooksController) renderDeletion(c *gin.Context, d *catalog.Deletion[entities.Book, entities.BookInstance], flash string) {
	switch d.Outcome {
	case catalog.DeleteAbsent:
		bc.redirect(c, bookListURL, "")
	case catalog.DeleteDone:
		bc.redirect(c, bookListURL, flash)
	default:
		bc.render(c, http.StatusOK, "book_delete", gin.H{
			"Title":     "Delete Book",
			"Book":      d.Entity,
			"Instances": d.Dependents,
			"Blocked":   d.Outcome == catalog.DeleteBlocked,
		})
	}
}
