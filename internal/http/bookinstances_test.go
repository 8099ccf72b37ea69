package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestBookInstancesController_List(t *testing.T) {
	app := setupTestApp(t)
	book := app.book(t, "Dune", app.author(t, "Frank", "Herbert"))
	app.copyOf(t, book, entities.StatusAvailable)

	w := app.get("/catalog/bookinstances")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune : Gollancz, 2011")
	assert.Contains(t, w.Body.String(), `<span class="text-success">Available</span>`)
}

func TestBookInstancesController_Detail(t *testing.T) {
	app := setupTestApp(t)
	book := app.book(t, "Dune", app.author(t, "Frank", "Herbert"))
	instance := app.copyOf(t, book, entities.StatusMaintenance)

	w := app.get(instance.URL())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gollancz, 2011")
	assert.Contains(t, w.Body.String(), "Maintenance")
}

func TestBookInstancesController_DetailWithMissingBookIsNotFound(t *testing.T) {
	app := setupTestApp(t)
	book := app.book(t, "Dune", app.author(t, "Frank", "Herbert"))
	instance := app.copyOf(t, book, entities.StatusAvailable)
	// Bypass the delete guard to leave the copy dangling.
	require.NoError(t, books.NewRepository(app.db.DB).DeleteBook(context.Background(), book.ID))

	assert.Equal(t, http.StatusNotFound, app.get(instance.URL()).Code)
	assert.Equal(t, http.StatusNotFound, app.get(instance.URL()+"/update").Code)

	// The orphan can still be removed.
	confirm := app.get(instance.URL() + "/delete")
	require.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), "(book no longer exists)")
	assert.Equal(t, http.StatusSeeOther, app.post(instance.URL()+"/delete", nil).Code)
}

func TestBookInstancesController_CreateFormPreselectsBook(t *testing.T) {
	app := setupTestApp(t)
	app.book(t, "Dune", app.author(t, "Frank", "Herbert"))

	w := app.get("/catalog/bookinstance/create?book=1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="1" selected>Dune</option>`)
	assert.Contains(t, w.Body.String(), `<option value="Maintenance" selected>Maintenance</option>`)
}

func TestBookInstancesController_Create(t *testing.T) {
	app := setupTestApp(t)
	book := app.book(t, "Dune", app.author(t, "Frank", "Herbert"))

	w := app.post("/catalog/bookinstance/create", url.Values{
		"book":     {fmt.Sprint(book.ID)},
		"imprint":  {"Ace, 1990"},
		"status":   {"Loaned"},
		"due_back": {"2030-05-01"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/bookinstance/1", w.Header().Get("Location"))

	instance, err := app.catalog.BookInstanceDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusLoaned, instance.Status)
	assert.Equal(t, "2030-05-01", instance.DueBackISO())
}

func TestBookInstancesController_CreateInvalid(t *testing.T) {
	app := setupTestApp(t)
	app.book(t, "Dune", app.author(t, "Frank", "Herbert"))

	w := app.post("/catalog/bookinstance/create", url.Values{
		"book":     {"1"},
		"status":   {"Lost"},
		"due_back": {"someday"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Imprint must be specified")
	assert.Contains(t, body, "Invalid status")
	assert.Contains(t, body, "Invalid date")
	assert.Contains(t, body, `<option value="1" selected>Dune</option>`)
	assert.Contains(t, body, `value="someday"`)
}

func TestBookInstancesController_CreateUnknownBook(t *testing.T) {
	app := setupTestApp(t)

	w := app.post("/catalog/bookinstance/create", url.Values{
		"book":    {"8"},
		"imprint": {"Ace, 1990"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookInstancesController_Update(t *testing.T) {
	app := setupTestApp(t)
	book := app.book(t, "Dune", app.author(t, "Frank", "Herbert"))
	instance := app.copyOf(t, book, entities.StatusLoaned)

	form := app.get(instance.URL() + "/update")
	require.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `<option value="Loaned" selected>Loaned</option>`)

	w := app.post(instance.URL()+"/update", url.Values{
		"book":    {fmt.Sprint(book.ID)},
		"imprint": {"Gollancz, 2011"},
		"status":  {"Available"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	updated, err := app.catalog.BookInstanceDetail(context.Background(), instance.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, updated.Status)
}

func TestBookInstancesController_Delete(t *testing.T) {
	app := setupTestApp(t)
	book := app.book(t, "Dune", app.author(t, "Frank", "Herbert"))
	instance := app.copyOf(t, book, entities.StatusAvailable)

	confirm := app.get(instance.URL() + "/delete")
	require.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), "Do you really want to delete this BookInstance?")

	w := app.post(instance.URL()+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, bookInstanceListURL, w.Header().Get("Location"))

	missing := app.get(instance.URL() + "/delete")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), "not found")

	again := app.post(instance.URL()+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, again.Code)
	assert.Equal(t, bookInstanceListURL, again.Header().Get("Location"))
}
