package http

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorsController_List(t *testing.T) {
	app := setupTestApp(t)
	app.author(t, "Isaac", "Asimov")
	app.author(t, "Jane", "Austen")

	w := app.get("/catalog/authors")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Asimov, Isaac")
	assert.Less(t, indexOf(body, "Asimov"), indexOf(body, "Austen"))
}

func TestAuthorsController_Create(t *testing.T) {
	app := setupTestApp(t)

	w := app.post("/catalog/author/create", url.Values{
		"first_name":    {" Isaac "},
		"family_name":   {"Asimov"},
		"date_of_birth": {"1920-01-02"},
		"date_of_death": {"1992-04-06"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/author/1", w.Header().Get("Location"))

	author, err := app.catalog.GetAuthor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Isaac", author.FirstName)
	assert.Equal(t, "1920-01-02", author.ISODateOfBirth())
	assert.Equal(t, "1992-04-06", author.ISODateOfDeath())
}

func TestAuthorsController_CreateInvalidRerendersInOrder(t *testing.T) {
	app := setupTestApp(t)

	w := app.post("/catalog/author/create", url.Values{
		"first_name":    {""},
		"family_name":   {""},
		"date_of_birth": {"not-a-date"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	first := indexOf(body, "First name must be specified")
	family := indexOf(body, "Family name must be specified")
	date := indexOf(body, "Invalid date")
	require.True(t, first >= 0 && family >= 0 && date >= 0, body)
	assert.Less(t, first, family)
	assert.Less(t, family, date)
	assert.Contains(t, body, `value="not-a-date"`)
}

func TestAuthorsController_Detail(t *testing.T) {
	app := setupTestApp(t)
	author := app.author(t, "Isaac", "Asimov")
	app.book(t, "Foundation", author)

	w := app.get(author.URL())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Author: Asimov, Isaac")
	assert.Contains(t, w.Body.String(), "Foundation")
}

func TestAuthorsController_DetailNotFound(t *testing.T) {
	app := setupTestApp(t)

	w := app.get("/catalog/author/3")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorsController_UpdateClearsDates(t *testing.T) {
	app := setupTestApp(t)
	author := app.author(t, "Isaac", "Asimov")

	form := app.get(author.URL() + "/update")
	require.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `value="Asimov"`)

	w := app.post(author.URL()+"/update", url.Values{
		"first_name":  {"Isaac"},
		"family_name": {"Azimov"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	updated, err := app.catalog.GetAuthor(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Azimov", updated.FamilyName)
	assert.Nil(t, updated.DateOfBirth)
}

func TestAuthorsController_UpdateMissing(t *testing.T) {
	app := setupTestApp(t)

	w := app.post("/catalog/author/5/update", url.Values{
		"first_name":  {"Isaac"},
		"family_name": {"Asimov"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorsController_DeleteBlockedByBooks(t *testing.T) {
	app := setupTestApp(t)
	author := app.author(t, "Isaac", "Asimov")
	app.book(t, "Foundation", author)

	w := app.post(author.URL()+"/delete", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delete the following books before attempting to delete this author.")
	assert.Contains(t, w.Body.String(), "Foundation")

	_, err := app.catalog.GetAuthor(context.Background(), author.ID)
	assert.NoError(t, err)
}

func TestAuthorsController_Delete(t *testing.T) {
	app := setupTestApp(t)
	author := app.author(t, "Isaac", "Asimov")

	w := app.post(author.URL()+"/delete", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, authorListURL, w.Header().Get("Location"))

	again := app.get(author.URL() + "/delete")
	assert.Equal(t, http.StatusSeeOther, again.Code)
	assert.Equal(t, authorListURL, again.Header().Get("Location"))
}

func TestAuthorsController_DeleteMissing(t *testing.T) {
	app := setupTestApp(t)

	get := app.get("/catalog/author/99/delete")
	assert.Equal(t, http.StatusNotFound, get.Code)
	assert.Contains(t, get.Body.String(), "author 99 not found")

	post := app.post("/catalog/author/99/delete", nil)
	assert.Equal(t, http.StatusSeeOther, post.Code)
	assert.Equal(t, authorListURL, post.Header().Get("Location"))
}
