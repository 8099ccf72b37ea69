package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestService_BookInstanceDetail(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	author := mustAuthor(t, svc, "Frank", "Herbert")
	book := mustBook(t, svc, "Dune", author)
	c := mustCopy(t, svc, book, "")

	got, err := svc.BookInstanceDetail(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Book.Title)
	assert.Equal(t, entities.StatusMaintenance, got.Status)

	_, err = svc.BookInstanceDetail(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_BookInstanceDetail_DanglingBookIsNotFound(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	author := mustAuthor(t, svc, "Frank", "Herbert")
	book := mustBook(t, svc, "Dune", author)
	c := mustCopy(t, svc, book, entities.StatusAvailable)

	// Bypass the guard to leave the copy dangling.
	require.NoError(t, svc.books.DeleteBook(ctx, book.ID))

	_, err := svc.BookInstanceDetail(ctx, c.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, KindBook, nf.Kind)

	_, err = svc.EditBookInstance(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	d, err := svc.DeleteBookInstance(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteDone, d.Outcome, "orphaned copies can still be deleted")
}

func TestService_CreateBookInstance_UnknownBook(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.CreateBookInstance(context.Background(), &entities.BookInstance{BookID: 5, Imprint: "x"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateBookInstance(t *testing.T) {
	svc, auditor := setupTestService(t)
	ctx := context.Background()
	author := mustAuthor(t, svc, "Frank", "Herbert")
	dune := mustBook(t, svc, "Dune", author)
	messiah := mustBook(t, svc, "Dune Messiah", author)
	c := mustCopy(t, svc, dune, entities.StatusAvailable)
	due := time.Date(2031, time.July, 1, 0, 0, 0, 0, time.UTC)

	err := svc.UpdateBookInstance(ctx, &entities.BookInstance{
		ID: c.ID, BookID: messiah.ID, Imprint: "Gollancz", Status: entities.StatusLoaned, DueBack: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah (Gollancz)", auditor.last().name)

	edit, err := svc.EditBookInstance(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", edit.Instance.Book.Title)
	assert.Equal(t, "2031-07-01", edit.Instance.DueBackISO())
	assert.Len(t, edit.Books, 2)

	err = svc.UpdateBookInstance(ctx, &entities.BookInstance{ID: 999, BookID: dune.ID, Imprint: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteBookInstance(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	author := mustAuthor(t, svc, "Frank", "Herbert")
	c := mustCopy(t, svc, mustBook(t, svc, "Dune", author), entities.StatusAvailable)

	preview, err := svc.InspectBookInstanceDelete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteReady, preview.Outcome)

	d, err := svc.DeleteBookInstance(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteDone, d.Outcome)

	d, err = svc.DeleteBookInstance(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteAbsent, d.Outcome)
}
