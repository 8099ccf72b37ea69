package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestService_AuthorDetail(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	asimov := mustAuthor(t, svc, "Isaac", "Asimov")
	bova := mustAuthor(t, svc, "Ben", "Bova")
	mustBook(t, svc, "The Robots of Dawn", asimov)
	mustBook(t, svc, "Foundation", asimov)
	mustBook(t, svc, "Mars", bova)

	detail, err := svc.AuthorDetail(ctx, asimov.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asimov, Isaac", detail.Author.Name())
	require.Len(t, detail.Books, 2)
	assert.Equal(t, "Foundation", detail.Books[0].Title)

	_, err = svc.AuthorDetail(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateAuthor(t *testing.T) {
	svc, auditor := setupTestService(t)
	ctx := context.Background()
	a := mustAuthor(t, svc, "Isaac", "Asimov")
	born := time.Date(1920, time.January, 2, 0, 0, 0, 0, time.UTC)

	err := svc.UpdateAuthor(ctx, &entities.Author{ID: a.ID, FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: &born})
	require.NoError(t, err)
	assert.Equal(t, "update", auditor.last().action)

	got, err := svc.GetAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "1920-01-02", got.ISODateOfBirth())

	err = svc.UpdateAuthor(ctx, &entities.Author{ID: 999, FirstName: "X", FamilyName: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteAuthor(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	asimov := mustAuthor(t, svc, "Isaac", "Asimov")
	book := mustBook(t, svc, "Foundation", asimov)

	d, err := svc.DeleteAuthor(ctx, asimov.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteBlocked, d.Outcome)
	assert.Len(t, d.Dependents, 1)

	bd, err := svc.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, DeleteDone, bd.Outcome)

	d, err = svc.DeleteAuthor(ctx, asimov.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteDone, d.Outcome)

	_, err = svc.GetAuthor(ctx, asimov.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
