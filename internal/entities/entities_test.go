package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthor_Name(t *testing.T) {
	assert.Equal(t, "Rothfuss, Patrick", Author{FirstName: "Patrick", FamilyName: "Rothfuss"}.Name())
	assert.Equal(t, "", Author{FirstName: "Patrick"}.Name())
	assert.Equal(t, "", Author{FamilyName: "Rothfuss"}.Name())
}

func TestAuthor_Dates(t *testing.T) {
	t.Run("formats recorded dates", func(t *testing.T) {
		a := Author{ID: 7, DateOfBirth: date(1973, time.June, 6), DateOfDeath: date(2020, time.January, 2)}

		assert.Equal(t, "Jun 6, 1973", a.FormattedDateOfBirth())
		assert.Equal(t, "Jan 2, 2020", a.FormattedDateOfDeath())
		assert.Equal(t, "1973-06-06", a.ISODateOfBirth())
		assert.Equal(t, "2020-01-02", a.ISODateOfDeath())
		assert.Equal(t, "Jun 6, 1973 - Jan 2, 2020", a.Lifespan())
		assert.Equal(t, "/catalog/author/7", a.URL())
	})

	t.Run("uses sentinels for missing dates", func(t *testing.T) {
		a := Author{}

		assert.Equal(t, "unknown", a.FormattedDateOfBirth())
		assert.Equal(t, "", a.FormattedDateOfDeath())
		assert.Equal(t, "", a.ISODateOfBirth())
		assert.Equal(t, "", a.ISODateOfDeath())
	})
}

func TestBookInstance_IsOverdue(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, BookInstance{Status: StatusLoaned, DueBack: date(2024, time.March, 1)}.IsOverdue(now))
	assert.False(t, BookInstance{Status: StatusLoaned, DueBack: date(2024, time.April, 1)}.IsOverdue(now))
	assert.False(t, BookInstance{Status: StatusLoaned}.IsOverdue(now))
	assert.False(t, BookInstance{Status: StatusAvailable, DueBack: date(2024, time.March, 1)}.IsOverdue(now))
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/catalog/genre/3", Genre{ID: 3}.URL())
	assert.Equal(t, "/catalog/book/4", Book{ID: 4}.URL())
	assert.Equal(t, "/catalog/bookinstance/5", BookInstance{ID: 5}.URL())
}

func TestBook_HasGenre(t *testing.T) {
	b := Book{Genres: []Genre{{ID: 1}, {ID: 4}}}

	assert.True(t, b.HasGenre(4))
	assert.False(t, b.HasGenre(2))
}
