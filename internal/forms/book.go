package forms

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type BookForm struct {
	Title   string   `form:"title" json:"title"`
	Author  string   `form:"author" json:"author"`
	Summary string   `form:"summary" json:"summary"`
	ISBN    string   `form:"isbn" json:"isbn"`
	Genre   []string `form:"genre" json:"genre"`
}

func BookFormFrom(b entities.Book) BookForm {
	genres := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		genres = append(genres, formatID(g.ID))
	}
	return BookForm{
		Title:   b.Title,
		Author:  formatID(b.AuthorID),
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genre:   genres,
	}
}

// Sanitize trims every field and drops blank genre values.
func (f *BookForm) Sanitize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Summary = strings.TrimSpace(f.Summary)
	f.ISBN = strings.TrimSpace(f.ISBN)

	genres := make([]string, 0, len(f.Genre))
	for _, g := range f.Genre {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	f.Genre = genres
}

func (f BookForm) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("Title must not be empty")),
		validation.Field(&f.Author,
			validation.Required.Error("Author must not be empty"),
			validation.Match(idPattern).Error("Author must not be empty"),
		),
		validation.Field(&f.Summary, validation.Required.Error("Summary must not be empty")),
		validation.Field(&f.ISBN, validation.Required.Error("ISBN must not be empty")),
		validation.Field(&f.Genre, genreIDs),
	)
	return ordered(err, "title", "author", "summary", "isbn", "genre")
}

var genreIDs = validation.By(func(value any) error {
	ids, _ := value.([]string)
	for _, id := range ids {
		if !idPattern.MatchString(id) {
			return errInvalidGenre
		}
	}
	return nil
})

// HasGenre reports whether the submitted genres include id (used to re-check boxes).
func (f BookForm) HasGenre(id uint) bool {
	want := formatID(id)
	for _, g := range f.Genre {
		if g == want {
			return true
		}
	}
	return false
}

// AuthorID returns the selected author, or zero if none.
func (f BookForm) AuthorID() uint {
	return parseID(f.Author)
}

func (f BookForm) GenreIDs() []uint {
	ids := make([]uint, 0, len(f.Genre))
	for _, g := range f.Genre {
		if id := parseID(g); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Book converts a validated form. Genres are resolved by the caller from GenreIDs.
func (f BookForm) Book(id uint) *entities.Book {
	return &entities.Book{
		ID:       id,
		Title:    f.Title,
		AuthorID: f.AuthorID(),
		Summary:  f.Summary,
		ISBN:     f.ISBN,
	}
}
