package forms

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type AuthorForm struct {
	FirstName   string `form:"first_name" json:"first_name"`
	FamilyName  string `form:"family_name" json:"family_name"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death"`
}

// AuthorFormFrom pre-fills the form from a stored author.
func AuthorFormFrom(a entities.Author) AuthorForm {
	return AuthorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: a.ISODateOfBirth(),
		DateOfDeath: a.ISODateOfDeath(),
	}
}

func (f *AuthorForm) Sanitize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.FamilyName = strings.TrimSpace(f.FamilyName)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.DateOfDeath = strings.TrimSpace(f.DateOfDeath)
}

func (f AuthorForm) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.FirstName,
			validation.Required.Error("First name must be specified"),
			validation.RuneLength(0, 100).Error("First name must be at most 100 characters"),
		),
		validation.Field(&f.FamilyName,
			validation.Required.Error("Family name must be specified"),
			validation.RuneLength(0, 100).Error("Family name must be at most 100 characters"),
		),
		validation.Field(&f.DateOfBirth, optionalDate),
		validation.Field(&f.DateOfDeath, optionalDate),
	)
	return ordered(err, "first_name", "family_name", "date_of_birth", "date_of_death")
}

// Author converts a validated form. id is zero for new authors.
func (f AuthorForm) Author(id uint) *entities.Author {
	born, _ := ParseDate(f.DateOfBirth)
	died, _ := ParseDate(f.DateOfDeath)
	return &entities.Author{
		ID:          id,
		FirstName:   f.FirstName,
		FamilyName:  f.FamilyName,
		DateOfBirth: born,
		DateOfDeath: died,
	}
}
