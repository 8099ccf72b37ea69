package forms

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type GenreForm struct {
	Name string `form:"name" json:"name"`
}

func GenreFormFrom(g entities.Genre) GenreForm {
	return GenreForm{Name: g.Name}
}

func (f *GenreForm) Sanitize() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f GenreForm) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("Genre name required"),
			validation.RuneLength(3, 100).Error("Genre must be 3-100 characters"),
		),
	)
	return ordered(err, "name")
}
