package forms

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type BookInstanceForm struct {
	Book    string `form:"book" json:"book"`
	Imprint string `form:"imprint" json:"imprint"`
	Status  string `form:"status" json:"status"`
	DueBack string `form:"due_back" json:"due_back"`
}

func BookInstanceFormFrom(bi entities.BookInstance) BookInstanceForm {
	return BookInstanceForm{
		Book:    formatID(bi.BookID),
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBackISO(),
	}
}

// Sanitize trims every field; an empty status becomes Maintenance.
func (f *BookInstanceForm) Sanitize() {
	f.Book = strings.TrimSpace(f.Book)
	f.Imprint = strings.TrimSpace(f.Imprint)
	f.Status = strings.TrimSpace(f.Status)
	f.DueBack = strings.TrimSpace(f.DueBack)
	if f.Status == "" {
		f.Status = string(entities.StatusMaintenance)
	}
}

func (f BookInstanceForm) Validate() error {
	statuses := make([]any, len(entities.BookInstanceStatuses))
	for i, s := range entities.BookInstanceStatuses {
		statuses[i] = string(s)
	}

	err := validation.ValidateStruct(&f,
		validation.Field(&f.Book,
			validation.Required.Error("Book must be specified"),
			validation.Match(idPattern).Error("Book must be specified"),
		),
		validation.Field(&f.Imprint, validation.Required.Error("Imprint must be specified")),
		validation.Field(&f.Status, validation.In(statuses...).Error("Invalid status")),
		validation.Field(&f.DueBack, optionalDate),
	)
	return ordered(err, "book", "imprint", "status", "due_back")
}

// BookID returns the selected book, or zero if none.
func (f BookInstanceForm) BookID() uint {
	return parseID(f.Book)
}

// Instance converts a validated form. id is zero for new copies.
func (f BookInstanceForm) Instance(id uint) *entities.BookInstance {
	due, _ := ParseDate(f.DueBack)
	return &entities.BookInstance{
		ID:      id,
		BookID:  f.BookID(),
		Imprint: f.Imprint,
		Status:  entities.BookInstanceStatus(f.Status),
		DueBack: due,
	}
}
