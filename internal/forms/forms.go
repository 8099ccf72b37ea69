// Package forms sanitizes and validates catalog form submissions.
//
// Each form struct binds with gin (form tags), trims its fields in Sanitize,
// and reports problems from Validate as an ordered Errors list so templates
// can show them next to the re-rendered, sanitized input.
package forms

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// FieldError is a single validation message for a form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors lists validation failures in form field order.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// For returns the first message for field, or "".
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// AsErrors extracts validation errors from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	ok := errors.As(err, &errs)
	return errs, ok
}

var (
	errInvalidDate  = validation.NewError("validation_invalid_date", "Invalid date")
	errInvalidGenre = validation.NewError("validation_invalid_genre", "Invalid genre")
	idPattern       = regexp.MustCompile(`^[0-9]+$`)
)

// ordered turns ozzo's field map into Errors following the order of fields.
// Errors that are not validation failures are returned unchanged.
func ordered(err error, fields ...string) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, f := range fields {
		if fe, ok := verrs[f]; ok {
			out = append(out, FieldError{Field: f, Message: fe.Error()})
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseDate parses YYYY-MM-DD or RFC 3339. An empty string means no date.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(entities.ISODateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		t = t.UTC()
	}
	return &t, nil
}

// optionalDate passes empty strings and rejects anything ParseDate can't read.
var optionalDate = validation.By(func(value any) error {
	s, _ := value.(string)
	if _, err := ParseDate(s); err != nil {
		return errInvalidDate
	}
	return nil
})

func parseID(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 64)
	return uint(id)
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
