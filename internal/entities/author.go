package entities

import (
	"fmt"
	"time"
)

// Date layouts used by derived date fields.
const (
	DisplayDateLayout = "Jan 2, 2006"
	ISODateLayout     = "2006-01-02"
)

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100;not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

// Name returns "Family, First", or an empty string unless both parts are set.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

// FormattedDateOfBirth returns "unknown" when the date is not recorded.
func (a Author) FormattedDateOfBirth() string {
	if a.DateOfBirth == nil {
		return "unknown"
	}
	return a.DateOfBirth.Format(DisplayDateLayout)
}

func (a Author) FormattedDateOfDeath() string {
	return formatDate(a.DateOfDeath, DisplayDateLayout)
}

func (a Author) ISODateOfBirth() string {
	return formatDate(a.DateOfBirth, ISODateLayout)
}

func (a Author) ISODateOfDeath() string {
	return formatDate(a.DateOfDeath, ISODateLayout)
}

// Lifespan renders "birth - death" for list and detail pages.
func (a Author) Lifespan() string {
	return a.FormattedDateOfBirth() + " - " + a.FormattedDateOfDeath()
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
