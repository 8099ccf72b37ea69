package entities

import (
	"fmt"
	"time"
)

type BookInstanceStatus string

const (
	StatusAvailable   BookInstanceStatus = "Available"
	StatusMaintenance BookInstanceStatus = "Maintenance"
	StatusLoaned      BookInstanceStatus = "Loaned"
	StatusReserved    BookInstanceStatus = "Reserved"
)

// BookInstanceStatuses lists the statuses in the order forms present them.
var BookInstanceStatuses = []BookInstanceStatus{
	StatusMaintenance,
	StatusAvailable,
	StatusLoaned,
	StatusReserved,
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string    `gorm:"type:text" json:"summary"`
	ISBN      string    `gorm:"size:20" json:"isbn"`
	Genres    []Genre   `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (b Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}

// HasGenre reports whether the book is filed under the genre (used to pre-check form boxes).
func (b Book) HasGenre(id uint) bool {
	for _, g := range b.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

// BookInstance is a physical copy of a book that can be borrowed.
type BookInstance struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	BookID    uint               `gorm:"index;not null" json:"book_id"`
	Book      Book               `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint   string             `gorm:"size:256;not null" json:"imprint"`
	Status    BookInstanceStatus `gorm:"index;size:20;default:'Maintenance'" json:"status"`
	DueBack   *time.Time         `gorm:"index" json:"due_back,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (BookInstance) TableName() string {
	return "book_instances"
}

func (bi BookInstance) URL() string {
	return fmt.Sprintf("/catalog/bookinstance/%d", bi.ID)
}

func (bi BookInstance) DueBackFormatted() string {
	return formatDate(bi.DueBack, DisplayDateLayout)
}

func (bi BookInstance) DueBackISO() string {
	return formatDate(bi.DueBack, ISODateLayout)
}

// IsOverdue is true for loaned copies whose due date has passed.
func (bi BookInstance) IsOverdue(now time.Time) bool {
	return bi.Status == StatusLoaned && bi.DueBack != nil && bi.DueBack.Before(now)
}
