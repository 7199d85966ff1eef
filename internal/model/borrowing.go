package model

import "time"

// LoanStatus represents the lifecycle state of a borrowing record.
type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "borrowed"
	LoanStatusReturned LoanStatus = "returned"
)

// Borrowing is one loan event: a user holding one copy of a book until a due
// date. The only transition is borrowed -> returned, performed by an admin;
// records are never deleted, so a user accumulates one row per borrow.
type Borrowing struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	BookID     uint       `json:"book_id" gorm:"not null;index"`
	Status     LoanStatus `json:"status" gorm:"type:varchar(20);not null;default:'borrowed';index"`
	DueDate    time.Time  `json:"dueDate" gorm:"not null"`
	ReturnDate *time.Time `json:"returnDate"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations. References are logical: closed loan rows outlive a deleted
	// book, so migration does not generate database-level constraints.
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Book Book `json:"book,omitempty" gorm:"foreignKey:BookID"`
}

// Overdue reports whether the loan is past due and still outstanding.
func (b *Borrowing) Overdue(now time.Time) bool {
	return b.Status == LoanStatusBorrowed && now.After(b.DueDate)
}
