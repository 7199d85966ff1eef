package model

import "time"

// Book represents a catalog entry with its inventory counters.
// Available must always equal quantity > 0 once a borrow or return commits;
// both columns are written together inside the loan transactions.
type Book struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null;index"`
	Author     string    `json:"author" gorm:"size:255;not null"`
	ISBN       *string   `json:"isbn" gorm:"uniqueIndex;size:32"`
	Quantity   int       `json:"quantity" gorm:"not null;default:1"`
	Available  bool      `json:"available" gorm:"not null;default:true;index"`
	CoverImage string    `json:"coverImage,omitempty" gorm:"size:255"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Borrowings []Borrowing `json:"-" gorm:"foreignKey:BookID"`
}
