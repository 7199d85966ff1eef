package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"libris/internal/errors"
	"libris/internal/model"
)

// BookRepository defines book persistence operations.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	Search(ctx context.Context, term string) ([]model.Book, error)
	Delete(ctx context.Context, id uint) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// FindByID finds a book by ID.
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByISBN finds a book by ISBN.
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Search lists all books, or those whose title contains term.
func (r *bookRepository) Search(ctx context.Context, term string) ([]model.Book, error) {
	q := r.db.WithContext(ctx)
	if term != "" {
		q = q.Where("title LIKE ?", "%"+term+"%")
	}
	var books []model.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Delete hard-deletes a book. The delete is refused while any unreturned loan
// still references the book; check and delete share one transaction so a
// concurrent borrow cannot slip between them.
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&model.Borrowing{}).
			Where("book_id = ? AND status = ?", id, model.LoanStatusBorrowed).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return errors.ErrBookHasActiveLoans
		}

		return tx.Delete(&model.Book{}, id).Error
	})
}
