package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"libris/internal/errors"
	"libris/internal/model"
)

// BorrowingRepository defines loan persistence operations. Borrow and Return
// are the atomic state transitions of the inventory: each runs as a single
// transaction with row locks, so quantity and available always move together
// and quantity can never go negative.
type BorrowingRepository interface {
	Borrow(ctx context.Context, userID, bookID uint, dueDate time.Time) (*model.Borrowing, error)
	Return(ctx context.Context, borrowID uint) (*model.Borrowing, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Borrowing, error)
	ListAll(ctx context.Context) ([]model.Borrowing, error)
}

type borrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository creates a new borrowing repository.
func NewBorrowingRepository(db *gorm.DB) BorrowingRepository {
	return &borrowingRepository{db: db}
}

// Borrow creates a loan record and decrements the book's stock atomically.
// A missing, flagged-unavailable, or out-of-stock book fails with
// ErrBookNotAvailable and leaves no trace.
func (r *borrowingRepository) Borrow(ctx context.Context, userID, bookID uint, dueDate time.Time) (*model.Borrowing, error) {
	var borrowing *model.Borrowing
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "id = ?", bookID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookNotAvailable
			}
			return err
		}

		if !book.Available || book.Quantity < 1 {
			return errors.ErrBookNotAvailable
		}

		// Quantity and available are written together from the locked
		// snapshot; the quantity guard turns any lost race into a no-op.
		newQuantity := book.Quantity - 1
		res := tx.Model(&model.Book{}).
			Where("id = ? AND quantity = ?", book.ID, book.Quantity).
			Updates(map[string]interface{}{
				"quantity":  newQuantity,
				"available": newQuantity > 0,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.ErrBookNotAvailable
		}

		b := &model.Borrowing{
			UserID:  userID,
			BookID:  bookID,
			Status:  model.LoanStatusBorrowed,
			DueDate: dueDate,
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		borrowing = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return borrowing, nil
}

// Return closes a loan and restocks the book atomically. A loan already in
// the returned state fails with ErrAlreadyReturned and increments nothing,
// even against a concurrent return of the same loan.
func (r *borrowingRepository) Return(ctx context.Context, borrowID uint) (*model.Borrowing, error) {
	var borrowing model.Borrowing
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&borrowing, "id = ?", borrowID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBorrowNotFound
			}
			return err
		}

		if borrowing.Status == model.LoanStatusReturned {
			return errors.ErrAlreadyReturned
		}

		now := time.Now()
		if err := tx.Model(&borrowing).
			Updates(map[string]interface{}{
				"status":      model.LoanStatusReturned,
				"return_date": now,
			}).Error; err != nil {
			return err
		}
		borrowing.Status = model.LoanStatusReturned
		borrowing.ReturnDate = &now

		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "id = ?", borrowing.BookID).Error; err != nil {
			return err
		}

		// Post-increment stock is always positive, so available flips true.
		return tx.Model(&model.Book{}).
			Where("id = ?", book.ID).
			Updates(map[string]interface{}{
				"quantity":  book.Quantity + 1,
				"available": true,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// ListByUser returns a user's loan history with the linked book preloaded.
func (r *borrowingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Borrowing, error) {
	var borrowings []model.Borrowing
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&borrowings).Error; err != nil {
		return nil, err
	}
	return borrowings, nil
}

// ListAll returns every loan with borrower and book preloaded, newest first.
func (r *borrowingRepository) ListAll(ctx context.Context) ([]model.Borrowing, error) {
	var borrowings []model.Borrowing
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Order("created_at DESC").
		Find(&borrowings).Error; err != nil {
		return nil, err
	}
	return borrowings, nil
}
