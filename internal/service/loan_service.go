package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"libris/internal/cache"
	"libris/internal/errors"
	"libris/internal/model"
	"libris/internal/repository"
)

// dueDateLayouts are the accepted wire formats for a borrow due date.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// LoanRecord is a borrowing enriched with overdue classification and the
// accrued fine.
type LoanRecord struct {
	model.Borrowing
	Overdue bool            `json:"overdue"`
	Fine    decimal.Decimal `json:"fine"`
}

// LoanService handles borrowing, returning, and loan listings.
type LoanService interface {
	Borrow(ctx context.Context, userID, bookID uint, dueDate string) (*model.Borrowing, error)
	Return(ctx context.Context, borrowID uint) (*model.Borrowing, error)
	MyHistory(ctx context.Context, userID uint) ([]LoanRecord, error)
	AllBorrows(ctx context.Context) ([]LoanRecord, error)
}

type loanService struct {
	borrowRepo repository.BorrowingRepository
	fines      *FineCalculator
	cache      *cache.Client
}

// NewLoanService creates a new loan service.
func NewLoanService(borrowRepo repository.BorrowingRepository, fines *FineCalculator, cache *cache.Client) LoanService {
	return &loanService{
		borrowRepo: borrowRepo,
		fines:      fines,
		cache:      cache,
	}
}

// Borrow lends one copy of a book to the user until dueDate. The inventory
// transition itself is atomic inside the repository; this layer validates the
// due date and invalidates the catalog cache on success.
func (s *loanService) Borrow(ctx context.Context, userID, bookID uint, dueDate string) (*model.Borrowing, error) {
	due, err := parseDueDate(dueDate)
	if err != nil {
		return nil, err
	}
	if !due.After(time.Now()) {
		return nil, errors.ErrInvalidDueDate
	}

	borrowing, err := s.borrowRepo.Borrow(ctx, userID, bookID, due)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.CatalogKey)
	return borrowing, nil
}

// Return closes the loan and restocks the book.
func (s *loanService) Return(ctx context.Context, borrowID uint) (*model.Borrowing, error) {
	borrowing, err := s.borrowRepo.Return(ctx, borrowID)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.CatalogKey)
	return borrowing, nil
}

// MyHistory returns the user's loans, newest first, with the linked book and
// overdue/fine classification.
func (s *loanService) MyHistory(ctx context.Context, userID uint) ([]LoanRecord, error) {
	borrowings, err := s.borrowRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrich(borrowings), nil
}

// AllBorrows returns every loan with borrower and book, newest first.
func (s *loanService) AllBorrows(ctx context.Context) ([]LoanRecord, error) {
	borrowings, err := s.borrowRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(borrowings), nil
}

func (s *loanService) enrich(borrowings []model.Borrowing) []LoanRecord {
	now := time.Now()
	records := make([]LoanRecord, 0, len(borrowings))
	for i := range borrowings {
		b := borrowings[i]
		records = append(records, LoanRecord{
			Borrowing: b,
			Overdue:   b.Overdue(now),
			Fine:      s.fines.Accrued(&b, now),
		})
	}
	return records
}

func parseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ErrInvalidDueDate
}
