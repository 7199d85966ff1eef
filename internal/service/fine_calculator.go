package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"libris/internal/model"
)

// FineCalculator computes the fine accrued on a late loan: the daily rate
// times the number of full days past the due date. A loan closed late keeps
// accruing until its return date, then freezes.
type FineCalculator struct {
	dailyRate decimal.Decimal
}

// NewFineCalculator builds a calculator from a decimal rate string.
func NewFineCalculator(dailyRate string) (*FineCalculator, error) {
	rate, err := decimal.NewFromString(dailyRate)
	if err != nil {
		return nil, fmt.Errorf("parse daily fine rate %q: %w", dailyRate, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("daily fine rate %q is negative", dailyRate)
	}
	return &FineCalculator{dailyRate: rate}, nil
}

// Accrued returns the fine owed on the loan as of now.
func (f *FineCalculator) Accrued(b *model.Borrowing, now time.Time) decimal.Decimal {
	end := now
	if b.Status == model.LoanStatusReturned && b.ReturnDate != nil {
		end = *b.ReturnDate
	}
	if !end.After(b.DueDate) {
		return decimal.Zero
	}

	lateDays := int64(end.Sub(b.DueDate).Hours() / 24)
	if lateDays < 1 {
		return decimal.Zero
	}
	return f.dailyRate.Mul(decimal.NewFromInt(lateDays))
}
