package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"libris/internal/model"
)

func TestNewFineCalculator(t *testing.T) {
	_, err := NewFineCalculator("0.50")
	assert.NoError(t, err)

	_, err = NewFineCalculator("not-a-rate")
	assert.Error(t, err)

	_, err = NewFineCalculator("-1")
	assert.Error(t, err)
}

func TestFineCalculator_Accrued(t *testing.T) {
	calc, err := NewFineCalculator("0.50")
	assert.NoError(t, err)

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		loan     model.Borrowing
		expected string
	}{
		{
			name:     "not yet due",
			loan:     model.Borrowing{Status: model.LoanStatusBorrowed, DueDate: now.Add(48 * time.Hour)},
			expected: "0",
		},
		{
			name:     "overdue by hours only",
			loan:     model.Borrowing{Status: model.LoanStatusBorrowed, DueDate: now.Add(-6 * time.Hour)},
			expected: "0",
		},
		{
			name:     "overdue by three days",
			loan:     model.Borrowing{Status: model.LoanStatusBorrowed, DueDate: now.Add(-72 * time.Hour)},
			expected: "1.5",
		},
		{
			name: "returned on time",
			loan: func() model.Borrowing {
				returned := now.Add(-24 * time.Hour)
				return model.Borrowing{Status: model.LoanStatusReturned, DueDate: now, ReturnDate: &returned}
			}(),
			expected: "0",
		},
		{
			name: "returned late freezes the fine",
			loan: func() model.Borrowing {
				returned := now.Add(-24 * time.Hour)
				return model.Borrowing{Status: model.LoanStatusReturned, DueDate: now.Add(-96 * time.Hour), ReturnDate: &returned}
			}(),
			expected: "1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fine := calc.Accrued(&tt.loan, now)
			assert.Equal(t, tt.expected, fine.String())
		})
	}
}
