package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libris/internal/errors"
)

func TestBookRepository_Delete(t *testing.T) {
	gormDB := setupTestDB(t)
	bookRepo := NewBookRepository(gormDB)
	loanRepo := NewBorrowingRepository(gormDB)
	user := createTestUser(t, gormDB, "reader@example.com")
	dueDate := time.Now().Add(14 * 24 * time.Hour)

	t.Run("missing book", func(t *testing.T) {
		err := bookRepo.Delete(testCtx, 999999)
		assert.Equal(t, errors.ErrBookNotFound, err)
	})

	t.Run("refused while a loan is out, allowed once returned", func(t *testing.T) {
		book := createTestBook(t, gormDB, 2)
		borrowing, err := loanRepo.Borrow(testCtx, user.ID, book.ID, dueDate)
		require.NoError(t, err)

		err = bookRepo.Delete(testCtx, book.ID)
		assert.Equal(t, errors.ErrBookHasActiveLoans, err)

		_, err = loanRepo.Return(testCtx, borrowing.ID)
		require.NoError(t, err)

		require.NoError(t, bookRepo.Delete(testCtx, book.ID))
		_, err = bookRepo.FindByID(testCtx, book.ID)
		assert.Equal(t, gorm.ErrRecordNotFound, err)

		// The closed loan row survives its book.
		assert.Equal(t, int64(1), countLoans(t, gormDB, book.ID))
	})
}

func TestBookRepository_Search(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewBookRepository(gormDB)
	createTestBook(t, gormDB, 1)

	books, err := repo.Search(testCtx, "Go Programming")
	require.NoError(t, err)
	require.Len(t, books, 1)

	books, err = repo.Search(testCtx, "no such title")
	require.NoError(t, err)
	assert.Empty(t, books)

	books, err = repo.Search(testCtx, "")
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
