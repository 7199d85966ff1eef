package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libris/internal/db"
	"libris/internal/model"
)

// setupTestDB connects to the MySQL instance named by TEST_MYSQL_DSN and
// returns a clean schema. The row-locking queries used by the repositories
// are MySQL syntax, so these tests need a real server; they are skipped when
// no DSN is configured.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	gormDB, err := db.NewMySQL(dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.User{}, &model.Book{}, &model.Borrowing{}))

	require.NoError(t, gormDB.Exec("DELETE FROM borrowings").Error)
	require.NoError(t, gormDB.Exec("DELETE FROM books").Error)
	require.NoError(t, gormDB.Exec("DELETE FROM users").Error)

	return gormDB
}

func createTestUser(t *testing.T, gormDB *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     "reader",
		Email:        email,
		PasswordHash: "x",
		Role:         model.RoleUser,
	}
	require.NoError(t, gormDB.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, gormDB *gorm.DB, quantity int) *model.Book {
	t.Helper()
	book := &model.Book{
		Title:     "The Go Programming Language",
		Author:    "Alan A. A. Donovan",
		Quantity:  quantity,
		Available: quantity > 0,
	}
	require.NoError(t, gormDB.Create(book).Error)
	return book
}

func reloadBook(t *testing.T, gormDB *gorm.DB, id uint) *model.Book {
	t.Helper()
	var book model.Book
	require.NoError(t, gormDB.First(&book, "id = ?", id).Error)
	return &book
}

func countLoans(t *testing.T, gormDB *gorm.DB, bookID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gormDB.Model(&model.Borrowing{}).Where("book_id = ?", bookID).Count(&n).Error)
	return n
}

var testCtx = context.Background()
