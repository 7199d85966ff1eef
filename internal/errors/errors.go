package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidRole is returned when registration asks for an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrBookNotAvailable is returned when a borrow hits a missing or out-of-stock book.
	ErrBookNotAvailable = errors.New("book not available")
	// ErrBookNotFound is returned when a book lookup fails.
	ErrBookNotFound = errors.New("book not found")
	// ErrBorrowNotFound is returned when a borrowing record lookup fails.
	ErrBorrowNotFound = errors.New("borrow record not found")
	// ErrAlreadyReturned is returned when returning a loan that is already closed.
	ErrAlreadyReturned = errors.New("book already returned")
	// ErrBookHasActiveLoans is returned when deleting a book with outstanding loans.
	ErrBookHasActiveLoans = errors.New("book has unreturned loans")
	// ErrISBNTaken is returned when creating a book with a duplicate ISBN.
	ErrISBNTaken = errors.New("isbn already registered")
	// ErrInvalidDueDate is returned when a borrow carries a malformed or past due date.
	ErrInvalidDueDate = errors.New("invalid due date")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrBookNotAvailable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BOOK_NOT_AVAILABLE")
	case errors.Is(err, ErrBookNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOK_NOT_FOUND")
	case errors.Is(err, ErrBorrowNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BORROW_NOT_FOUND")
	case errors.Is(err, ErrAlreadyReturned):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_RETURNED")
	case errors.Is(err, ErrBookHasActiveLoans):
		return NewHTTPError(http.StatusConflict, err.Error(), "BOOK_HAS_ACTIVE_LOANS")
	case errors.Is(err, ErrISBNTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "ISBN_TAKEN")
	case errors.Is(err, ErrInvalidDueDate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DUE_DATE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
