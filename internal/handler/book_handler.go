package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"libris/internal/errors"
	"libris/internal/service"
)

// BookHandler handles catalog and borrowing endpoints for regular users.
type BookHandler struct {
	catalogService service.CatalogService
	loanService    service.LoanService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(catalogService service.CatalogService, loanService service.LoanService) *BookHandler {
	return &BookHandler{
		catalogService: catalogService,
		loanService:    loanService,
	}
}

// BorrowRequest represents a borrow request.
type BorrowRequest struct {
	BookID  uint   `json:"bookId" validate:"required"`
	DueDate string `json:"dueDate" validate:"required"`
}

// ListBooks godoc
// @Summary List the catalog, optionally filtered by title substring
// @Tags books
// @Produce json
// @Param search query string false "Title substring"
// @Success 200 {array} model.Book
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.catalogService.ListBooks(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, books)
}

// Borrow godoc
// @Summary Borrow a book until a due date
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BorrowRequest true "Borrow data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/borrow [post]
func (h *BookHandler) Borrow(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	var req BorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.loanService.Borrow(c.Request().Context(), claims.UserID, req.BookID, req.DueDate); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book borrowed successfully",
	})
}

// MyHistory godoc
// @Summary List the caller's loan history
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.LoanRecord
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/my-history [get]
func (h *BookHandler) MyHistory(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	history, err := h.loanService.MyHistory(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, history)
}
