package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"libris/internal/errors"
	"libris/internal/service"
	"libris/internal/storage"
)

// AdminHandler handles inventory management and the loan monitor.
type AdminHandler struct {
	catalogService service.CatalogService
	loanService    service.LoanService
	uploads        *storage.UploadStore
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(catalogService service.CatalogService, loanService service.LoanService, uploads *storage.UploadStore) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		loanService:    loanService,
		uploads:        uploads,
	}
}

// CreateBookRequest represents the multipart fields of a new book.
type CreateBookRequest struct {
	Title    string `form:"title" validate:"required"`
	Author   string `form:"author" validate:"required"`
	ISBN     string `form:"isbn"`
	Quantity int    `form:"quantity"`
}

// ReturnRequest represents an admin return action.
type ReturnRequest struct {
	BorrowID uint `json:"borrowId" validate:"required"`
}

// AllBorrows godoc
// @Summary List every loan with borrower and book
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.LoanRecord
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/borrows [get]
func (h *AdminHandler) AllBorrows(c echo.Context) error {
	borrows, err := h.loanService.AllBorrows(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, borrows)
}

// ReturnBook godoc
// @Summary Mark a loan as returned and restock the book
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReturnRequest true "Loan to close"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/return [post]
func (h *AdminHandler) ReturnBook(c echo.Context) error {
	var req ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.loanService.Return(c.Request().Context(), req.BorrowID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book returned successfully",
	})
}

// CreateBook godoc
// @Summary Add a book to the catalog, with an optional cover image
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param author formData string true "Author"
// @Param isbn formData string false "ISBN"
// @Param quantity formData int false "Copies in stock"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/books [post]
func (h *AdminHandler) CreateBook(c echo.Context) error {
	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var coverImage string
	if file, err := c.FormFile("coverImage"); err == nil && file != nil {
		name, err := h.uploads.Save(file)
		if err != nil {
			if err == storage.ErrUnsupportedFileType {
				return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
					Error: err.Error(),
					Code:  "UNSUPPORTED_FILE_TYPE",
				})
			}
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "failed to store cover image",
				Code:  "UPLOAD_FAILED",
			})
		}
		coverImage = name
	}

	book, err := h.catalogService.CreateBook(c.Request().Context(), service.CreateBookInput{
		Title:      req.Title,
		Author:     req.Author,
		ISBN:       req.ISBN,
		Quantity:   req.Quantity,
		CoverImage: coverImage,
	})
	if err != nil {
		// The book row never existed, so the stored cover is orphaned.
		_ = h.uploads.Remove(coverImage)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "book added successfully",
		"book":    book,
	})
}

// DeleteBook godoc
// @Summary Delete a book without outstanding loans
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/books/{id} [delete]
func (h *AdminHandler) DeleteBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid book ID",
			Code:  "INVALID_ID",
		})
	}

	if err := h.catalogService.DeleteBook(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book deleted successfully",
	})
}
