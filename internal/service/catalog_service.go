package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"libris/internal/cache"
	"libris/internal/errors"
	"libris/internal/model"
	"libris/internal/repository"
)

// CreateBookInput carries the fields for a new catalog entry.
type CreateBookInput struct {
	Title      string
	Author     string
	ISBN       string
	Quantity   int
	CoverImage string
}

// CatalogService handles catalog reads and admin inventory mutations.
type CatalogService interface {
	ListBooks(ctx context.Context, search string) ([]model.Book, error)
	CreateBook(ctx context.Context, input CreateBookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

type catalogService struct {
	bookRepo repository.BookRepository
	cache    *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(bookRepo repository.BookRepository, cache *cache.Client) CatalogService {
	return &catalogService{bookRepo: bookRepo, cache: cache}
}

// ListBooks returns all books, or those whose title contains search. The
// unfiltered listing is cached briefly; searches always hit the database.
func (s *catalogService) ListBooks(ctx context.Context, search string) ([]model.Book, error) {
	if search == "" {
		var cached []model.Book
		if s.cache.GetJSON(ctx, cache.CatalogKey, &cached) {
			return cached, nil
		}
	}

	books, err := s.bookRepo.Search(ctx, search)
	if err != nil {
		return nil, err
	}

	if search == "" {
		s.cache.SetJSON(ctx, cache.CatalogKey, books, cache.CatalogTTL)
	}
	return books, nil
}

// CreateBook persists a new book. A quantity below one falls back to a single
// copy, matching the catalog default.
func (s *catalogService) CreateBook(ctx context.Context, input CreateBookInput) (*model.Book, error) {
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	book := &model.Book{
		Title:      input.Title,
		Author:     input.Author,
		Quantity:   quantity,
		Available:  true,
		CoverImage: input.CoverImage,
	}

	if input.ISBN != "" {
		existing, err := s.bookRepo.FindByISBN(ctx, input.ISBN)
		if err == nil && existing != nil {
			return nil, errors.ErrISBNTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check isbn: %w", err)
		}
		isbn := input.ISBN
		book.ISBN = &isbn
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		// A concurrent create can win the ISBN between the check and here.
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrISBNTaken
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.cache.Delete(ctx, cache.CatalogKey)
	return book, nil
}

// DeleteBook hard-deletes a book unless unreturned loans still reference it.
func (s *catalogService) DeleteBook(ctx context.Context, id uint) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.CatalogKey)
	return nil
}
