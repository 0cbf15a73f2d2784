package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"lms-backend/internal/adapters/persistence/models"
	"lms-backend/internal/adapters/persistence/repositories"
	"lms-backend/internal/core/domain"
	"lms-backend/internal/pkg/isbn"

	"gorm.io/gorm"
)

// BookService handles catalog mutation and listing
type BookService struct {
	bookRepo    repositories.BookRepository
	libraryRepo repositories.LibraryRepository
	lendingRepo repositories.LendingRepository
}

// NewBookService creates a new book service
func NewBookService(
	bookRepo repositories.BookRepository,
	libraryRepo repositories.LibraryRepository,
	lendingRepo repositories.LendingRepository,
) *BookService {
	return &BookService{
		bookRepo:    bookRepo,
		libraryRepo: libraryRepo,
		lendingRepo: lendingRepo,
	}
}

// BookInput represents book create/update input
type BookInput struct {
	Title     string `json:"title" validate:"required,max=150"`
	Author    string `json:"author" validate:"required,max=120"`
	ISBN      string `json:"isbn" validate:"required"`
	PageCount *int   `json:"page_count" validate:"omitempty,gt=0"`
	LibraryID uint   `json:"library_id" validate:"required,gt=0"`
}

// Create creates a new book. The ISBN is normalized to digits before
// validation and storage; the unique index on books.isbn is the authority
// against duplicates under concurrent creation.
func (s *BookService) Create(ctx context.Context, input *BookInput) (*models.BookResponse, error) {
	normalized := isbn.Normalize(input.ISBN)
	if !isbn.ValidFormat(normalized) {
		return nil, domain.ErrInvalidISBN
	}

	libraryExists, err := s.libraryRepo.Exists(ctx, input.LibraryID)
	if err != nil {
		return nil, err
	}
	if !libraryExists {
		return nil, domain.ErrLibraryNotFound
	}

	taken, err := s.bookRepo.ExistsByISBN(ctx, normalized, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateISBN
	}

	book := &models.Book{
		Title:     strings.TrimSpace(input.Title),
		Author:    strings.TrimSpace(input.Author),
		ISBN:      normalized,
		PageCount: input.PageCount,
		LibraryID: input.LibraryID,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, err
	}

	log.Printf("✅ Book created: %s (ISBN %s)", book.Title, book.ISBN)

	return book.ToResponse(), nil
}

// Update updates a book, re-running ISBN validation and uniqueness with the
// book itself excluded
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) (*models.BookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	normalized := isbn.Normalize(input.ISBN)
	if !isbn.ValidFormat(normalized) {
		return nil, domain.ErrInvalidISBN
	}

	libraryExists, err := s.libraryRepo.Exists(ctx, input.LibraryID)
	if err != nil {
		return nil, err
	}
	if !libraryExists {
		return nil, domain.ErrLibraryNotFound
	}

	taken, err := s.bookRepo.ExistsByISBN(ctx, normalized, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateISBN
	}

	book.Title = strings.TrimSpace(input.Title)
	book.Author = strings.TrimSpace(input.Author)
	book.ISBN = normalized
	book.PageCount = input.PageCount
	book.LibraryID = input.LibraryID

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, err
	}

	return book.ToResponse(), nil
}

// Delete removes a book. Deletion is rejected while any lending record,
// active or historical, references it; the restrict foreign key backs the
// check at the storage layer.
func (s *BookService) Delete(ctx context.Context, id uint) error {
	if _, err := s.bookRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBookNotFound
		}
		return err
	}

	references, err := s.lendingRepo.CountByBook(ctx, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return domain.ErrBookHasLendings
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrBookHasLendings
		}
		return err
	}

	log.Printf("✅ Book deleted: %d", id)
	return nil
}

// List lists all books with their library names
func (s *BookService) List(ctx context.Context) ([]*models.BookResponse, error) {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, book.ToResponse())
	}
	return responses, nil
}
