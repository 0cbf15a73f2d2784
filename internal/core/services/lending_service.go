package services

import (
	"context"
	"errors"
	"log"
	"time"

	"lms-backend/internal/adapters/persistence/models"
	"lms-backend/internal/adapters/persistence/repositories"
	"lms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// LendingService handles the borrow/return state machine. Per (student,
// book) pair the states are: not borrowed → borrowed → returned, and a new
// cycle may begin after a return by inserting a new record. History is
// append-only.
type LendingService struct {
	lendingRepo repositories.LendingRepository
	bookRepo    repositories.BookRepository
}

// NewLendingService creates a new lending service
func NewLendingService(lendingRepo repositories.LendingRepository, bookRepo repositories.BookRepository) *LendingService {
	return &LendingService{
		lendingRepo: lendingRepo,
		bookRepo:    bookRepo,
	}
}

// Borrow opens a new borrow for the pair. Two concurrent borrows of the
// same pair resolve to exactly one success: the existence pre-check is
// advisory, the partial unique index is the authority, and its violation is
// reported as the same conflict.
func (s *LendingService) Borrow(ctx context.Context, studentID, bookID uint) (*models.StudentBookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	active, err := s.lendingRepo.ExistsActive(ctx, studentID, bookID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.ErrAlreadyBorrowed
	}

	record := &models.StudentBook{
		StudentID:  studentID,
		BookID:     bookID,
		BorrowDate: time.Now(),
	}

	if err := s.lendingRepo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyBorrowed
		}
		return nil, err
	}

	record.Book = book
	log.Printf("✅ Book %d borrowed by student %d", bookID, studentID)

	return record.ToResponse(), nil
}

// Return closes the active borrow for the pair. Calling it again right
// after returns ErrNoActiveBorrow, even when the pair has returned history.
func (s *LendingService) Return(ctx context.Context, studentID, bookID uint) (*models.StudentBookResponse, error) {
	record, err := s.lendingRepo.GetActive(ctx, studentID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveBorrow
		}
		return nil, err
	}

	returnedAt := time.Now()
	closed, err := s.lendingRepo.MarkReturned(ctx, studentID, bookID, returnedAt)
	if err != nil {
		return nil, err
	}
	if !closed {
		// Another return slipped in between lookup and update.
		return nil, domain.ErrNoActiveBorrow
	}

	record.ReturnDate = &returnedAt
	log.Printf("✅ Book %d returned by student %d", bookID, studentID)

	return record.ToResponse(), nil
}

// ActiveBorrows lists a student's open borrows, newest first
func (s *LendingService) ActiveBorrows(ctx context.Context, studentID uint) ([]*models.StudentBookResponse, error) {
	records, err := s.lendingRepo.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toLendingResponses(records), nil
}

// History lists a student's full borrow history, newest first
func (s *LendingService) History(ctx context.Context, studentID uint) ([]*models.StudentBookResponse, error) {
	records, err := s.lendingRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toLendingResponses(records), nil
}

// List lists the full ledger with pagination
func (s *LendingService) List(ctx context.Context, offset, limit int) ([]*models.StudentBookResponse, int64, error) {
	records, total, err := s.lendingRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toLendingResponses(records), total, nil
}

func toLendingResponses(records []*models.StudentBook) []*models.StudentBookResponse {
	responses := make([]*models.StudentBookResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, record.ToResponse())
	}
	return responses
}
