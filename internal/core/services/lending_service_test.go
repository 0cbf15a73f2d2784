package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lms-backend/internal/adapters/persistence/models"
	"lms-backend/internal/core/domain"
)

func seedBook(t *testing.T, bookRepo *fakeBookRepo) *models.Book {
	t.Helper()
	return bookRepo.add(&models.Book{
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		ISBN:      "9780134190440",
		LibraryID: 1,
	})
}

func TestLendingServiceBorrow(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a borrow for an existing book", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		lendingRepo := newFakeLendingRepo()
		svc := NewLendingService(lendingRepo, bookRepo)

		resp, err := svc.Borrow(ctx, 7, book.ID)
		require.NoError(t, err)

		assert.Equal(t, uint(7), resp.StudentID)
		assert.Equal(t, book.ID, resp.BookID)
		assert.Equal(t, book.Title, resp.BookTitle)
		assert.Nil(t, resp.ReturnDate)
		assert.WithinDuration(t, time.Now(), resp.BorrowDate, 10*time.Second)
	})

	t.Run("unknown book fails", func(t *testing.T) {
		svc := NewLendingService(newFakeLendingRepo(), newFakeBookRepo())

		_, err := svc.Borrow(ctx, 7, 999)
		require.ErrorIs(t, err, domain.ErrBookNotFound)
	})

	t.Run("second borrow of the same pair fails", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		svc := NewLendingService(newFakeLendingRepo(), bookRepo)

		_, err := svc.Borrow(ctx, 7, book.ID)
		require.NoError(t, err)

		_, err = svc.Borrow(ctx, 7, book.ID)
		require.ErrorIs(t, err, domain.ErrAlreadyBorrowed)
	})

	t.Run("index violation from a concurrent borrow maps to the same conflict", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		lendingRepo := newFakeLendingRepo()
		lendingRepo.createErr = gorm.ErrDuplicatedKey
		svc := NewLendingService(lendingRepo, bookRepo)

		_, err := svc.Borrow(ctx, 7, book.ID)
		require.ErrorIs(t, err, domain.ErrAlreadyBorrowed)
	})

	t.Run("different students may hold the same book", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		svc := NewLendingService(newFakeLendingRepo(), bookRepo)

		_, err := svc.Borrow(ctx, 7, book.ID)
		require.NoError(t, err)
		_, err = svc.Borrow(ctx, 8, book.ID)
		require.NoError(t, err)
	})
}

func TestLendingServiceReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the active borrow", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		svc := NewLendingService(newFakeLendingRepo(), bookRepo)

		_, err := svc.Borrow(ctx, 7, book.ID)
		require.NoError(t, err)

		resp, err := svc.Return(ctx, 7, book.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.ReturnDate)
		assert.WithinDuration(t, time.Now(), *resp.ReturnDate, 10*time.Second)
	})

	t.Run("return without an active borrow fails", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		svc := NewLendingService(newFakeLendingRepo(), bookRepo)

		_, err := svc.Return(ctx, 7, book.ID)
		require.ErrorIs(t, err, domain.ErrNoActiveBorrow)
	})

	t.Run("double return fails even with returned history", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		svc := NewLendingService(newFakeLendingRepo(), bookRepo)

		_, err := svc.Borrow(ctx, 7, book.ID)
		require.NoError(t, err)
		_, err = svc.Return(ctx, 7, book.ID)
		require.NoError(t, err)

		_, err = svc.Return(ctx, 7, book.ID)
		require.ErrorIs(t, err, domain.ErrNoActiveBorrow)
	})

	t.Run("borrow again after return starts a new cycle", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		book := seedBook(t, bookRepo)
		lendingRepo := newFakeLendingRepo()
		svc := NewLendingService(lendingRepo, bookRepo)

		_, err := svc.Borrow(ctx, 7, book.ID)
		require.NoError(t, err)
		_, err = svc.Return(ctx, 7, book.ID)
		require.NoError(t, err)
		_, err = svc.Borrow(ctx, 7, book.ID)
		require.NoError(t, err)

		// Both cycles stay in history
		history, err := svc.History(ctx, 7)
		require.NoError(t, err)
		assert.Len(t, history, 2)

		active, err := svc.ActiveBorrows(ctx, 7)
		require.NoError(t, err)
		assert.Len(t, active, 1)
	})
}

func TestLendingServiceList(t *testing.T) {
	ctx := context.Background()
	bookRepo := newFakeBookRepo()
	book := seedBook(t, bookRepo)
	svc := NewLendingService(newFakeLendingRepo(), bookRepo)

	for studentID := uint(1); studentID <= 5; studentID++ {
		_, err := svc.Borrow(ctx, studentID, book.ID)
		require.NoError(t, err)
	}

	records, total, err := svc.List(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 3)

	records, total, err = svc.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 2)
}
