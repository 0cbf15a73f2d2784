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

func newBookServiceFixture(t *testing.T) (*BookService, *fakeBookRepo, *fakeLibraryRepo, *fakeLendingRepo) {
	t.Helper()
	bookRepo := newFakeBookRepo()
	libraryRepo := newFakeLibraryRepo()
	lendingRepo := newFakeLendingRepo()

	require.NoError(t, libraryRepo.Create(context.Background(), &models.Library{Name: "Central"}))

	return NewBookService(bookRepo, libraryRepo, lendingRepo), bookRepo, libraryRepo, lendingRepo
}

func validBookInput() *BookInput {
	return &BookInput{
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		ISBN:      "978-0-13-419044-0",
		LibraryID: 1,
	}
}

func TestBookServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the isbn before storing", func(t *testing.T) {
		svc, bookRepo, _, _ := newBookServiceFixture(t)

		resp, err := svc.Create(ctx, validBookInput())
		require.NoError(t, err)
		assert.Equal(t, "9780134190440", resp.ISBN)

		stored, err := bookRepo.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, "9780134190440", stored.ISBN)
	})

	t.Run("rejects malformed isbn", func(t *testing.T) {
		svc, _, _, _ := newBookServiceFixture(t)

		for _, raw := range []string{"", "12345", "977-0-13-419044-0", "978-0-13-41904"} {
			input := validBookInput()
			input.ISBN = raw
			_, err := svc.Create(ctx, input)
			require.ErrorIs(t, err, domain.ErrInvalidISBN, "isbn %q", raw)
		}
	})

	t.Run("rejects unknown library", func(t *testing.T) {
		svc, _, _, _ := newBookServiceFixture(t)

		input := validBookInput()
		input.LibraryID = 999
		_, err := svc.Create(ctx, input)
		require.ErrorIs(t, err, domain.ErrLibraryNotFound)
	})

	t.Run("rejects duplicate isbn across formattings", func(t *testing.T) {
		svc, _, _, _ := newBookServiceFixture(t)

		_, err := svc.Create(ctx, validBookInput())
		require.NoError(t, err)

		input := validBookInput()
		input.Title = "Another Edition"
		input.ISBN = "9780134190440"
		_, err = svc.Create(ctx, input)
		require.ErrorIs(t, err, domain.ErrDuplicateISBN)
	})

	t.Run("maps duplicate key from concurrent insert", func(t *testing.T) {
		svc, bookRepo, _, _ := newBookServiceFixture(t)
		bookRepo.createErr = gorm.ErrDuplicatedKey

		_, err := svc.Create(ctx, validBookInput())
		require.ErrorIs(t, err, domain.ErrDuplicateISBN)
	})
}

func TestBookServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("keeping its own isbn is not a duplicate", func(t *testing.T) {
		svc, _, _, _ := newBookServiceFixture(t)

		created, err := svc.Create(ctx, validBookInput())
		require.NoError(t, err)

		input := validBookInput()
		input.Title = "Updated Title"
		resp, err := svc.Update(ctx, created.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", resp.Title)
	})

	t.Run("taking another books isbn fails", func(t *testing.T) {
		svc, _, _, _ := newBookServiceFixture(t)

		_, err := svc.Create(ctx, validBookInput())
		require.NoError(t, err)

		second := validBookInput()
		second.Title = "Second Book"
		second.ISBN = "9791090636071"
		created, err := svc.Create(ctx, second)
		require.NoError(t, err)

		update := validBookInput()
		update.Title = "Second Book"
		_, err = svc.Update(ctx, created.ID, update)
		require.ErrorIs(t, err, domain.ErrDuplicateISBN)
	})

	t.Run("unknown book fails", func(t *testing.T) {
		svc, _, _, _ := newBookServiceFixture(t)

		_, err := svc.Update(ctx, 999, validBookInput())
		require.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}

func TestBookServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an unreferenced book", func(t *testing.T) {
		svc, bookRepo, _, _ := newBookServiceFixture(t)

		created, err := svc.Create(ctx, validBookInput())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err = bookRepo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("rejects deletion while lending records reference it", func(t *testing.T) {
		svc, _, _, lendingRepo := newBookServiceFixture(t)

		created, err := svc.Create(ctx, validBookInput())
		require.NoError(t, err)

		// A returned record still blocks deletion; history is append-only.
		returnedAt := time.Now()
		require.NoError(t, lendingRepo.Create(ctx, &models.StudentBook{
			StudentID:  7,
			BookID:     created.ID,
			BorrowDate: time.Now().Add(-time.Hour),
			ReturnDate: &returnedAt,
		}))

		err = svc.Delete(ctx, created.ID)
		require.ErrorIs(t, err, domain.ErrBookHasLendings)
	})

	t.Run("maps foreign key violation from the storage layer", func(t *testing.T) {
		svc, bookRepo, _, _ := newBookServiceFixture(t)
		created, err := svc.Create(ctx, validBookInput())
		require.NoError(t, err)

		bookRepo.deleteErr = gorm.ErrForeignKeyViolated
		err = svc.Delete(ctx, created.ID)
		require.ErrorIs(t, err, domain.ErrBookHasLendings)
	})

	t.Run("unknown book fails", func(t *testing.T) {
		svc, _, _, _ := newBookServiceFixture(t)

		err := svc.Delete(ctx, 999)
		require.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}
