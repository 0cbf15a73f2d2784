package repositories

import (
	"context"
	"time"

	"lms-backend/internal/adapters/persistence/models"
)

// StudentRepository defines student data access
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// SetResetCode stores the reset code and its expiry together.
	SetResetCode(ctx context.Context, id uint, code string, expiresAt time.Time) error
	// ClearResetCode removes the reset code pair.
	ClearResetCode(ctx context.Context, id uint) error
	// ConfirmPasswordReset writes the new password hash and clears the reset
	// code pair in one statement, guarded on the stored code still matching.
	// Returns false when no row matched (code already consumed or changed).
	ConfirmPasswordReset(ctx context.Context, id uint, code, newHash string) (bool, error)
	// ClearExpiredResetCodes removes reset code pairs whose expiry has passed.
	ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error)
}

// LibraryRepository defines library data access
type LibraryRepository interface {
	Create(ctx context.Context, library *models.Library) error
	GetByID(ctx context.Context, id uint) (*models.Library, error)
	Update(ctx context.Context, library *models.Library) error
	List(ctx context.Context) ([]*models.Library, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// BookRepository defines book data access
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Book, error)
	// ExistsByISBN checks the normalized ISBN against all books except the
	// one identified by excludeID (0 means exclude none).
	ExistsByISBN(ctx context.Context, normalizedISBN string, excludeID uint) (bool, error)
}

// LendingRepository defines lending ledger data access.
// Records are append-only: Create inserts, MarkReturned closes, nothing
// deletes.
type LendingRepository interface {
	Create(ctx context.Context, record *models.StudentBook) error
	ExistsActive(ctx context.Context, studentID, bookID uint) (bool, error)
	GetActive(ctx context.Context, studentID, bookID uint) (*models.StudentBook, error)
	// MarkReturned sets the return date on the single active record for the
	// pair. Returns false when no active record exists.
	MarkReturned(ctx context.Context, studentID, bookID uint, at time.Time) (bool, error)
	ListActiveByStudent(ctx context.Context, studentID uint) ([]*models.StudentBook, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentBook, error)
	List(ctx context.Context, offset, limit int) ([]*models.StudentBook, int64, error)
	CountByBook(ctx context.Context, bookID uint) (int64, error)
}
