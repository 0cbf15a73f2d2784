package repositories

import (
	"context"
	"time"

	"lms-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// lendingRepository implements LendingRepository
type lendingRepository struct {
	db *gorm.DB
}

// NewLendingRepository creates a new lending repository
func NewLendingRepository(db *gorm.DB) LendingRepository {
	return &lendingRepository{db: db}
}

// Create inserts a new lending record. The partial unique index over
// (student_id, book_id) where return_date IS NULL rejects a second active
// borrow; the violation surfaces as gorm.ErrDuplicatedKey.
func (r *lendingRepository) Create(ctx context.Context, record *models.StudentBook) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ExistsActive checks for an active borrow of the pair
func (r *lendingRepository) ExistsActive(ctx context.Context, studentID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StudentBook{}).
		Where("student_id = ? AND book_id = ? AND return_date IS NULL", studentID, bookID).
		Count(&count).Error
	return count > 0, err
}

// GetActive gets the active borrow record for the pair
func (r *lendingRepository) GetActive(ctx context.Context, studentID, bookID uint) (*models.StudentBook, error) {
	var record models.StudentBook
	err := r.db.WithContext(ctx).Preload("Book").
		Where("student_id = ? AND book_id = ? AND return_date IS NULL", studentID, bookID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkReturned closes the active record for the pair. The return_date IS
// NULL guard makes a second concurrent return match zero rows.
func (r *lendingRepository) MarkReturned(ctx context.Context, studentID, bookID uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.StudentBook{}).
		Where("student_id = ? AND book_id = ? AND return_date IS NULL", studentID, bookID).
		Update("return_date", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListActiveByStudent lists a student's active borrows, newest first
func (r *lendingRepository) ListActiveByStudent(ctx context.Context, studentID uint) ([]*models.StudentBook, error) {
	var records []*models.StudentBook
	err := r.db.WithContext(ctx).Preload("Book").
		Where("student_id = ? AND return_date IS NULL", studentID).
		Order("borrow_date DESC").
		Find(&records).Error
	return records, err
}

// ListByStudent lists a student's full borrow history, newest first
func (r *lendingRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentBook, error) {
	var records []*models.StudentBook
	err := r.db.WithContext(ctx).Preload("Book").
		Where("student_id = ?", studentID).
		Order("borrow_date DESC").
		Find(&records).Error
	return records, err
}

// List lists all lending records with pagination, newest first
func (r *lendingRepository) List(ctx context.Context, offset, limit int) ([]*models.StudentBook, int64, error) {
	var records []*models.StudentBook
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.StudentBook{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).Preload("Book").
		Order("borrow_date DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// CountByBook counts every lending record referencing a book, active or
// historical
func (r *lendingRepository) CountByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StudentBook{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}
