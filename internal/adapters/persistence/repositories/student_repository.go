package repositories

import (
	"context"
	"time"

	"lms-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// studentRepository implements StudentRepository
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create creates a new student
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// GetByID gets a student by ID
func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByEmail gets a student by normalized email
func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEmail checks if a normalized email is registered
func (r *studentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// SetResetCode stores the reset code pair in a single update
func (r *studentRepository) SetResetCode(ctx context.Context, id uint, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_reset_code":       code,
			"password_reset_expires_at": expiresAt,
		}).Error
}

// ClearResetCode clears the reset code pair in a single update
func (r *studentRepository) ClearResetCode(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_reset_code":       nil,
			"password_reset_expires_at": nil,
		}).Error
}

// ConfirmPasswordReset writes the new hash and clears the code pair in one
// statement. The WHERE guard on the stored code closes the replay window: a
// concurrent confirm with the same code matches zero rows.
func (r *studentRepository) ConfirmPasswordReset(ctx context.Context, id uint, code, newHash string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ? AND password_reset_code = ?", id, code).
		Updates(map[string]interface{}{
			"password_hash":             newHash,
			"password_reset_code":       nil,
			"password_reset_expires_at": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearExpiredResetCodes clears every reset code pair past its expiry
func (r *studentRepository) ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("password_reset_expires_at IS NOT NULL AND password_reset_expires_at < ?", now).
		Updates(map[string]interface{}{
			"password_reset_code":       nil,
			"password_reset_expires_at": nil,
		})
	return result.RowsAffected, result.Error
}
