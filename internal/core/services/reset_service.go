package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"lms-backend/internal/adapters/persistence/repositories"
	"lms-backend/internal/core/domain"
	"lms-backend/internal/pkg/password"

	"gorm.io/gorm"
)

const (
	// ResetCodeLength is the number of digits in a reset code
	ResetCodeLength = 6

	// ResetCodeTTL is how long a reset code stays valid
	ResetCodeTTL = 15 * time.Minute
)

// PasswordResetService handles the one-time-code password reset flow.
// Per student the flow is: no active reset → code issued → consumed or
// expired. The code and its expiry live on the student row and are always
// written or cleared together.
type PasswordResetService struct {
	studentRepo repositories.StudentRepository
	mailer      EmailSender
	now         func() time.Time
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(studentRepo repositories.StudentRepository, mailer EmailSender) *PasswordResetService {
	return &PasswordResetService{
		studentRepo: studentRepo,
		mailer:      mailer,
		now:         time.Now,
	}
}

// RequestReset issues a fresh reset code for the account and mails it.
// An unknown email fails with ErrEmailNotRegistered, matching the observed
// behavior of the system. A failed delivery rolls the stored code back so
// no undeliverable code is left dangling.
func (s *PasswordResetService) RequestReset(ctx context.Context, rawEmail string) error {
	email := NormalizeEmail(rawEmail)

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEmailNotRegistered
		}
		return err
	}

	code, err := generateResetCode(ResetCodeLength)
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	expiresAt := s.now().Add(ResetCodeTTL)
	if err := s.studentRepo.SetResetCode(ctx, student.ID, code, expiresAt); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is: %s\n\nIt expires in %d minutes. If you did not request a reset, ignore this mail.",
		student.FullName, code, int(ResetCodeTTL.Minutes()),
	)

	if err := s.mailer.Send(student.Email, "Password reset code", body); err != nil {
		if clearErr := s.studentRepo.ClearResetCode(ctx, student.ID); clearErr != nil {
			log.Printf("⚠️ Failed to roll back reset code for student %d: %v", student.ID, clearErr)
		}
		return fmt.Errorf("deliver reset code: %w", err)
	}

	log.Printf("✅ Password reset code sent to student %d", student.ID)
	return nil
}

// ConfirmReset consumes a reset code and stores the new password hash.
// The hash write and the code clear happen in one statement, so replaying
// the same code afterwards fails.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, rawEmail, code, newPassword string) error {
	if !validResetCode(code) {
		return domain.ErrInvalidInput
	}
	if !password.ValidatePolicy(newPassword) {
		return domain.ErrWeakPassword
	}

	email := NormalizeEmail(rawEmail)

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if student.PasswordResetCode == nil || student.PasswordResetExpiresAt == nil {
		return domain.ErrNoResetRequested
	}

	if s.now().After(*student.PasswordResetExpiresAt) {
		return domain.ErrResetCodeExpired
	}

	if code != *student.PasswordResetCode {
		return domain.ErrResetCodeMismatch
	}

	if password.Verify(student.PasswordHash, newPassword) {
		return domain.ErrSamePassword
	}

	newHash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	confirmed, err := s.studentRepo.ConfirmPasswordReset(ctx, student.ID, code, newHash)
	if err != nil {
		return err
	}
	if !confirmed {
		// The code was consumed between validation and the write.
		return domain.ErrNoResetRequested
	}

	log.Printf("✅ Password reset confirmed for student %d", student.ID)
	return nil
}

// validResetCode reports whether a code is exactly six digits
func validResetCode(code string) bool {
	if len(code) != ResetCodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// generateResetCode generates a uniformly random numeric code
func generateResetCode(length int) (string, error) {
	result := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		result += fmt.Sprintf("%d", n.Int64())
	}
	return result, nil
}
