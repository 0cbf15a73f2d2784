package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"lms-backend/internal/adapters/persistence/models"
	"lms-backend/internal/adapters/persistence/repositories"
	"lms-backend/internal/core/domain"
	"lms-backend/internal/pkg/password"
	"lms-backend/internal/pkg/token"

	"gorm.io/gorm"
)

// AuthService handles registration and login
type AuthService struct {
	studentRepo repositories.StudentRepository
	tokens      *token.Issuer
}

// NewAuthService creates a new auth service
func NewAuthService(studentRepo repositories.StudentRepository, tokens *token.Issuer) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		tokens:      tokens,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FullName string `json:"full_name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Student     *models.StudentResponse `json:"student"`
	AccessToken string                  `json:"access_token"`
}

// NormalizeEmail trims and lower-cases an email address. Every lookup and
// every stored value goes through this.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Register registers a new student
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.StudentResponse, error) {
	email := NormalizeEmail(input.Email)

	if !password.ValidatePolicy(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	exists, err := s.studentRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleStudent),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		// The unique index on email is the authority; the pre-check above
		// only improves error quality under concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	log.Printf("✅ Student registered: %s (ID: %d)", student.Email, student.ID)

	return student.ToResponse(), nil
}

// Login authenticates a student and issues a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(student.PasswordHash, input.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(student.ID, student.Email, student.FullName, student.Role)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Student logged in: %s", student.Email)

	return &AuthResponse{
		Student:     student.ToResponse(),
		AccessToken: accessToken,
	}, nil
}

// GetStudent gets a student by ID
func (s *AuthService) GetStudent(ctx context.Context, id uint) (*models.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return student.ToResponse(), nil
}
