package services

import (
	"context"
	"errors"
	"strings"

	"lms-backend/internal/adapters/persistence/models"
	"lms-backend/internal/adapters/persistence/repositories"
	"lms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// LibraryService handles library listing and mutation
type LibraryService struct {
	libraryRepo repositories.LibraryRepository
}

// NewLibraryService creates a new library service
func NewLibraryService(libraryRepo repositories.LibraryRepository) *LibraryService {
	return &LibraryService{libraryRepo: libraryRepo}
}

// LibraryInput represents library create/update input
type LibraryInput struct {
	Name     string `json:"name" validate:"required,max=150"`
	Location string `json:"location" validate:"max=200"`
}

// Create creates a new library
func (s *LibraryService) Create(ctx context.Context, input *LibraryInput) (*models.Library, error) {
	library := &models.Library{
		Name:     strings.TrimSpace(input.Name),
		Location: strings.TrimSpace(input.Location),
	}

	if err := s.libraryRepo.Create(ctx, library); err != nil {
		return nil, err
	}
	return library, nil
}

// Update updates a library
func (s *LibraryService) Update(ctx context.Context, id uint, input *LibraryInput) (*models.Library, error) {
	library, err := s.libraryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLibraryNotFound
		}
		return nil, err
	}

	library.Name = strings.TrimSpace(input.Name)
	library.Location = strings.TrimSpace(input.Location)

	if err := s.libraryRepo.Update(ctx, library); err != nil {
		return nil, err
	}
	return library, nil
}

// List lists all libraries with their books
func (s *LibraryService) List(ctx context.Context) ([]*models.Library, error) {
	return s.libraryRepo.List(ctx)
}
