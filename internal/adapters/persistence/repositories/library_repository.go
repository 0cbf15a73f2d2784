package repositories

import (
	"context"

	"lms-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// libraryRepository implements LibraryRepository
type libraryRepository struct {
	db *gorm.DB
}

// NewLibraryRepository creates a new library repository
func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

// Create creates a new library
func (r *libraryRepository) Create(ctx context.Context, library *models.Library) error {
	return r.db.WithContext(ctx).Create(library).Error
}

// GetByID gets a library by ID
func (r *libraryRepository) GetByID(ctx context.Context, id uint) (*models.Library, error) {
	var library models.Library
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&library).Error
	if err != nil {
		return nil, err
	}
	return &library, nil
}

// Update updates a library
func (r *libraryRepository) Update(ctx context.Context, library *models.Library) error {
	return r.db.WithContext(ctx).Save(library).Error
}

// List lists all libraries with their books
func (r *libraryRepository) List(ctx context.Context) ([]*models.Library, error) {
	var libraries []*models.Library
	err := r.db.WithContext(ctx).Preload("Books").Order("id").Find(&libraries).Error
	return libraries, err
}

// Exists checks if a library exists
func (r *libraryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Library{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
