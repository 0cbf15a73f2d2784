package services

import (
	"context"
	"time"

	"lms-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ReportService produces read-only projections for reporting endpoints
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// LibraryBookRow is one row of the per-library book report
type LibraryBookRow struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	LibraryID   uint   `json:"library_id"`
	LibraryName string `json:"library_name"`
}

// StudentBookRow is one row of the per-student borrow report
type StudentBookRow struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn"`
	LibraryName string     `json:"library_name"`
	BorrowDate  time.Time  `json:"borrow_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
}

// LibraryBooks projects every book of a library with its library name
func (s *ReportService) LibraryBooks(ctx context.Context, libraryID uint) ([]*LibraryBookRow, error) {
	var rows []*LibraryBookRow
	err := s.db.WithContext(ctx).
		Model(&models.Book{}).
		Select("books.id, books.title, books.author, books.isbn, books.library_id, libraries.name AS library_name").
		Joins("LEFT JOIN libraries ON libraries.id = books.library_id").
		Where("books.library_id = ?", libraryID).
		Order("books.id").
		Scan(&rows).Error
	return rows, err
}

// StudentBooks projects a student's borrows with book and library fields,
// newest first
func (s *ReportService) StudentBooks(ctx context.Context, studentID uint) ([]*StudentBookRow, error) {
	var rows []*StudentBookRow
	err := s.db.WithContext(ctx).
		Model(&models.StudentBook{}).
		Select("books.id, books.title, books.author, books.isbn, libraries.name AS library_name, student_books.borrow_date, student_books.return_date").
		Joins("JOIN books ON books.id = student_books.book_id").
		Joins("LEFT JOIN libraries ON libraries.id = books.library_id").
		Where("student_books.student_id = ?", studentID).
		Order("student_books.borrow_date DESC").
		Scan(&rows).Error
	return rows, err
}
