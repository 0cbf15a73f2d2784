package models

import (
	"time"

	"gorm.io/gorm"
)

// Student represents the students table.
// Email is stored normalized (trimmed, lower-cased) and is globally unique.
// PasswordResetCode and PasswordResetExpiresAt are either both set or both
// NULL; they are only ever written together.
type Student struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	FullName               string     `gorm:"size:150;not null" json:"full_name"`
	Email                  string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash           string     `gorm:"size:255;not null" json:"-"`
	Role                   string     `gorm:"size:20;not null;default:'Student'" json:"role"`
	PasswordResetCode      *string    `gorm:"size:6" json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// StudentResponse DTO
type StudentResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Student) ToResponse() *StudentResponse {
	return &StudentResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Role:      s.Role,
		CreatedAt: s.CreatedAt,
	}
}

// Library represents the libraries table
type Library struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Location  string    `gorm:"size:200" json:"location"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Books []Book `gorm:"foreignKey:LibraryID" json:"books,omitempty"`
}

func (Library) TableName() string {
	return "libraries"
}

// Book represents the books table.
// ISBN is stored normalized (digits only, 13 digits) and is globally unique.
// The lending foreign key restricts deletion while any record references it.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Author    string    `gorm:"size:120;not null" json:"author"`
	ISBN      string    `gorm:"column:isbn;uniqueIndex;size:13;not null" json:"isbn"`
	PageCount *int      `json:"page_count,omitempty"`
	LibraryID uint      `gorm:"not null;index" json:"library_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Library *Library `gorm:"foreignKey:LibraryID" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// BookResponse DTO
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	PageCount   *int   `json:"page_count,omitempty"`
	LibraryID   uint   `json:"library_id"`
	LibraryName string `json:"library_name,omitempty"`
}

func (b *Book) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		PageCount: b.PageCount,
		LibraryID: b.LibraryID,
	}
	if b.Library != nil {
		resp.LibraryName = b.Library.Name
	}
	return resp
}

// StudentBook represents the student_books lending ledger.
// Records are append-only: a return sets ReturnDate on the existing row,
// rows are never deleted. The partial unique index is the authority for the
// "at most one active borrow per (student, book)" invariant; application
// pre-checks only improve error quality.
type StudentBook struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	StudentID  uint       `gorm:"not null;index;uniqueIndex:udx_active_borrow,where:return_date IS NULL" json:"student_id"`
	BookID     uint       `gorm:"not null;index;uniqueIndex:udx_active_borrow,where:return_date IS NULL" json:"book_id"`
	BorrowDate time.Time  `gorm:"not null" json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`

	Student *Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Book    *Book    `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (StudentBook) TableName() string {
	return "student_books"
}

// IsReturned reports whether the record is a closed borrow
func (sb *StudentBook) IsReturned() bool {
	return sb.ReturnDate != nil
}

// StudentBookResponse DTO
type StudentBookResponse struct {
	ID         uint       `json:"id"`
	StudentID  uint       `json:"student_id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title,omitempty"`
	BookAuthor string     `json:"book_author,omitempty"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

func (sb *StudentBook) ToResponse() *StudentBookResponse {
	resp := &StudentBookResponse{
		ID:         sb.ID,
		StudentID:  sb.StudentID,
		BookID:     sb.BookID,
		BorrowDate: sb.BorrowDate,
		ReturnDate: sb.ReturnDate,
	}
	if sb.Book != nil {
		resp.BookTitle = sb.Book.Title
		resp.BookAuthor = sb.Book.Author
	}
	return resp
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Student{},
		&Library{},
		&Book{},
		&StudentBook{},
	)
}
