package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lms-backend/internal/adapters/persistence/models"
)

// fakeStudentRepo is an in-memory StudentRepository for service tests.
type fakeStudentRepo struct {
	students  map[uint]*models.Student
	nextID    uint
	createErr error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[uint]*models.Student{}}
}

func (r *fakeStudentRepo) add(student *models.Student) *models.Student {
	if student.ID == 0 {
		r.nextID++
		student.ID = r.nextID
	} else if student.ID > r.nextID {
		r.nextID = student.ID
	}
	r.students[student.ID] = student
	return student
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.students {
		if existing.Email == student.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.add(student)
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, student := range r.students {
		if student.Email == email {
			return student, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeStudentRepo) SetResetCode(ctx context.Context, id uint, code string, expiresAt time.Time) error {
	student, ok := r.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	student.PasswordResetCode = &code
	student.PasswordResetExpiresAt = &expiresAt
	return nil
}

func (r *fakeStudentRepo) ClearResetCode(ctx context.Context, id uint) error {
	student, ok := r.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	student.PasswordResetCode = nil
	student.PasswordResetExpiresAt = nil
	return nil
}

func (r *fakeStudentRepo) ConfirmPasswordReset(ctx context.Context, id uint, code, newHash string) (bool, error) {
	student, ok := r.students[id]
	if !ok || student.PasswordResetCode == nil || *student.PasswordResetCode != code {
		return false, nil
	}
	student.PasswordHash = newHash
	student.PasswordResetCode = nil
	student.PasswordResetExpiresAt = nil
	return true, nil
}

func (r *fakeStudentRepo) ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error) {
	var cleared int64
	for _, student := range r.students {
		if student.PasswordResetExpiresAt != nil && now.After(*student.PasswordResetExpiresAt) {
			student.PasswordResetCode = nil
			student.PasswordResetExpiresAt = nil
			cleared++
		}
	}
	return cleared, nil
}

// fakeLibraryRepo is an in-memory LibraryRepository for service tests.
type fakeLibraryRepo struct {
	libraries map[uint]*models.Library
	nextID    uint
}

func newFakeLibraryRepo() *fakeLibraryRepo {
	return &fakeLibraryRepo{libraries: map[uint]*models.Library{}}
}

func (r *fakeLibraryRepo) Create(ctx context.Context, library *models.Library) error {
	r.nextID++
	library.ID = r.nextID
	r.libraries[library.ID] = library
	return nil
}

func (r *fakeLibraryRepo) GetByID(ctx context.Context, id uint) (*models.Library, error) {
	library, ok := r.libraries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return library, nil
}

func (r *fakeLibraryRepo) Update(ctx context.Context, library *models.Library) error {
	if _, ok := r.libraries[library.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.libraries[library.ID] = library
	return nil
}

func (r *fakeLibraryRepo) List(ctx context.Context) ([]*models.Library, error) {
	out := make([]*models.Library, 0, len(r.libraries))
	for _, library := range r.libraries {
		out = append(out, library)
	}
	return out, nil
}

func (r *fakeLibraryRepo) Exists(ctx context.Context, id uint) (bool, error) {
	_, ok := r.libraries[id]
	return ok, nil
}

// fakeBookRepo is an in-memory BookRepository for service tests.
type fakeBookRepo struct {
	books     map[uint]*models.Book
	nextID    uint
	createErr error
	deleteErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uint]*models.Book{}}
}

func (r *fakeBookRepo) add(book *models.Book) *models.Book {
	if book.ID == 0 {
		r.nextID++
		book.ID = r.nextID
	} else if book.ID > r.nextID {
		r.nextID = book.ID
	}
	r.books[book.ID] = book
	return book
}

func (r *fakeBookRepo) Create(ctx context.Context, book *models.Book) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(book)
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, book *models.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context) ([]*models.Book, error) {
	out := make([]*models.Book, 0, len(r.books))
	for _, book := range r.books {
		out = append(out, book)
	}
	return out, nil
}

func (r *fakeBookRepo) ExistsByISBN(ctx context.Context, normalizedISBN string, excludeID uint) (bool, error) {
	for _, book := range r.books {
		if book.ISBN == normalizedISBN && book.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fakeLendingRepo is an in-memory LendingRepository for service tests.
type fakeLendingRepo struct {
	records   []*models.StudentBook
	nextID    uint
	createErr error
}

func newFakeLendingRepo() *fakeLendingRepo {
	return &fakeLendingRepo{}
}

func (r *fakeLendingRepo) activeFor(studentID, bookID uint) *models.StudentBook {
	for _, record := range r.records {
		if record.StudentID == studentID && record.BookID == bookID && record.ReturnDate == nil {
			return record
		}
	}
	return nil
}

func (r *fakeLendingRepo) Create(ctx context.Context, record *models.StudentBook) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.activeFor(record.StudentID, record.BookID) != nil {
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	record.ID = r.nextID
	r.records = append(r.records, record)
	return nil
}

func (r *fakeLendingRepo) ExistsActive(ctx context.Context, studentID, bookID uint) (bool, error) {
	return r.activeFor(studentID, bookID) != nil, nil
}

func (r *fakeLendingRepo) GetActive(ctx context.Context, studentID, bookID uint) (*models.StudentBook, error) {
	record := r.activeFor(studentID, bookID)
	if record == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeLendingRepo) MarkReturned(ctx context.Context, studentID, bookID uint, at time.Time) (bool, error) {
	record := r.activeFor(studentID, bookID)
	if record == nil {
		return false, nil
	}
	record.ReturnDate = &at
	return true, nil
}

func (r *fakeLendingRepo) ListActiveByStudent(ctx context.Context, studentID uint) ([]*models.StudentBook, error) {
	var out []*models.StudentBook
	for _, record := range r.records {
		if record.StudentID == studentID && record.ReturnDate == nil {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeLendingRepo) ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentBook, error) {
	var out []*models.StudentBook
	for _, record := range r.records {
		if record.StudentID == studentID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeLendingRepo) List(ctx context.Context, offset, limit int) ([]*models.StudentBook, int64, error) {
	total := int64(len(r.records))
	if offset >= len(r.records) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.records) {
		end = len(r.records)
	}
	return r.records[offset:end], total, nil
}

func (r *fakeLendingRepo) CountByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	for _, record := range r.records {
		if record.BookID == bookID {
			count++
		}
	}
	return count, nil
}

// fakeMailer records outgoing mail for service tests.
type fakeMailer struct {
	sent    []fakeMail
	sendErr error
}

type fakeMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(toAddress, subject, bodyText string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, fakeMail{to: toAddress, subject: subject, body: bodyText})
	return nil
}
