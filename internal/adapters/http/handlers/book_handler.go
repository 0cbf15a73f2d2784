package handlers

import (
	"errors"

	"lms-backend/internal/core/domain"
	"lms-backend/internal/core/services"
	"lms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// List lists all books
func (h *BookHandler) List(c *fiber.Ctx) error {
	books, err := h.bookService.List(c.Context())
	if err != nil {
		return response.Internal(c, err, "Failed to list books")
	}
	return response.Success(c, "", books)
}

// Create handles book creation (admin only)
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req services.BookInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Title, author, ISBN and a valid library are required")
	}

	book, err := h.bookService.Create(c.Context(), &req)
	if err != nil {
		return h.mapCatalogError(c, err, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", book)
}

// Update handles book updates (admin only)
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book id")
	}

	var req services.BookInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Title, author, ISBN and a valid library are required")
	}

	book, err := h.bookService.Update(c.Context(), id, &req)
	if err != nil {
		return h.mapCatalogError(c, err, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", book)
}

// Delete handles book deletion (admin only)
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book id")
	}

	if err := h.bookService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrBookHasLendings):
			return response.Conflict(c, "Book has lending records and cannot be deleted")
		default:
			return response.Internal(c, err, "Failed to delete book")
		}
	}

	return response.Success(c, "Book deleted successfully", nil)
}

func (h *BookHandler) mapCatalogError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrBookNotFound):
		return response.NotFound(c, "Book not found")
	case errors.Is(err, domain.ErrLibraryNotFound):
		return response.NotFound(c, "Library not found")
	case errors.Is(err, domain.ErrInvalidISBN):
		return response.BadRequest(c, "ISBN must be 13 digits starting with 978 or 979")
	case errors.Is(err, domain.ErrDuplicateISBN):
		return response.Conflict(c, "ISBN already registered")
	default:
		return response.Internal(c, err, fallback)
	}
}
