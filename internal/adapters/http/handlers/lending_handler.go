package handlers

import (
	"errors"

	"lms-backend/internal/adapters/http/middleware"
	"lms-backend/internal/core/domain"
	"lms-backend/internal/core/services"
	"lms-backend/internal/pkg/pagination"
	"lms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LendingHandler handles borrow/return endpoints
type LendingHandler struct {
	lendingService *services.LendingService
}

// NewLendingHandler creates a new lending handler
func NewLendingHandler(lendingService *services.LendingService) *LendingHandler {
	return &LendingHandler{lendingService: lendingService}
}

// LendingRequest represents a borrow or return request body
type LendingRequest struct {
	BookID uint `json:"book_id" validate:"required,gt=0"`
}

// Borrow handles borrowing a book for the authenticated student
func (h *LendingHandler) Borrow(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req LendingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Book id is required")
	}

	record, err := h.lendingService.Borrow(c.Context(), principal.StudentID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrAlreadyBorrowed):
			return response.Conflict(c, "Book already borrowed")
		default:
			return response.Internal(c, err, "Failed to borrow book")
		}
	}

	return response.Created(c, "Book borrowed successfully", record)
}

// Return handles returning a borrowed book
func (h *LendingHandler) Return(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req LendingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Book id is required")
	}

	record, err := h.lendingService.Return(c.Context(), principal.StudentID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveBorrow):
			return response.NotFound(c, "No active borrow for this book")
		default:
			return response.Internal(c, err, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", record)
}

// MyActiveBorrows lists the authenticated student's open borrows
func (h *LendingHandler) MyActiveBorrows(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	records, err := h.lendingService.ActiveBorrows(c.Context(), principal.StudentID)
	if err != nil {
		return response.Internal(c, err, "Failed to list borrows")
	}

	return response.Success(c, "", records)
}

// MyHistory lists the authenticated student's full borrow history
func (h *LendingHandler) MyHistory(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	records, err := h.lendingService.History(c.Context(), principal.StudentID)
	if err != nil {
		return response.Internal(c, err, "Failed to list history")
	}

	return response.Success(c, "", records)
}

// List lists the full lending ledger (admin only, paginated)
func (h *LendingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	records, total, err := h.lendingService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Internal(c, err, "Failed to list lending records")
	}

	return c.JSON(pagination.NewResponse(records, params, total))
}
