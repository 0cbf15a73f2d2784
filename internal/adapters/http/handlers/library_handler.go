package handlers

import (
	"errors"

	"lms-backend/internal/core/domain"
	"lms-backend/internal/core/services"
	"lms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LibraryHandler handles library endpoints
type LibraryHandler struct {
	libraryService *services.LibraryService
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryService *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// List lists all libraries with their books
func (h *LibraryHandler) List(c *fiber.Ctx) error {
	libraries, err := h.libraryService.List(c.Context())
	if err != nil {
		return response.Internal(c, err, "Failed to list libraries")
	}
	return response.Success(c, "", libraries)
}

// Create handles library creation (admin only)
func (h *LibraryHandler) Create(c *fiber.Ctx) error {
	var req services.LibraryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Library name is required")
	}

	library, err := h.libraryService.Create(c.Context(), &req)
	if err != nil {
		return response.Internal(c, err, "Failed to create library")
	}

	return response.Created(c, "Library created successfully", library)
}

// Update handles library updates (admin only)
func (h *LibraryHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid library id")
	}

	var req services.LibraryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Library name is required")
	}

	library, err := h.libraryService.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLibraryNotFound):
			return response.NotFound(c, "Library not found")
		default:
			return response.Internal(c, err, "Failed to update library")
		}
	}

	return response.Success(c, "Library updated successfully", library)
}
