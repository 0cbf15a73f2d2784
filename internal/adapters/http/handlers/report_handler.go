package handlers

import (
	"lms-backend/internal/adapters/http/middleware"
	"lms-backend/internal/core/services"
	"lms-backend/internal/pkg/authz"
	"lms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// LibraryBooks handles the per-library book report (admin only)
func (h *ReportHandler) LibraryBooks(c *fiber.Ctx) error {
	libraryID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid library id")
	}

	rows, err := h.reportService.LibraryBooks(c.Context(), libraryID)
	if err != nil {
		return response.Internal(c, err, "Failed to build report")
	}

	return response.Success(c, "", rows)
}

// StudentBooks handles the per-student borrow report (self or admin)
func (h *ReportHandler) StudentBooks(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	studentID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	if !authz.CanAccessStudent(principal, studentID) {
		return response.Forbidden(c, "You don't have permission to access this resource")
	}

	rows, err := h.reportService.StudentBooks(c.Context(), studentID)
	if err != nil {
		return response.Internal(c, err, "Failed to build report")
	}

	return response.Success(c, "", rows)
}
