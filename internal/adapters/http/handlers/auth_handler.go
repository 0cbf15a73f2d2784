package handlers

import (
	"errors"

	"lms-backend/internal/adapters/http/middleware"
	"lms-backend/internal/core/domain"
	"lms-backend/internal/core/services"
	"lms-backend/internal/pkg/authz"
	"lms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and password reset endpoints
type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.PasswordResetService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, resetService *services.PasswordResetService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
	}
}

// ForgotPasswordRequest represents the reset request body
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the reset confirmation body
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Register handles student registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Full name, a valid email and a password of at least 8 characters are required")
	}

	student, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			return response.BadRequest(c, "Password must contain an upper-case letter, a lower-case letter and a digit")
		case errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		default:
			return response.Internal(c, err, "Failed to register")
		}
	}

	return response.Created(c, "Student registered successfully", student)
}

// Login handles student login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		default:
			return response.Internal(c, err, "Failed to login")
		}
	}

	return response.Success(c, "Logged in successfully", result)
}

// GetStudent handles fetching a student profile (self or admin)
func (h *AuthHandler) GetStudent(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	if !authz.CanAccessStudent(principal, id) {
		return response.Forbidden(c, "You don't have permission to access this resource")
	}

	student, err := h.authService.GetStudent(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStudentNotFound):
			return response.NotFound(c, "Student not found")
		default:
			return response.Internal(c, err, "Failed to fetch student")
		}
	}

	return response.Success(c, "", student)
}

// ForgotPassword handles a password reset request
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "A valid email is required")
	}

	if err := h.resetService.RequestReset(c.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotRegistered):
			return response.NotFound(c, "Email not registered")
		default:
			return response.Internal(c, err, "Failed to send reset code")
		}
	}

	return response.Success(c, "Reset code sent", nil)
}

// ResetPassword handles a password reset confirmation
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Email, a 6-digit code and a new password of at least 8 characters are required")
	}

	err := h.resetService.ConfirmReset(c.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Code must be exactly 6 digits")
		case errors.Is(err, domain.ErrWeakPassword):
			return response.BadRequest(c, "Password must contain an upper-case letter, a lower-case letter and a digit")
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoResetRequested):
			return response.NotFound(c, "No pending reset for this email")
		case errors.Is(err, domain.ErrResetCodeExpired):
			return response.BadRequest(c, "Reset code expired, request a new one")
		case errors.Is(err, domain.ErrResetCodeMismatch):
			return response.BadRequest(c, "Reset code is incorrect")
		case errors.Is(err, domain.ErrSamePassword):
			return response.BadRequest(c, "New password must differ from the current password")
		default:
			return response.Internal(c, err, "Failed to reset password")
		}
	}

	return response.Success(c, "Password reset successfully", nil)
}
