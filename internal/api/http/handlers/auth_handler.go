package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amity-app/amity-service/internal/api/dto"
	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/service"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// AuthHandler exposes sign-in and credential recovery endpoints.
type AuthHandler struct {
	sessions    *service.SessionService
	credentials *service.CredentialService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionService, credentials *service.CredentialService) *AuthHandler {
	return &AuthHandler{sessions: sessions, credentials: credentials}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	identity, profile, token, exp, err := h.sessions.Login(c.Context(), req.Email, req.Password, req.ProfileID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"identity_id": identity.ID,
			"profile_id":  profile.ID,
			"role":        profile.Role.String(),
			"auth":        dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// RequestPasswordReset handles POST /auth/password/reset/request. The
// security code travels out-of-band only.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.credentials.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"email": req.Email}})
}

// VerifySecurityCode handles POST /auth/password/reset/verify.
func (h *AuthHandler) VerifySecurityCode(c *fiber.Ctx) error {
	var req dto.SecurityCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.SecurityCode == "" {
		return apperrors.NewValidationError("email and security code required", nil)
	}

	token, err := h.credentials.VerifySecurityCode(c.Context(), req.Email, req.SecurityCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"token": token}})
}

// RedeemToken handles POST /auth/password/new.
func (h *AuthHandler) RedeemToken(c *fiber.Ctx) error {
	var req dto.RedeemTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	if err := h.credentials.RedeemToken(c.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_set"}})
}

// ChangePassword handles PUT /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	if err := h.credentials.ChangePassword(c.Context(), principal.Identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}
