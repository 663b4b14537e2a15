package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/amity-app/amity-service/internal/api/dto"
	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/service"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// MembersHandler exposes member lifecycle and profile endpoints.
type MembersHandler struct {
	members *service.MemberService
	binding *service.BindingService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(members *service.MemberService, binding *service.BindingService) *MembersHandler {
	return &MembersHandler{members: members, binding: binding}
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func memberResponse(identity *domain.Identity) dto.MemberResponse {
	return dto.MemberResponse{
		ID:          identity.ID,
		FullName:    identity.FullName(),
		Email:       identity.Email,
		PhoneNumber: identity.PhoneNumber,
		Active:      identity.Active,
	}
}

// Create handles POST /members.
func (h *MembersHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	role, ok := domain.RoleByName(req.Role)
	if !ok {
		return apperrors.NewValidationError("role does not exist", map[string]any{"role": req.Role})
	}

	identity, err := h.members.CreateMember(c.Context(), principal, service.CreateMemberInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
		ResourceID:  req.PropertyID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": memberResponse(identity)})
}

// ListByRole handles GET /members/roles/:role.
func (h *MembersHandler) ListByRole(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	role, ok := domain.RoleByName(c.Params("role"))
	if !ok {
		return apperrors.NewValidationError("role does not exist", nil)
	}

	identities, err := h.members.MembersByRole(c.Context(), principal, role)
	if err != nil {
		return err
	}
	resp := make([]dto.MemberResponse, 0, len(identities))
	for i := range identities {
		resp = append(resp, memberResponse(&identities[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// RolesBelow handles GET /members/roles.
func (h *MembersHandler) RolesBelow(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	roles, err := h.members.RolesBelow(principal)
	if err != nil {
		return err
	}
	resp := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		resp = append(resp, dto.RoleResponse{ID: int16(role), Name: role.String()})
	}
	return c.JSON(fiber.Map{"roles_list": resp})
}

// UnassignedProperties handles GET /members/roles/:role/properties.
func (h *MembersHandler) UnassignedProperties(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	role, ok := domain.RoleByName(c.Params("role"))
	if !ok {
		return apperrors.NewValidationError("role does not exist", nil)
	}

	var communityScope *string
	if scope := c.Query("community_id"); scope != "" {
		communityScope = &scope
	}

	refs, err := h.binding.UnassignedResources(c.Context(), principal, role, communityScope)
	if err != nil {
		return err
	}
	resp := make([]dto.ResourceRefResponse, 0, len(refs))
	for _, ref := range refs {
		resp = append(resp, dto.ResourceRefResponse{ID: ref.ID, Name: ref.Name})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Activate handles PUT /members/:id/activate.
func (h *MembersHandler) Activate(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.members.ActivateMember(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"is_active": true}})
}

// Deactivate handles PUT /members/:id/deactivate.
func (h *MembersHandler) Deactivate(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.members.DeactivateMember(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"is_active": false}})
}

// GetProfileInfo handles GET /members/:id/profile.
func (h *MembersHandler) GetProfileInfo(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	identity, err := h.members.GetProfileInfo(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberResponse(identity)})
}

// UpdateProfileInfo handles PUT /members/:id/profile.
func (h *MembersHandler) UpdateProfileInfo(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.ProfileInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	identity, err := h.members.UpdateProfileInfo(c.Context(), principal, c.Params("id"), service.ProfileInfoUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberResponse(identity)})
}
