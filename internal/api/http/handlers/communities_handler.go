package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/amity-app/amity-service/internal/api/dto"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/service"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// CommunitiesHandler exposes community management endpoints.
type CommunitiesHandler struct {
	communities *service.CommunityService
}

// NewCommunitiesHandler constructs handler.
func NewCommunitiesHandler(communities *service.CommunityService) *CommunitiesHandler {
	return &CommunitiesHandler{communities: communities}
}

func communityResponse(community *domain.Community) dto.CommunityResponse {
	return dto.CommunityResponse{
		ID:            community.ID,
		Name:          community.Name,
		State:         community.State,
		ZipCode:       community.ZipCode,
		Address:       community.Address,
		PhoneNumber:   community.PhoneNumber,
		Description:   community.Description,
		ContactPerson: community.ContactPerson,
		SafetyStatus:  community.SafetyStatus,
	}
}

func parseCommunityRequest(c *fiber.Ctx) (dto.CommunityRequest, error) {
	var req dto.CommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	return req, nil
}

// Create handles POST /communities.
func (h *CommunitiesHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	req, err := parseCommunityRequest(c)
	if err != nil {
		return err
	}

	community, err := h.communities.CreateCommunity(c.Context(), principal, service.CommunityInput{
		Name:        req.Name,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": communityResponse(community)})
}

// List handles GET /communities.
func (h *CommunitiesHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var safetyStatus *bool
	if raw := c.Query("safety_status"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid safety_status", nil)
		}
		safetyStatus = &parsed
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	communities, err := h.communities.ListCommunities(c.Context(), principal, safetyStatus, limit, offset)
	if err != nil {
		return err
	}
	resp := make([]dto.CommunityResponse, 0, len(communities))
	for i := range communities {
		resp = append(resp, communityResponse(&communities[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /communities/:id.
func (h *CommunitiesHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	community, err := h.communities.GetCommunity(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": communityResponse(community)})
}

// Update handles PUT /communities/:id.
func (h *CommunitiesHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	req, err := parseCommunityRequest(c)
	if err != nil {
		return err
	}

	community, err := h.communities.UpdateCommunity(c.Context(), principal, c.Params("id"), service.CommunityInput{
		Name:        req.Name,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": communityResponse(community)})
}

// SwitchSafetyLock handles PUT /communities/:id/safety.
func (h *CommunitiesHandler) SwitchSafetyLock(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	community, err := h.communities.SwitchSafetyLock(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"safety_status": community.SafetyStatus}})
}

// SearchPredictions handles GET /communities/search-predictions.
func (h *CommunitiesHandler) SearchPredictions(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	terms, err := h.communities.SearchPredictions(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"search_list": terms})
}
