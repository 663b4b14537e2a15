package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/amity-app/amity-service/internal/api/dto"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/service"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// BuildingsHandler exposes building management endpoints.
type BuildingsHandler struct {
	buildings *service.BuildingService
}

// NewBuildingsHandler constructs handler.
func NewBuildingsHandler(buildings *service.BuildingService) *BuildingsHandler {
	return &BuildingsHandler{buildings: buildings}
}

func buildingResponse(building *domain.Building) dto.BuildingResponse {
	return dto.BuildingResponse{
		ID:            building.ID,
		CommunityID:   building.CommunityID,
		Name:          building.Name,
		State:         building.State,
		Address:       building.Address,
		PhoneNumber:   building.PhoneNumber,
		ContactPerson: building.ContactPerson,
		SafetyStatus:  building.SafetyStatus,
	}
}

func parseBuildingRequest(c *fiber.Ctx) (dto.BuildingRequest, error) {
	var req dto.BuildingRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	return req, nil
}

// Create handles POST /communities/:communityID/buildings.
func (h *BuildingsHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	req, err := parseBuildingRequest(c)
	if err != nil {
		return err
	}

	building, err := h.buildings.CreateBuilding(c.Context(), principal, c.Params("communityID"), service.BuildingInput{
		Name:        req.Name,
		State:       req.State,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": buildingResponse(building)})
}

// List handles GET /communities/:communityID/buildings.
func (h *BuildingsHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	buildings, err := h.buildings.ListBuildings(c.Context(), principal, c.Params("communityID"), limit, offset)
	if err != nil {
		return err
	}
	resp := make([]dto.BuildingResponse, 0, len(buildings))
	for i := range buildings {
		resp = append(resp, buildingResponse(&buildings[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /buildings/:id.
func (h *BuildingsHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	building, err := h.buildings.GetBuilding(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": buildingResponse(building)})
}

// Update handles PUT /buildings/:id.
func (h *BuildingsHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	req, err := parseBuildingRequest(c)
	if err != nil {
		return err
	}

	building, err := h.buildings.UpdateBuilding(c.Context(), principal, c.Params("id"), service.BuildingInput{
		Name:        req.Name,
		State:       req.State,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": buildingResponse(building)})
}

// SwitchSafetyLock handles PUT /buildings/:id/safety.
func (h *BuildingsHandler) SwitchSafetyLock(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	building, err := h.buildings.SwitchSafetyLock(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"safety_status": building.SafetyStatus}})
}
