package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amity-app/amity-service/internal/api/http/handlers"
	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Members        *handlers.MembersHandler
	Communities    *handlers.CommunitiesHandler
	Buildings      *handlers.BuildingsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/verify", cfg.Auth.VerifySecurityCode)
	authGroup.Post("/password/new", cfg.Auth.RedeemToken)
	authGroup.Put("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	members := app.Group("/members", cfg.AuthMiddleware.Handle)
	members.Post("", cfg.Members.Create)
	members.Get("/roles", auth.RequireMinimumRank(domain.RoleCoordinator), cfg.Members.RolesBelow)
	members.Get("/roles/:role", cfg.Members.ListByRole)
	members.Get("/roles/:role/properties", auth.RequireMinimumRank(domain.RoleCoordinator), cfg.Members.UnassignedProperties)
	members.Put("/:id/activate", auth.RequireMinimumRank(domain.RoleCoordinator), cfg.Members.Activate)
	members.Put("/:id/deactivate", auth.RequireRoles(domain.RoleAdministrator, domain.RoleSupervisor), cfg.Members.Deactivate)
	members.Get("/:id/profile", cfg.Members.GetProfileInfo)
	members.Put("/:id/profile", cfg.Members.UpdateProfileInfo)

	communities := app.Group("/communities", cfg.AuthMiddleware.Handle)
	communities.Get("/search-predictions", auth.RequireRoles(domain.RoleAdministrator), cfg.Communities.SearchPredictions)
	communities.Post("", cfg.Communities.Create)
	communities.Get("", cfg.Communities.List)
	communities.Get("/:id", cfg.Communities.Get)
	communities.Put("/:id", cfg.Communities.Update)
	communities.Put("/:id/safety", cfg.Communities.SwitchSafetyLock)
	communities.Post("/:communityID/buildings", cfg.Buildings.Create)
	communities.Get("/:communityID/buildings", cfg.Buildings.List)

	buildings := app.Group("/buildings", cfg.AuthMiddleware.Handle)
	buildings.Get("/:id", cfg.Buildings.Get)
	buildings.Put("/:id", cfg.Buildings.Update)
	buildings.Put("/:id/safety", cfg.Buildings.SwitchSafetyLock)
}
