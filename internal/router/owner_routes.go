package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-seatmap/internal/handler"
	"github.com/iliyamo/venue-seatmap/internal/middleware"
)

// RegisterOwner registers the venue write endpoints for the OWNER role.
func RegisterOwner(e *echo.Echo, h *handler.OwnerHandler, jwtSecret string) {
	g := e.Group("/v1/venues",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleOwner),
	)
	g.PUT("/:id", h.PutVenue)
	g.DELETE("/:id", h.DeleteVenue)
}
