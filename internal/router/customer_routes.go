package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-seatmap/internal/handler"
	"github.com/iliyamo/venue-seatmap/internal/middleware"
)

// RegisterCustomer registers the selection endpoints.  They require a valid
// JWT with the CUSTOMER role; the selection is keyed by the token subject.
func RegisterCustomer(e *echo.Echo, h *handler.SelectionHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	mw = append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleCustomer),
	}, mw...)
	g := e.Group("/v1/venues/:id/selection", mw...)
	g.GET("", h.GetSelection)
	g.POST("/toggle", h.ToggleSeat)
	g.DELETE("", h.ClearSelection)
}
