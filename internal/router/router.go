// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-seatmap/internal/handler"
)

// RegisterRoutes registers routes that need no collaborators.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated venue reads.  mw (typically
// the rate limiter and response cache) wraps every route.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/venues", mw...)
	g.GET("", p.ListVenues)
	g.GET("/:id", p.GetVenue)
	g.GET("/:id/seats", p.GetSeats)
	g.GET("/:id/seats/:seatId", p.GetSeat)
	g.GET("/:id/sections/:sectionId/rows", p.GetSectionRows)
	// Prices are global but served per venue so clients need one base URL.
	g.GET("/:id/prices", p.GetPrices)
}
