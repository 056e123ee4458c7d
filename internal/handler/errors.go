package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-seatmap/internal/logger"
	"github.com/iliyamo/venue-seatmap/internal/repository"
	"github.com/iliyamo/venue-seatmap/internal/selection"
	"github.com/iliyamo/venue-seatmap/internal/service"
)

// venueError writes the JSON error response for err.  Unknown venues map
// to 404, documents that fail to normalize to 422 and anything else to 500.
func venueError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrVenueNotFound), errors.Is(err, repository.ErrInvalidVenueID):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case service.IsInvalidVenue(err):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "failed to parse venue: " + err.Error()})
	case errors.Is(err, selection.ErrUnknownSeat):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, selection.ErrSeatUnavailable), errors.Is(err, selection.ErrLimitReached):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	logger.FromContext(c.Request().Context()).Error("request failed",
		"method", c.Request().Method, "path", c.Path(), "venue_id", c.Param("id"), "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
