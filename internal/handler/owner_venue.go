package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-seatmap/internal/logger"
	"github.com/iliyamo/venue-seatmap/internal/middleware"
	"github.com/iliyamo/venue-seatmap/internal/service"
)

// MaxVenueBytes bounds the size of an uploaded venue document.
const MaxVenueBytes = 8 << 20

// OwnerHandler replaces and removes venue documents.
type OwnerHandler struct {
	Catalog *service.VenueCatalog
	// Purge drops cached HTTP responses of a venue; nil when there is no
	// response cache.
	Purge func(c echo.Context, venueID string)
}

func NewOwnerHandler(catalog *service.VenueCatalog) *OwnerHandler {
	if catalog == nil {
		panic("nil VenueCatalog passed to NewOwnerHandler")
	}
	return &OwnerHandler{Catalog: catalog}
}

// PutVenue stores the request body as the venue's document.  The document
// is normalized first; invalid documents are rejected with 422 and nothing
// is stored.
func (h *OwnerHandler) PutVenue(c echo.Context) error {
	id := c.Param("id")
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxVenueBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body) > MaxVenueBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "venue document too large"})
	}
	if len(body) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty venue document"})
	}

	nv, err := h.Catalog.Save(c.Request().Context(), id, body)
	if err != nil {
		return venueError(c, err)
	}
	h.purge(c, id)
	logger.FromContext(c.Request().Context()).Info("venue stored",
		"venue_id", id, "seats", nv.SeatCount(), "user_id", middleware.UserID(c))
	return c.JSON(http.StatusOK, echo.Map{"venue_id": id, "name": nv.Name, "seat_count": nv.SeatCount()})
}

// DeleteVenue removes a venue.
func (h *OwnerHandler) DeleteVenue(c echo.Context) error {
	id := c.Param("id")
	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		return venueError(c, err)
	}
	h.purge(c, id)
	logger.FromContext(c.Request().Context()).Info("venue deleted", "venue_id", id, "user_id", middleware.UserID(c))
	return c.NoContent(http.StatusNoContent)
}

func (h *OwnerHandler) purge(c echo.Context, id string) {
	if h.Purge != nil {
		h.Purge(c, id)
	}
}

