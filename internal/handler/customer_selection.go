package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-seatmap/internal/logger"
	"github.com/iliyamo/venue-seatmap/internal/middleware"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
	"github.com/iliyamo/venue-seatmap/internal/selection"
	"github.com/iliyamo/venue-seatmap/internal/service"
)

// SelectionHandler manages the seat selection of the authenticated user.
// Each request restores the stored selection, syncs it against the current
// venue and writes it back.
type SelectionHandler struct {
	Catalog  *service.VenueCatalog
	Store    selection.Store
	MaxSeats int
}

func NewSelectionHandler(catalog *service.VenueCatalog, store selection.Store, maxSeats int) *SelectionHandler {
	if catalog == nil || store == nil {
		panic("nil dependency passed to NewSelectionHandler")
	}
	if maxSeats <= 0 {
		maxSeats = selection.DefaultMaxSeats
	}
	return &SelectionHandler{Catalog: catalog, Store: store, MaxSeats: maxSeats}
}

// ToggleRequest is the body of POST /v1/venues/:id/selection/toggle.
type ToggleRequest struct {
	SeatID string `json:"seat_id" validate:"required,max=128"`
}

// SelectionResponse describes the selection after a request.
type SelectionResponse struct {
	VenueID  string          `json:"venue_id"`
	Seats    []string        `json:"seats"`
	MaxSeats int             `json:"max_seats"`
	AtLimit  bool            `json:"at_limit"`
	Total    decimal.Decimal `json:"total"`
	Unpriced []string        `json:"unpriced,omitempty"`
	Selected *bool           `json:"selected,omitempty"`
}

// load restores the user's selection for the venue in the path.
func (h *SelectionHandler) load(c echo.Context) (*seatmap.NormalizedVenue, *selection.State, error) {
	ctx := c.Request().Context()
	nv, err := h.Catalog.Get(ctx, c.Param("id"))
	if err != nil {
		return nil, nil, err
	}
	ids, err := h.Store.Load(ctx, nv.VenueID, middleware.UserID(c))
	if err != nil {
		return nil, nil, err
	}
	st := selection.Restore(h.MaxSeats, nv.VenueID, ids)
	if st.Sync(nv) {
		logger.FromContext(ctx).Debug("selection pruned", "venue_id", nv.VenueID, "user_id", middleware.UserID(c))
	}
	return nv, st, nil
}

func (h *SelectionHandler) respond(c echo.Context, nv *seatmap.NormalizedVenue, st *selection.State, selected *bool) error {
	total, unpriced := st.Total(nv)
	return c.JSON(http.StatusOK, SelectionResponse{
		VenueID:  nv.VenueID,
		Seats:    st.Selected(),
		MaxSeats: st.MaxSeats(),
		AtLimit:  st.AtLimit(),
		Total:    total,
		Unpriced: unpriced,
		Selected: selected,
	})
}

// GetSelection returns the current selection and its total.
func (h *SelectionHandler) GetSelection(c echo.Context) error {
	nv, st, err := h.load(c)
	if err != nil {
		return venueError(c, err)
	}
	if err := h.Store.Save(c.Request().Context(), nv.VenueID, middleware.UserID(c), st.Selected()); err != nil {
		return venueError(c, err)
	}
	return h.respond(c, nv, st, nil)
}

// ToggleSeat selects or deselects one available seat.
func (h *SelectionHandler) ToggleSeat(c echo.Context) error {
	var req ToggleRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	nv, st, err := h.load(c)
	if err != nil {
		return venueError(c, err)
	}
	seat, ok := nv.Seat(req.SeatID)
	if !ok {
		return venueError(c, selection.ErrUnknownSeat)
	}
	selected, err := st.Toggle(seat)
	if err != nil {
		return venueError(c, err)
	}
	if err := h.Store.Save(c.Request().Context(), nv.VenueID, middleware.UserID(c), st.Selected()); err != nil {
		return venueError(c, err)
	}
	return h.respond(c, nv, st, &selected)
}

// ClearSelection drops the user's selection for the venue.
func (h *SelectionHandler) ClearSelection(c echo.Context) error {
	ctx := c.Request().Context()
	nv, err := h.Catalog.Get(ctx, c.Param("id"))
	if err != nil {
		return venueError(c, err)
	}
	if err := h.Store.Remove(ctx, nv.VenueID, middleware.UserID(c)); err != nil {
		return venueError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
