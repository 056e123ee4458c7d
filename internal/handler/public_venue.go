// Package handler exposes the HTTP handlers of the seat-map API.  Public
// handlers serve read-only views of normalized venues; customer handlers
// manage a user's seat selection; owner handlers replace venue documents.
package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-seatmap/internal/layout"
	"github.com/iliyamo/venue-seatmap/internal/model"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
	"github.com/iliyamo/venue-seatmap/internal/service"
)

// PublicHandler serves unauthenticated venue reads.
type PublicHandler struct {
	Catalog *service.VenueCatalog
}

func NewPublicHandler(catalog *service.VenueCatalog) *PublicHandler {
	if catalog == nil {
		panic("nil VenueCatalog passed to NewPublicHandler")
	}
	return &PublicHandler{Catalog: catalog}
}

// VenueSummary is the response of GET /v1/venues/:id.
type VenueSummary struct {
	VenueID      string                   `json:"venue_id"`
	Name         string                   `json:"name"`
	Map          model.MapSize            `json:"map"`
	Sections     []SectionSummary         `json:"sections"`
	SeatCount    int                      `json:"seat_count"`
	Bounds       layout.Bounds            `json:"bounds"`
	Tiers        []layout.TierCount       `json:"tiers"`
	StatusCounts map[model.SeatStatus]int `json:"status_counts"`
}

// SectionSummary is a section with its row count.
type SectionSummary struct {
	seatmap.SectionInfo
	Rows int `json:"rows"`
}

// PublicSeat is a seat with its absolute position on the venue canvas.
type PublicSeat struct {
	*seatmap.SeatMeta
	AbsX float64 `json:"absX"`
	AbsY float64 `json:"absY"`
}

// SeatDetail is the response of GET /v1/venues/:id/seats/:seatId.  Price is
// omitted when the seat's tier has no configured price.
type SeatDetail struct {
	PublicSeat
	Neighbors *seatmap.Neighbors `json:"neighbors,omitempty"`
	Price     *decimal.Decimal   `json:"price,omitempty"`
}

// PriceEntry is one row of the tier price table.
type PriceEntry struct {
	Tier  int             `json:"tier"`
	Price decimal.Decimal `json:"price"`
}

func publicSeat(m *seatmap.SeatMeta) PublicSeat {
	x, y := m.Absolute()
	return PublicSeat{SeatMeta: m, AbsX: x, AbsY: y}
}

// ListVenues returns the stored venues.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	list, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return venueError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// GetVenue returns the venue summary: sections, bounds and seat counts.
func (h *PublicHandler) GetVenue(c echo.Context) error {
	nv, err := h.Catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return venueError(c, err)
	}
	sections := make([]SectionSummary, 0, len(nv.Sections))
	for _, s := range nv.Sections {
		sections = append(sections, SectionSummary{SectionInfo: s, Rows: len(nv.Rows(s.ID))})
	}
	return c.JSON(http.StatusOK, VenueSummary{
		VenueID:      nv.VenueID,
		Name:         nv.Name,
		Map:          nv.Map,
		Sections:     sections,
		SeatCount:    nv.SeatCount(),
		Bounds:       layout.ComputeBounds(nv),
		Tiers:        layout.TierSummary(nv),
		StatusCounts: layout.StatusCounts(nv),
	})
}

// GetSeats returns every seat in document order.  ?status= filters by
// seat status.
func (h *PublicHandler) GetSeats(c echo.Context) error {
	nv, err := h.Catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return venueError(c, err)
	}
	status := model.SeatStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	out := make([]PublicSeat, 0, len(nv.FlatSeats))
	for _, m := range nv.FlatSeats {
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, publicSeat(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetSectionRows returns the sorted rows of one section.
func (h *PublicHandler) GetSectionRows(c echo.Context) error {
	nv, err := h.Catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return venueError(c, err)
	}
	rows, ok := nv.RowsBySection[c.Param("sectionId")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"section_id": c.Param("sectionId"), "rows": rows})
}

// GetSeat returns one seat with its neighbors and price.
func (h *PublicHandler) GetSeat(c echo.Context) error {
	nv, err := h.Catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return venueError(c, err)
	}
	m, ok := nv.Seat(c.Param("seatId"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	}
	out := SeatDetail{PublicSeat: publicSeat(m)}
	if n, ok := nv.NeighborsOf(m.ID); ok {
		out.Neighbors = &n
	}
	if p, ok := nv.Price(m.PriceTier); ok {
		out.Price = &p
	}
	return c.JSON(http.StatusOK, out)
}

// GetPrices returns the tier price table in ascending tier order.
func (h *PublicHandler) GetPrices(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": priceEntries(h.Catalog.Prices())})
}

func priceEntries(t seatmap.PriceTable) []PriceEntry {
	out := make([]PriceEntry, 0, len(t))
	for tier, p := range t {
		out = append(out, PriceEntry{Tier: tier, Price: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out
}
