// Package layout derives canvas geometry and summary figures from a
// normalized venue.  Renderers use Bounds to size their view box.
package layout

import (
	"math"
	"sort"

	"github.com/iliyamo/venue-seatmap/internal/model"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

// Drawing constants shared by the generator and renderers.
const (
	SeatSpacing    = 40.0
	RowSpacing     = 45.0
	SectionPadding = 30.0
	SVGPadding     = 80.0
)

// Bounds is the extent of all seats in venue coordinates.  The view box adds
// SVGPadding on every side.
type Bounds struct {
	MinX          float64 `json:"minX"`
	MaxX          float64 `json:"maxX"`
	MinY          float64 `json:"minY"`
	MaxY          float64 `json:"maxY"`
	ViewBoxWidth  float64 `json:"viewBoxWidth"`
	ViewBoxHeight float64 `json:"viewBoxHeight"`
}

// ComputeBounds measures the absolute seat positions of nv.  A venue with no
// seats yields the zero Bounds.
func ComputeBounds(nv *seatmap.NormalizedVenue) Bounds {
	if len(nv.FlatSeats) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, s := range nv.FlatSeats {
		x, y := s.Absolute()
		b.MinX = math.Min(b.MinX, x)
		b.MaxX = math.Max(b.MaxX, x)
		b.MinY = math.Min(b.MinY, y)
		b.MaxY = math.Max(b.MaxY, y)
	}
	b.ViewBoxWidth = b.MaxX - b.MinX + SVGPadding*2
	b.ViewBoxHeight = b.MaxY - b.MinY + SVGPadding*2
	return b
}

// TierCount is the number of seats in one price tier.
type TierCount struct {
	Tier  int `json:"tier"`
	Seats int `json:"seats"`
}

// TierSummary lists the distinct tiers of nv in ascending order.
func TierSummary(nv *seatmap.NormalizedVenue) []TierCount {
	counts := map[int]int{}
	for _, s := range nv.FlatSeats {
		counts[s.PriceTier]++
	}
	out := make([]TierCount, 0, len(counts))
	for tier, n := range counts {
		out = append(out, TierCount{Tier: tier, Seats: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out
}

// StatusCounts counts seats per status.
func StatusCounts(nv *seatmap.NormalizedVenue) map[model.SeatStatus]int {
	out := make(map[model.SeatStatus]int, 4)
	for _, s := range nv.FlatSeats {
		out[s.Status]++
	}
	return out
}
