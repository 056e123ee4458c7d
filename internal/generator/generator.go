// Package generator builds synthetic venues for demos, fixtures and load
// testing of the seat-map pipeline.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/iliyamo/venue-seatmap/internal/layout"
	"github.com/iliyamo/venue-seatmap/internal/model"
)

// SectionTemplate describes one generated section.
type SectionTemplate struct {
	ID          string
	Label       string
	PriceTier   int
	X, Y, Scale float64
	Rows        int
	SeatsPerRow int
}

// Config controls Generate.  Identical configs produce identical venues.
type Config struct {
	VenueID  string
	Name     string
	Width    float64
	Height   float64
	Seed     int64
	Sections []SectionTemplate
}

// DefaultSections is the six-section arena: two premium lower bowls, two
// standard upper bowls and two VIP boxes.
var DefaultSections = []SectionTemplate{
	{ID: "A", Label: "Lower Bowl A", PriceTier: 1, X: 100, Y: 100, Scale: 1.0, Rows: 6, SeatsPerRow: 8},
	{ID: "B", Label: "Lower Bowl B", PriceTier: 1, X: 500, Y: 100, Scale: 1.0, Rows: 6, SeatsPerRow: 8},
	{ID: "C", Label: "Upper Bowl C", PriceTier: 2, X: 100, Y: 400, Scale: 0.9, Rows: 5, SeatsPerRow: 10},
	{ID: "D", Label: "Upper Bowl D", PriceTier: 2, X: 600, Y: 400, Scale: 0.9, Rows: 5, SeatsPerRow: 10},
	{ID: "E", Label: "VIP Box E", PriceTier: 3, X: 900, Y: 150, Scale: 0.8, Rows: 4, SeatsPerRow: 6},
	{ID: "F", Label: "VIP Box F", PriceTier: 3, X: 900, Y: 400, Scale: 0.8, Rows: 4, SeatsPerRow: 6},
}

// DefaultConfig returns the arena configuration with a fixed seed.
func DefaultConfig() Config {
	return Config{
		VenueID:  "simple-arena-01",
		Name:     "Simple Arena",
		Width:    1200,
		Height:   800,
		Seed:     1,
		Sections: DefaultSections,
	}
}

// offset of the first seat inside a section
const sectionInset = 50.0

// Generate builds a venue from cfg.  Roughly one seat in ten is reserved and
// one in twenty sold.
func Generate(cfg Config) *model.Venue {
	rng := rand.New(rand.NewSource(cfg.Seed))
	v := &model.Venue{
		VenueID:  cfg.VenueID,
		Name:     cfg.Name,
		Map:      model.MapSize{Width: cfg.Width, Height: cfg.Height},
		Sections: make([]model.Section, 0, len(cfg.Sections)),
	}
	for _, tpl := range cfg.Sections {
		section := model.Section{
			ID:        tpl.ID,
			Label:     tpl.Label,
			Transform: &model.Transform{X: tpl.X, Y: tpl.Y, Scale: tpl.Scale},
			Rows:      make([]model.Row, 0, tpl.Rows),
		}
		for r := 1; r <= tpl.Rows; r++ {
			row := model.Row{Index: r, Seats: make([]model.Seat, 0, tpl.SeatsPerRow)}
			for c := 1; c <= tpl.SeatsPerRow; c++ {
				row.Seats = append(row.Seats, model.Seat{
					ID:        fmt.Sprintf("%s-%02d-%02d", tpl.ID, r, c),
					Col:       model.Ptr(c),
					X:         model.Ptr(float64(c-1)*layout.SeatSpacing + sectionInset),
					Y:         model.Ptr(float64(r-1)*layout.RowSpacing + sectionInset),
					PriceTier: tpl.PriceTier,
					Status:    randomStatus(rng),
				})
			}
			section.Rows = append(section.Rows, row)
		}
		v.Sections = append(v.Sections, section)
	}
	return v
}

func randomStatus(rng *rand.Rand) model.SeatStatus {
	status := model.StatusAvailable
	if rng.Float64() < 0.1 {
		status = model.StatusReserved
	}
	if rng.Float64() < 0.05 {
		status = model.StatusSold
	}
	return status
}
