package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iliyamo/venue-seatmap/internal/config"
	"github.com/iliyamo/venue-seatmap/internal/layout"
	"github.com/iliyamo/venue-seatmap/internal/logger"
	"github.com/iliyamo/venue-seatmap/internal/model"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

type normalizeOptions struct {
	neighbors bool
	prices    string
	seat      string
}

type venueReport struct {
	VenueID      string                   `json:"venue_id"`
	Name         string                   `json:"name"`
	SeatCount    int                      `json:"seat_count"`
	Sections     []sectionReport          `json:"sections"`
	Bounds       layout.Bounds            `json:"bounds"`
	Tiers        []layout.TierCount       `json:"tiers"`
	StatusCounts map[model.SeatStatus]int `json:"status_counts"`
}

type sectionReport struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Rows  []int  `json:"rows"`
}

type seatReport struct {
	Seat      *seatmap.SeatMeta  `json:"seat"`
	Neighbors *seatmap.Neighbors `json:"neighbors,omitempty"`
	Price     *decimal.Decimal   `json:"price,omitempty"`
}

func newNormalizeCommand() *cobra.Command {
	var opts normalizeOptions
	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Validate a venue document and print its normalized summary",
		Long: "Validate a venue document (JSON, comments allowed) and print a summary.\n" +
			"With --seat, print that seat's metadata, neighbors and price instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.neighbors, "neighbors", false, "Compute the neighbor graph")
	cmd.Flags().StringVar(&opts.prices, "prices", "", "YAML price tier file (default tiers when empty)")
	cmd.Flags().StringVar(&opts.seat, "seat", "", "Print one seat instead of the venue summary")
	return cmd
}

func runNormalize(out io.Writer, path string, opts normalizeOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tiers, err := config.LoadPriceTiers(opts.prices)
	if err != nil {
		return err
	}
	v, err := model.DecodeVenue(data)
	if err != nil {
		return fmt.Errorf("failed to parse venue: %w", err)
	}
	// A seat report always needs neighbors.
	nv, err := seatmap.Normalize(v, seatmap.Options{
		PriceByTier:         config.PriceTable(tiers),
		PrecomputeNeighbors: opts.neighbors || opts.seat != "",
	})
	if err != nil {
		return fmt.Errorf("failed to parse venue: %w", err)
	}
	logger.Info("venue normalized", "venue_id", nv.VenueID, "seats", nv.SeatCount())

	if opts.seat != "" {
		m, ok := nv.Seat(opts.seat)
		if !ok {
			return fmt.Errorf("seat %s not found in venue %s", opts.seat, nv.VenueID)
		}
		r := seatReport{Seat: m}
		if n, ok := nv.NeighborsOf(m.ID); ok {
			r.Neighbors = &n
		}
		if p, ok := nv.Price(m.PriceTier); ok {
			r.Price = &p
		}
		return writeJSON(out, r)
	}

	r := venueReport{
		VenueID:      nv.VenueID,
		Name:         nv.Name,
		SeatCount:    nv.SeatCount(),
		Sections:     make([]sectionReport, 0, len(nv.Sections)),
		Bounds:       layout.ComputeBounds(nv),
		Tiers:        layout.TierSummary(nv),
		StatusCounts: layout.StatusCounts(nv),
	}
	for _, s := range nv.Sections {
		sr := sectionReport{ID: s.ID, Label: s.Label, Rows: []int{}}
		for _, row := range nv.Rows(s.ID) {
			sr.Rows = append(sr.Rows, row.RowIndex)
		}
		r.Sections = append(r.Sections, sr)
	}
	return writeJSON(out, r)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
