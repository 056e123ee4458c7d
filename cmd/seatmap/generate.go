package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/venue-seatmap/internal/generator"
	"github.com/iliyamo/venue-seatmap/internal/logger"
)

func newGenerateCommand() *cobra.Command {
	cfg := generator.DefaultConfig()
	var out string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a generated sample venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := generator.Generate(cfg)
			var buf bytes.Buffer
			if err := writeJSON(&buf, v); err != nil {
				return err
			}
			if out == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			logger.Info("venue written", "path", out, "seats", v.SeatCount())
			return nil
		},
	}
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for seat statuses")
	cmd.Flags().StringVar(&cfg.VenueID, "venue-id", cfg.VenueID, "Venue id")
	cmd.Flags().StringVar(&cfg.Name, "name", cfg.Name, "Venue name")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when empty)")
	return cmd
}
