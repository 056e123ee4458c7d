package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/venue-seatmap/internal/utils"
)

func newTokenCommand() *cobra.Command {
	var (
		secret, user, role string
		ttl                int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := utils.NewAccessToken(secret, user, role, time.Duration(ttl)*time.Minute)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), at)
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (JWT_SECRET of the server)")
	cmd.Flags().StringVar(&user, "user", "", "Subject claim")
	cmd.Flags().StringVar(&role, "role", "CUSTOMER", "Role claim (CUSTOMER or OWNER)")
	cmd.Flags().IntVar(&ttl, "ttl", 60, "Lifetime in minutes")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
