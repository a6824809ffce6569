package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/spf13/cobra"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a bearer token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set; the API runs without authentication")
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.JWTExpiryDuration
		}
		token, err := middleware.IssueToken(cfg.JWTSecret, cfg.JWTIssuer, args[0], ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
}
