package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alcyxob/workout-log/internal/service"
)

var tokenUser string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a user",
	Long: `Print a signed access token for the given user id.

Use it as "Authorization: Bearer <token>" against /api/v1, or paste it into
the sign-in form of the dashboard.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWT.Secret == "" {
			return errors.New("jwt.secret is not configured (set JWT_SECRET)")
		}
		tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
		token, err := tokens.IssueToken(tokenUser)
		if err != nil {
			return err
		}
		fmt.Println(token)
		color.New(color.Faint).Printf("valid for %s\n", cfg.JWT.Expiration)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id to put in the token")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
