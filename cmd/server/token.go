package main

import (
	"fmt"

	"cofounder-match/internal/database/seeder"
	"cofounder-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id|demo-handle>",
	Short: "Print an access token for local testing",
	Long: "Print an access token signed with JWT_ACCESS_SECRET. The argument is a user id " +
		"or the handle of a demo profile (marie, thomas, sophie, lucas, emma, hugo).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}

		userID, err := uuid.Parse(args[0])
		if err != nil {
			userID = seeder.DemoUserID(args[0])
		}

		svc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn)
		token, err := svc.GenerateAccessToken(userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
