package main

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/pizza-delivery/api/internal/auth"
	"github.com/pizza-delivery/api/internal/config"
	"github.com/pizza-delivery/api/internal/database"
)

var tokenUsername string

// pizzactl token
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a development access token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUsername == "" {
			return errors.New("--username is required")
		}

		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		user, err := database.New(pool).GetUserByUsername(ctx, tokenUsername)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("user %q not found", tokenUsername)
			}
			return fmt.Errorf("look up user: %w", err)
		}

		cfg := config.Load()
		token, err := auth.GenerateToken(cfg.JWTSecret, user.Username, cfg.TokenTTL)
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "", "user to issue the token for")
}
