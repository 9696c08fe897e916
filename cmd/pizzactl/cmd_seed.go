package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/pizza-delivery/api/internal/config"
	"github.com/pizza-delivery/api/internal/database"
)

var seedUser struct {
	username string
	email    string
	password string
	staff    bool
}

// pizzactl seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert bootstrap data",
}

// pizzactl seed user
var seedUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Create an active user (use --staff for a superuser)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedUser.username == "" || seedUser.email == "" {
			return errors.New("--username and --email are required")
		}
		if seedUser.password == "" {
			seedUser.password = "password123"
			log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(seedUser.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		user, err := database.New(pool).CreateUser(ctx, database.CreateUserParams{
			Username:       seedUser.username,
			Email:          seedUser.email,
			HashedPassword: string(hashed),
			IsStaff:        seedUser.staff,
			IsActive:       true,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("user %q or email %q already exists", seedUser.username, seedUser.email)
			}
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("Created user %d (%s, staff=%t)\n", user.ID, user.Username, user.IsStaff)
		return nil
	},
}

func init() {
	f := seedUserCmd.Flags()
	f.StringVar(&seedUser.username, "username", "", "login name")
	f.StringVar(&seedUser.email, "email", "", "email address")
	f.StringVar(&seedUser.password, "password", "", "plain-text password (hashed with bcrypt)")
	f.BoolVar(&seedUser.staff, "staff", false, "grant staff rights")
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg := config.Load()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
