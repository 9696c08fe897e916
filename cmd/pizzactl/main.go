package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pizzactl",
	Short:         "Operate the pizza delivery API",
	Long:          "pizzactl runs schema migrations, seeds users and issues development tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Database
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	seedCmd.AddCommand(seedUserCmd)
	rootCmd.AddCommand(seedCmd)

	// Auth
	rootCmd.AddCommand(tokenCmd)
}
