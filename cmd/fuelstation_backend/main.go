package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title Fuel Station Credit Ledger API
// @version 1.0
// @description Credits, payments and dashboard counts for the fuel station back-office.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "fuelstation_backend",
		Short: "Fuel station credit ledger",
		Long: `Runs the credit ledger HTTP API. Without a subcommand the server is started.
Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), logger)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), logger)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrateOnly(cmd.Context(), logger)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "sweep-overdue",
		Short: "Write the derived status back to every credit whose stored status is stale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweepOverdue(cmd.Context(), logger)
		},
	})

	return root
}
