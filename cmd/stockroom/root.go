package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the stockroom CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stockroom",
		Short: "Stockroom - warehouse inventory backend",
		Long: `Stockroom serves the warehouse inventory web application: account
registration and login, item and order lookups, and staff donation intake,
backed by PostgreSQL.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
