package main

import (
	"context"
	"os"
	_ "time/tzdata" // timezone names resolve without a system zoneinfo database

	"github.com/spf13/cobra"

	"github.com/luqmanhadi/oshikatsu/internal/config"
)

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "oshikatsu",
		Short: "Serve a page counting the days spent with each oshi",
		Long: `oshikatsu reads a JSON list of oshi and renders a page showing how many
days have passed since each one's start date. The data file is read again
on every render, so edits show up without a restart.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Load(configPath)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRenderCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
