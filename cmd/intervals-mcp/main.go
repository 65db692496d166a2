package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"intervalsmcp/pkg/config"
	mcpserver "intervalsmcp/pkg/server"
)

var version = "1.0.0"

var envFile string

var rootCmd = &cobra.Command{
	Use:   "intervals-mcp",
	Short: "MCP server for the Intervals.icu API",
	Long: `intervals-mcp exposes Intervals.icu training data as MCP tools over
stdio: activities, wellness, calendar events, the workout library, gear,
sport settings and performance curves.

Credentials come from INTERVALS_ICU_ATHLETE_ID and INTERVALS_ICU_API_KEY,
set in the environment or a .env file.`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("intervals-mcp %s\n", version)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file to load before reading the environment")
	rootCmd.AddCommand(versionCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	// stdout carries the MCP stream, so logs go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	s := mcpserver.New(cfg, logger, version)
	logger.Info("starting MCP server", "name", "intervals-icu", "version", version)
	return mcpserver.ServeStdio(s)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
