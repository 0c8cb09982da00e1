// Package cmd contains the pxbridge CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pxbridge",
	Short: "pxbridge exposes a PxWeb v2 statistical API as MCP tools",
	Long: "pxbridge is an MCP (Model Context Protocol) server that lets LLM agents\n" +
		"search, inspect and query statistical tables from a PxWeb v2 API\n" +
		"(by default, Statistics Norway's Statbank).",
	SilenceUsage: true,
}

// Execute runs the root command. On error the process exits with code 1;
// cobra has already printed the error to stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
