// Package main provides the cheatsheet_agent CLI for packing topics onto a fixed page budget.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cheatsheet_agent",
	Short: "Space-aware cheat sheet packer",
	Long:  "Cheat sheet packer estimates how much content fits on a fixed page budget, selects the topics that fill it best, and explains how to fix selections that under- or overflow.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
