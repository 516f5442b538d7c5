// Package main provides the entry point for the HR recruitment API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hr_recruitment",
	Short: "HR recruitment API server",
	Long:  "HR recruitment manages job postings, candidates moving through the hiring pipeline, and the hand-off of hired candidates to employee records.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
