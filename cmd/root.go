// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profile-stats",
	Short: "A CLI tool to keep a GitHub profile README up to date.",
	Long: `profile-stats collects a user's language usage and merged pull requests to
repositories they do not own, and rewrites the generated region of a profile README.
Generated regions are framed by sentinel comments such as <!-- OPEN_SOURCE_START -->
and <!-- OPEN_SOURCE_END -->; everything outside them is left untouched.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// newLogger returns a logger that discards everything unless --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func githubToken() string {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
		os.Exit(1)
	}
	return token
}
