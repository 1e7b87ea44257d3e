// Package cmd provides the command-line interface for vmquiz.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vmquiz",
	Short: "vmquiz generates exercises on hierarchical virtual memory sizes.",
	Long: `vmquiz generates exercises on hierarchical virtual memory sizes. ` +
		`Each problem describes a paging system with some values hidden; ` +
		`the hidden values can be derived from the shown ones. Problems ` +
		`can be printed, recorded into a SQLite database, or served over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers run before the process exits.
func Execute() {
	loadEnv()

	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// loadEnv loads the variables in the .env file of the working directory, if
// there is one. Variables already set are not overridden.
func loadEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env file: %v\n", err)
	}
}
