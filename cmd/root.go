package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var useMemoryRegistry bool

var rootCmd = &cobra.Command{
	Use:   "facetrace",
	Short: "A face recognition service for identifying familiar people",
	Long: `Facetrace detects faces in camera frames, stabilizes them across
frames, and matches them against a registry of enrolled people.
Unknown faces can be enrolled with a name and relationship so they
are recognized on the next encounter.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&useMemoryRegistry, "memory", false,
		"Use an in-memory registry instead of PostgreSQL (records are lost on exit)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
