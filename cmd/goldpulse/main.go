package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "goldpulse",
	Short: "goldpulse - Vietnamese gold market monitor",
	Long: `goldpulse acquires gold prices from Vietnamese and regional markets,
normalizes them against the international benchmark, and archives
snapshot, history, and drawdown-analysis artifacts.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	// Provider credentials commonly live in a local .env during
	// development; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
