package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "cyclebench",
	Short: "Exercise the cyclekit collector against synthetic object graphs",
	Long: `cyclebench builds object graphs described in a TOML workload file,
runs collection passes over them, and reports how many objects each pass
reclaimed and how long it took. It is the quickest way to see what a given
graph shape costs the collector.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show per-pass collector debug events")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output results as JSON")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
