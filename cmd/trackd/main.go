package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracklite/tracklite/internal/config"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "trackd",
	Short: "trackd - Issue tracking and kanban board server",
	Long: `A lightweight issue tracker with projects, a kanban board and comments.

State lives in process memory and is reseeded from a fixed demo dataset on
every start. Run 'trackd serve' to expose the REST API the board UI consumes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Apply viper configuration if flags weren't explicitly set.
		// Priority: flags > config file + env vars > defaults.
		if !cmd.Flags().Changed("json") {
			jsonOutput = config.GetBool("json")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// outputJSON outputs data as pretty-printed JSON
func outputJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
