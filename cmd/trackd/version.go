package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and Build are stamped via -ldflags at release time.
var (
	Version = "0.2.0"
	Build   = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			outputJSON(map[string]string{
				"version":  Version,
				"build":    Build,
				"go":       runtime.Version(),
				"platform": runtime.GOOS + "/" + runtime.GOARCH,
			})
			return
		}
		fmt.Printf("trackd %s\n", Version)
		fmt.Printf("  build:    %s\n", Build)
		fmt.Printf("  go:       %s\n", runtime.Version())
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
