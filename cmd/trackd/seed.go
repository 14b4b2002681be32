package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklite/tracklite/internal/storage"
	"github.com/tracklite/tracklite/internal/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Show the built-in demo dataset",
	Long: `Print the dataset the server is seeded with on every start.

All demo users share the password "password123".`,
	Run: func(cmd *cobra.Command, args []string) {
		seed, err := storage.DefaultSeed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(seed)
			return
		}

		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Println("Users:")
		for _, u := range seed.Users {
			fmt.Printf("  %s  %s <%s>\n", cyan(u.ID), u.Name, u.Email)
		}

		fmt.Println("\nProjects:")
		for _, p := range seed.Projects {
			fmt.Printf("  %s  [%s] %s (lead: %s)\n", cyan(p.ID), p.Key, p.Name, p.LeadID)
		}

		fmt.Println("\nIssues:")
		for _, i := range seed.Issues {
			fmt.Printf("  %s  %s %s (%s, %s)\n", cyan(i.ID), statusBadge(i.Status), i.Title, i.Type, i.Priority)
		}

		fmt.Println("\nComments:")
		for _, c := range seed.Comments {
			fmt.Printf("  %s  on %s by %s: %s\n", cyan(c.ID), c.IssueID, c.UserID, c.Content)
		}
	},
}

func statusBadge(s types.Status) string {
	switch s {
	case types.StatusTodo:
		return color.YellowString("[todo]")
	case types.StatusInProgress:
		return color.CyanString("[in-progress]")
	case types.StatusDone:
		return color.GreenString("[done]")
	}
	return "[" + string(s) + "]"
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
