package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// setActiveLeagueCmd represents the set-active-league command
var setActiveLeagueCmd = &cobra.Command{
	Use:     "set-active-league <name>",
	Short:   "Flag one league as active, clearing the flag everywhere else",
	Args:    cobra.ExactArgs(1),
	Example: `  uniquesctl set-active-league Settlers`,
	RunE:    runSetActiveLeague,
}

func init() {
	rootCmd.AddCommand(setActiveLeagueCmd)
}

func runSetActiveLeague(cmd *cobra.Command, args []string) error {
	_, repos, _, err := setup()
	if err != nil {
		return err
	}

	league, err := repos.League.SetActive(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Active league is now %q\n", league.Name)
	return nil
}
