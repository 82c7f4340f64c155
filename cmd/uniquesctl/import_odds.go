package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	oddsFile string
	oddsPool string
)

const unmatchedPreviewCap = 20

// importOddsCmd represents the import-odds command
var importOddsCmd = &cobra.Command{
	Use:     "import-odds",
	Short:   "Import Ancient Orb tier/odds metadata from a JSON snapshot",
	Example: `  uniquesctl import-odds --file data/ancient_belts.json --pool belt`,
	RunE:    runImportOdds,
}

func init() {
	importOddsCmd.Flags().StringVar(&oddsFile, "file", "", "path to JSON snapshot (e.g. data/ancient_belts.json)")
	importOddsCmd.Flags().StringVar(&oddsPool, "pool", "belt", "pool key")
	importOddsCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importOddsCmd)
}

func runImportOdds(cmd *cobra.Command, args []string) error {
	services, _, _, err := setup()
	if err != nil {
		return err
	}

	result, err := services.Ingest.ImportOddsFile(cmd.Context(), oddsFile, oddsPool)
	if err != nil {
		return err
	}

	fmt.Printf("Imported/updated %d rows into pool=%q (malformed: %d)\n", result.Imported, oddsPool, result.Malformed)

	if len(result.Unmatched) > 0 {
		fmt.Printf("Missing %d uniques not found in DB:\n", len(result.Unmatched))
		for i, name := range result.Unmatched {
			if i == unmatchedPreviewCap {
				fmt.Println("  ... (truncated)")
				break
			}
			fmt.Printf("  - %s\n", name)
		}
	}
	return nil
}
