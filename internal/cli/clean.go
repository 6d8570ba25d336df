package cli

import (
	"github.com/spf13/cobra"

	"github.com/coinpulse/newsharvest/internal/cleaner"
	"github.com/coinpulse/newsharvest/pkg/export"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize a harvested GDELT export into the cleaned dataset",
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	rows, err := cleaner.Load(outputPath(gdeltCSVName), outputPath(gdeltJSONName))
	if err != nil {
		return err
	}

	cleaned := cleaner.New(log).Clean(rows)

	jsonPath, csvPath := outputPath(cleanedJSONName), outputPath(cleanedCSVName)
	if err := export.WriteJSON(jsonPath, cleaned); err != nil {
		return err
	}
	unique, err := export.WriteCSV(csvPath, cleaner.TableOf(cleaned))
	if err != nil {
		return err
	}

	log.InfoObj("cleaned dataset written", "clean_done", map[string]any{
		"input":  len(rows),
		"kept":   len(cleaned),
		"unique": unique,
		"json":   jsonPath,
		"csv":    csvPath,
	})
	return nil
}
