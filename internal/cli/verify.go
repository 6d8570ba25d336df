package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinpulse/newsharvest/internal/cleaner"
	"github.com/coinpulse/newsharvest/internal/verifier"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the cleaned dataset against the expected output properties",
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	csvPath := outputPath(cleanedCSVName)
	rows, err := cleaner.LoadCSV(csvPath)
	if err != nil {
		return err
	}

	report := verifier.Verify(rows)
	for _, check := range report.Checks {
		status := "PASS"
		if !check.OK {
			status = "FAIL"
		}
		cmd.Printf("%-4s %s", status, check.Name)
		if check.Detail != "" {
			cmd.Printf(": %s", check.Detail)
		}
		cmd.Println()
	}

	if !report.Passed() {
		return fmt.Errorf("verification failed for %s", csvPath)
	}
	log.InfoObj("verification passed", "verify_done", map[string]any{
		"rows": report.Rows,
		"csv":  csvPath,
	})
	return nil
}
