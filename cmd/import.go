package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adikkala/vahanlens/internal/importer"
	"github.com/adikkala/vahanlens/internal/log"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import registration records from a CSV file",
	Long: `Import registration records from a CSV file with the header

  date,category,manufacturer,count

Dates accept 2023-04-01, 2023-04 or Apr-2023 and are normalized to the
first of the month. Categories accept 2W, 3W, 4W or their long labels.
Malformed rows are skipped and reported with their line numbers; only a
missing or wrong header fails the import.

Examples:
  vahanlens import registrations.csv
  vahanlens import --replace registrations.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path) //nolint:gosec // G304: user-supplied import file
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		result, err := importer.Parse(f)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if len(result.Records) == 0 {
			return fmt.Errorf("%s contains no importable rows", path)
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		repo := db.RecordRepository()
		if importReplace {
			err = repo.ReplaceAll(result.Records)
		} else {
			err = repo.SaveBatch(result.Records)
		}
		if err != nil {
			return fmt.Errorf("storing records: %w", err)
		}

		log.Info(log.CatImport, "imported CSV",
			"file", path,
			"records", len(result.Records),
			"skipped", len(result.Skipped),
			"replace", importReplace)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d records from %s\n", len(result.Records), path)
		for _, issue := range result.Skipped {
			fmt.Fprintf(out, "  skipped line %d: %s\n", issue.Line, issue.Reason)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace existing records instead of appending")
	rootCmd.AddCommand(importCmd)
}
