package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yairfalse/virta/storage"
)

var (
	reportStoreDir string
	reportFormat   string
	reportLast     bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the history of recorded subscription passes",
	Long: `Report reads the local pass history and prints what each pass
planned and skipped. The history is only available when plan ran with
--store-dir.`,
	Example: `  virta report --store-dir .virta          # All recorded passes
  virta report --store-dir .virta --last   # Most recent pass only
  virta report --store-dir .virta -f json  # Machine-readable output`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportStoreDir, "store-dir", "", "Directory of the pass history store")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "table", "Output format: table, json")
	reportCmd.Flags().BoolVar(&reportLast, "last", false, "Show only the most recent pass")

	_ = reportCmd.MarkFlagRequired("store-dir")
}

func runReport(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(reportStoreDir)
	if err != nil {
		return fmt.Errorf("failed to open pass history: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := loadRecords(store)
	if err != nil {
		return err
	}

	switch reportFormat {
	case "json":
		return printRecordsJSON(records)
	case "table":
		return printRecordsTable(records)
	default:
		return fmt.Errorf("unknown report format: %s", reportFormat)
	}
}

func loadRecords(store *storage.PassStore) ([]storage.PassRecord, error) {
	if reportLast {
		record, found, err := store.LastPass()
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		return []storage.PassRecord{record}, nil
	}
	return store.ListPasses()
}

func printRecordsJSON(records []storage.PassRecord) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func printRecordsTable(records []storage.PassRecord) error {
	if len(records) == 0 {
		fmt.Println("No passes recorded yet. Run plan with --store-dir first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTIME\tSERVICE\tSTAGE\tPLANNED\tSKIPPED\tWARNINGS")
	for _, record := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
			record.Sequence,
			record.Timestamp.Format("2006-01-02 15:04:05"),
			record.Service,
			record.Stage,
			record.Planned,
			record.Skipped,
			len(record.Warnings),
		)
	}
	return w.Flush()
}
