package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"NewsRanker/internal/usecase"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch every source once and store new articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := scrape(cmd)
		return err
	},
}

func scrape(cmd *cobra.Command) (*usecase.IngestReport, error) {
	ingestor, err := application.Ingestor()
	if err != nil {
		return nil, err
	}

	report, err := ingestor.Ingest(cmd.Context())
	if err != nil {
		return nil, err
	}

	fmt.Printf("%s scraped %d sources: %s new, %s duplicates\n",
		green("✓"), report.Sources,
		green(fmt.Sprint(report.Inserted)),
		gray(fmt.Sprint(report.Duplicates)))
	if report.SourceErrors != nil {
		fmt.Printf("%s %v\n", yellow("some sources failed:"), report.SourceErrors)
	}
	return report, nil
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
