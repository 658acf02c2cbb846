package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var aggregatesLimit int

var aggregatesCmd = &cobra.Command{
	Use:   "aggregates",
	Short: "Show the current stories ordered by rank",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := application.Store()

		aggs, err := store.ListAggregates(cmd.Context(), aggregatesLimit)
		if err != nil {
			return err
		}

		if latest, err := store.LatestRun(cmd.Context()); err == nil && latest != nil {
			fmt.Printf("%s %s (%s, %s)\n\n", cyan("Last run:"), latest.ID,
				latest.Status, latest.StartedAt.Format("2006-01-02 15:04"))
		}

		if len(aggs) == 0 {
			fmt.Println(gray("No aggregates yet, run `newsranker rank` first"))
			return nil
		}

		rows := make([][]string, 0, len(aggs))
		for i, a := range aggs {
			rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(a.Rank), a.Title, a.Summary})
		}
		renderTable(os.Stdout, []column{
			{Title: "#", Right: true},
			{Title: "RANK", Right: true},
			{Title: "TITLE", Max: 60},
			{Title: "SUMMARY", Max: 80},
		}, rows)
		return nil
	},
}

func init() {
	aggregatesCmd.Flags().IntVarP(&aggregatesLimit, "limit", "n", 20, "number of stories to show (0 for all)")
	rootCmd.AddCommand(aggregatesCmd)
}
