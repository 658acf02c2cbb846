package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Cluster stored articles into stories and replace the aggregates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return rank(cmd)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape all sources, then rank",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := scrape(cmd); err != nil {
			return err
		}
		return rank(cmd)
	},
}

func rank(cmd *cobra.Command) error {
	ranker, err := application.Ranker()
	if err != nil {
		return err
	}

	report, err := ranker.Rank(cmd.Context())
	if err != nil {
		if report != nil {
			fmt.Printf("%s run %s failed\n", red("✗"), report.Run.ID)
		}
		return err
	}

	run := report.Run
	fmt.Printf("%s run %s: %d articles → %s stories in %v\n",
		green("✓"), gray(run.ID), run.Articles,
		green(fmt.Sprint(run.Clusters)),
		run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	for _, w := range report.Result.Warnings {
		fmt.Printf("  %s article %d (%s): %v\n", yellow("⚠"), w.Position, w.Link, w.Err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(rankCmd, runCmd)
}
