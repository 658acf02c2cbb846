package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/scanner"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the sites that are scraped",
}

var sourceScanner string

var sourcesAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Register a new source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := domain.Source{Name: args[0], URL: args[1], Scanner: sourceScanner}
		added, err := application.Store().AddSource(cmd.Context(), src)
		if err != nil {
			return err
		}
		if !added {
			fmt.Printf("%s %s is already registered\n", yellow("!"), src.URL)
			return nil
		}
		fmt.Printf("%s added %s (%s)\n", green("✓"), src.Name, src.URL)
		return nil
	},
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := application.Store().ListSources(cmd.Context())
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			fmt.Println(gray("No sources registered"))
			return nil
		}

		rows := make([][]string, 0, len(sources))
		for _, s := range sources {
			rows = append(rows, []string{s.Name, s.Scanner, s.URL})
		}
		renderTable(os.Stdout, []column{{Title: "NAME", Max: 30}, {Title: "SCANNER"}, {Title: "URL"}}, rows)
		return nil
	},
}

func init() {
	sourcesAddCmd.Flags().StringVar(&sourceScanner, "scanner", scanner.DefaultScanner, "extraction strategy: html or rss")
	sourcesCmd.AddCommand(sourcesAddCmd, sourcesListCmd)
	rootCmd.AddCommand(sourcesCmd)
}
