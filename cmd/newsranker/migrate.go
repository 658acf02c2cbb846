package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and seed sources from the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := application.Store().ListSources(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s schema ready (%s), %d sources registered\n", green("✓"), cfg.Database.Driver, len(sources))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
