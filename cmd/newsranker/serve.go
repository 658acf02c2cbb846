package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Scrape and rank on the configured interval until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sched, err := application.Scheduler()
		if err != nil {
			return err
		}
		if err := sched.Start(ctx); err != nil {
			return err
		}

		next := time.Now().In(cfg.Scheduler.Location()).Add(cfg.Scheduler.Interval)
		fmt.Printf("%s every %v (next after this one at %s), Ctrl+C to stop\n",
			cyan("Serving:"), cfg.Scheduler.Interval, next.Format("15:04 MST"))

		<-ctx.Done()
		logger.Info("shutting down")

		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return sched.Stop(stopCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
