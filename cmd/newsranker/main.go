package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsRanker/internal/app"
	"NewsRanker/internal/config"
	"NewsRanker/internal/logging"
)

var (
	cfg         config.Config
	logger      *slog.Logger
	application *app.Application
)

var rootCmd = &cobra.Command{
	Use:           "newsranker",
	Short:         "Collect news from many sites and rank stories by how widely they are covered",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsApplication(cmd) {
			return nil
		}

		cfg = config.Load()
		logger = logging.NewWithWriter(os.Stderr, cfg.Logging.Level)

		a, err := app.Open(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		application = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application == nil {
			return nil
		}
		return application.Close()
	},
}

// skipsApplication reports commands that must work without a database.
func skipsApplication(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if application != nil {
			_ = application.Close()
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		stop()
		os.Exit(1)
	}
}
